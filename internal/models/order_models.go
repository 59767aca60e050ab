package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew          OrderStatus = "new"
	OrderStatusQueue        OrderStatus = "queue"
	OrderStatusInProduction OrderStatus = "in-production"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusReturned     OrderStatus = "returned"
	OrderStatusClosed       OrderStatus = "closed"
)

// IsValidOrderStatus checks if the provided status string is a known OrderStatus.
func IsValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderStatusNew,
		OrderStatusQueue,
		OrderStatusInProduction,
		OrderStatusDelivered,
		OrderStatusReturned,
		OrderStatusClosed:
		return true
	default:
		return false
	}
}

// StatusRequiresReason reports whether staff must give a reason when moving an order into status.
func StatusRequiresReason(status OrderStatus) bool {
	return status == OrderStatusQueue || status == OrderStatusReturned || status == OrderStatusClosed
}

type DeliveryMethod string

const (
	DeliveryExpress  DeliveryMethod = "express"
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryEconomic DeliveryMethod = "economic"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// PersonType distinguishes an individual (fizica) from a company (juridica) customer.
type PersonType string

const (
	PersonFizica   PersonType = "fizica"
	PersonJuridica PersonType = "juridica"
)

// StatusChange is one entry of an order's append-only status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	ChangedBy string      `json:"changedBy"`
	Reason    string      `json:"reason,omitempty"`
}

// Customer is the snapshot of buyer and billing details taken at checkout.
type Customer struct {
	Name               string     `json:"name" binding:"required"`
	Email              string     `json:"email" binding:"required"`
	Phone              string     `json:"phone" binding:"required"`
	Street             string     `json:"street" binding:"required"`
	City               string     `json:"city" binding:"required"`
	County             string     `json:"county" binding:"required"`
	PostalCode         string     `json:"postalCode"`
	PersonType         PersonType `json:"personType"`
	CompanyName        string     `json:"companyName,omitempty"`
	TaxID              string     `json:"taxId,omitempty"`
	RegistrationNumber string     `json:"registrationNumber,omitempty"`
	CompanyAddress     string     `json:"companyAddress,omitempty"`
}

// Shipping holds courier data. It is only set after a successful AWB generation.
type Shipping struct {
	AWBNumber      string          `json:"awbNumber"`
	AWBStatus      string          `json:"awbStatus,omitempty"`
	AWBGeneratedAt *time.Time      `json:"awbGeneratedAt,omitempty"`
	TrackingURL    string          `json:"trackingUrl,omitempty"`
	WeightKg       decimal.Decimal `json:"weightKg"`
	LengthCm       int             `json:"lengthCm"`
	WidthCm        int             `json:"widthCm"`
	HeightCm       int             `json:"heightCm"`
}

// Order is a customer purchase record.
type Order struct {
	ID             string          `json:"id"`
	OrderNumber    string          `json:"orderNumber"`
	Customer       Customer        `json:"customer"`
	Items          LineItems       `json:"items"`
	ItemsCount     int             `json:"itemsCount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DeliveryCost   decimal.Decimal `json:"deliveryCost"`
	Total          decimal.Decimal `json:"total"`
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	Status         OrderStatus     `json:"status"`
	StatusHistory  []StatusChange  `json:"statusHistory"`
	Notes          []Note          `json:"orderNotes"`
	Shipping       *Shipping       `json:"shipping,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// HasPlaceholderItems is true for orders fetched through the lightweight list,
// where line items are replaced by a count.
func (o *Order) HasPlaceholderItems() bool {
	return len(o.Items) == 0 && o.ItemsCount > 0
}

// Clone returns a deep copy so a mutation can be prepared without touching shared state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	if o.Items != nil {
		c.Items = make(LineItems, len(o.Items))
		copy(c.Items, o.Items)
	}
	if o.StatusHistory != nil {
		c.StatusHistory = make([]StatusChange, len(o.StatusHistory))
		copy(c.StatusHistory, o.StatusHistory)
	}
	if o.Notes != nil {
		c.Notes = make([]Note, len(o.Notes))
		for i, n := range o.Notes {
			c.Notes[i] = n.clone()
		}
	}
	if o.Shipping != nil {
		s := *o.Shipping
		c.Shipping = &s
	}
	return &c
}

// OrderFilters defines the available filters for listing orders.
type OrderFilters struct {
	Status   *string `form:"status"`
	Search   *string `form:"search"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
