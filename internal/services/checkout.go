package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutItem is one cart line as submitted by the storefront. Prices are recomputed server-side.
type CheckoutItem struct {
	Type models.ItemType `json:"type" binding:"required"`

	PaintingID  string           `json:"paintingId"`
	SizeID      string           `json:"sizeId"`
	Quantity    int              `json:"quantity"`
	PrintType   models.PrintType `json:"printType"`
	FrameTypeID string           `json:"frameTypeId"`

	Size          string               `json:"size"`
	Orientation   string               `json:"orientation"`
	OriginalImage models.ImageVariants `json:"originalImage"`
	CroppedImage  models.ImageVariants `json:"croppedImage"`
}

type CheckoutRequest struct {
	Customer       models.Customer       `json:"customer" binding:"required"`
	Items          []CheckoutItem        `json:"items" binding:"required,min=1,dive"`
	DeliveryMethod models.DeliveryMethod `json:"deliveryMethod" binding:"required"`
	PaymentMethod  models.PaymentMethod  `json:"paymentMethod" binding:"required"`
}

// CreateOrder prices the cart from the catalog and stores a new order in status "new".
// The gateway write is bounded by the checkout timeout; a timeout is reported as ErrCheckoutTimeout.
func (s *orderService) CreateOrder(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	delivery, ok := s.cfg.DeliveryCosts[req.DeliveryMethod]
	if !ok {
		return nil, fmt.Errorf("%w: unknown delivery method %q", ErrValidation, req.DeliveryMethod)
	}
	if req.PaymentMethod != models.PaymentCard && req.PaymentMethod != models.PaymentCash {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	items := make(models.LineItems, 0, len(req.Items))
	for i, ci := range req.Items {
		item, err := s.priceItem(ci)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrValidation, i, err)
		}
		items = append(items, item)
	}

	now := s.now()
	subtotal := Subtotal(items)
	order := &models.Order{
		ID:             uuid.NewString(),
		OrderNumber:    newOrderNumber(now.Format("060102")),
		Customer:       req.Customer,
		Items:          items,
		ItemsCount:     len(items),
		Subtotal:       subtotal,
		DeliveryCost:   delivery,
		Total:          subtotal.Add(delivery),
		DeliveryMethod: req.DeliveryMethod,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  models.PaymentUnpaid,
		Status:         models.OrderStatusNew,
		StatusHistory: []models.StatusChange{{
			Status:    models.OrderStatusNew,
			Timestamp: now,
			ChangedBy: req.Customer.Name,
		}},
		Notes:     []models.Note{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.PaymentMethod == models.PaymentCard {
		order.PaymentStatus = models.PaymentPaid
	}

	createCtx, cancel := context.WithTimeout(ctx, s.cfg.CheckoutTimeout)
	defer cancel()
	if err := s.state.Orders.repo.CreateOrder(createCtx, order); err != nil {
		if errors.Is(createCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrCheckoutTimeout
		}
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.state.Orders.add(order)
	s.state.Orders.Invalidate(ctx)
	s.upsertClient(ctx, order)
	s.record(models.AuditOrderCreated, order.ID, models.Actor{Name: req.Customer.Name}, map[string]interface{}{"order_number": order.OrderNumber})
	utils.LogInfo("Order created", map[string]interface{}{"order_id": order.ID, "order_number": order.OrderNumber, "total": order.Total.StringFixed(2)})

	if s.notifier != nil {
		confirmed := order.Clone()
		s.state.tasks.Go("confirmation email "+order.OrderNumber, s.cfg.NotifyTimeout, func(ctx context.Context) error {
			return s.notifier.SendOrderConfirmation(ctx, confirmed)
		})
	}
	return order.Clone(), nil
}

func (s *orderService) priceItem(ci CheckoutItem) (models.CanvasItem, error) {
	switch ci.Type {
	case models.ItemTypePainting:
		painting, ok := s.state.Paintings.Get(ci.PaintingID)
		if !ok || !painting.IsActive {
			return nil, fmt.Errorf("painting %q is not available", ci.PaintingID)
		}
		if !containsString(painting.AvailableSizes, ci.SizeID) {
			return nil, fmt.Errorf("size %q is not offered for painting %q", ci.SizeID, ci.PaintingID)
		}
		size, ok := s.state.Sizes.Get(ci.SizeID)
		if !ok || !size.IsActive {
			return nil, fmt.Errorf("size %q is not available", ci.SizeID)
		}
		printType := ci.PrintType
		if printType == "" {
			printType = models.PrintCanvas
		}
		if !models.IsValidPrintType(printType) {
			return nil, fmt.Errorf("unknown print type %q", printType)
		}
		if ci.FrameTypeID != "" {
			entry, ok := size.FramePrices[ci.FrameTypeID]
			if !ok || !FrameOffered(entry, printType) {
				return nil, fmt.Errorf("frame %q is not offered for size %s and %s", ci.FrameTypeID, size.Label(), printType)
			}
		}
		qty := ci.Quantity
		if qty < 1 {
			qty = 1
		}
		return &models.PaintingItem{
			PaintingID:    painting.ID,
			PaintingTitle: painting.Title,
			PaintingImage: painting.ImageURL,
			SizeID:        size.ID,
			Quantity:      qty,
			PrintType:     printType,
			FrameTypeID:   ci.FrameTypeID,
			Price:         UnitPrice(size, ci.FrameTypeID, printType),
		}, nil

	case models.ItemTypePersonalized:
		size, ok := s.state.Sizes.Find(func(sz *models.CanvasSize) bool {
			return sz.IsActive && sz.Label() == ci.Size
		})
		if !ok {
			return nil, fmt.Errorf("size %q is not available", ci.Size)
		}
		if ci.CroppedImage.Original == "" && ci.OriginalImage.Original == "" {
			return nil, errors.New("personalized item has no image")
		}
		return &models.PersonalizedItem{
			ID:            uuid.NewString(),
			OriginalImage: ci.OriginalImage,
			CroppedImage:  ci.CroppedImage,
			Size:          ci.Size,
			Orientation:   ci.Orientation,
			Price:         DiscountedPrice(size.Price, size.Discount),
		}, nil

	default:
		return nil, fmt.Errorf("unknown item type %q", ci.Type)
	}
}

// upsertClient records the buyer as a client, matched by email. Failures are logged only.
func (s *orderService) upsertClient(ctx context.Context, order *models.Order) {
	email := strings.ToLower(strings.TrimSpace(order.Customer.Email))
	existing, found := s.state.Clients.Find(func(c *models.Client) bool {
		return strings.ToLower(c.Email) == email
	})

	var err error
	if found {
		existing.OrdersCount++
		existing.TotalSpent = existing.TotalSpent.Add(order.Total)
		_, err = s.state.Clients.Update(ctx, existing.ID, existing)
	} else {
		c := order.Customer
		_, err = s.state.Clients.Create(ctx, models.Client{
			Name:               c.Name,
			Email:              c.Email,
			Phone:              c.Phone,
			Street:             c.Street,
			City:               c.City,
			County:             c.County,
			PostalCode:         c.PostalCode,
			PersonType:         c.PersonType,
			CompanyName:        c.CompanyName,
			TaxID:              c.TaxID,
			RegistrationNumber: c.RegistrationNumber,
			OrdersCount:        1,
			TotalSpent:         order.Total,
			CreatedAt:          order.CreatedAt,
		})
	}
	if err != nil {
		utils.LogError(err, "Failed to record client for order", map[string]interface{}{"order_id": order.ID})
	}
}

func newOrderNumber(datePart string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "CV-" + datePart + "-" + suffix
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ParseDeliveryCosts converts configured lei amounts per delivery method.
func ParseDeliveryCosts(raw map[string]string) (map[models.DeliveryMethod]decimal.Decimal, error) {
	out := make(map[models.DeliveryMethod]decimal.Decimal, len(raw))
	for method, amount := range raw {
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("delivery cost for %s: %w", method, err)
		}
		out[models.DeliveryMethod(method)] = v
	}
	return out, nil
}
