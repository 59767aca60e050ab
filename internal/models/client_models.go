package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a customer known to the shop, created on first checkout or by staff.
type Client struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name" binding:"required"`
	Email              string          `json:"email" binding:"required"`
	Phone              string          `json:"phone,omitempty"`
	Street             string          `json:"street,omitempty"`
	City               string          `json:"city,omitempty"`
	County             string          `json:"county,omitempty"`
	PostalCode         string          `json:"postalCode,omitempty"`
	PersonType         PersonType      `json:"personType,omitempty"`
	CompanyName        string          `json:"companyName,omitempty"`
	TaxID              string          `json:"taxId,omitempty"`
	RegistrationNumber string          `json:"registrationNumber,omitempty"`
	OrdersCount        int             `json:"ordersCount"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}
