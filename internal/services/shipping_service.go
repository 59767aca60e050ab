package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canvas_shop_backend/internal/clients"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var ErrAWBExists = errors.New("order already has an AWB")

// Courier is the AWB provider.
type Courier interface {
	GenerateAWB(ctx context.Context, req clients.AWBRequest) (*clients.AWBResult, error)
	TrackAWB(ctx context.Context, awb string) (*clients.AWBTracking, error)
	DownloadLabel(ctx context.Context, awb string) ([]byte, error)
}

// GenerateAWBRequest carries the parcel measured by production staff.
type GenerateAWBRequest struct {
	WeightKg decimal.Decimal `json:"weightKg" binding:"required"`
	LengthCm int             `json:"lengthCm" binding:"required,gt=0"`
	WidthCm  int             `json:"widthCm" binding:"required,gt=0"`
	HeightCm int             `json:"heightCm" binding:"required,gt=0"`
}

type ShippingService interface {
	GenerateAWB(ctx context.Context, orderID string, req GenerateAWBRequest, actor models.Actor) (*models.Order, error)
	UpdateAWBTracking(ctx context.Context, orderID string) (*models.Order, error)
	// DownloadAWBLabel returns the label PDF and a file name for it.
	DownloadAWBLabel(ctx context.Context, orderID string) ([]byte, string, error)
}

type shippingService struct {
	state   *AppState
	courier Courier
	audit   repositories.AuditRepository
	now     func() time.Time
}

func NewShippingService(state *AppState, courier Courier, audit repositories.AuditRepository) ShippingService {
	if audit == nil {
		audit = repositories.NoopAuditRepository{}
	}
	return &shippingService{
		state:   state,
		courier: courier,
		audit:   audit,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *shippingService) GenerateAWB(ctx context.Context, orderID string, req GenerateAWBRequest, actor models.Actor) (*models.Order, error) {
	order := s.state.Orders.snapshot(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Shipping != nil && order.Shipping.AWBNumber != "" {
		return nil, fmt.Errorf("%w: %s", ErrAWBExists, order.Shipping.AWBNumber)
	}
	if !req.WeightKg.IsPositive() {
		return nil, fmt.Errorf("%w: weight must be positive", ErrValidation)
	}

	cod := decimal.Zero
	if order.PaymentMethod == models.PaymentCash && order.PaymentStatus != models.PaymentPaid {
		cod = order.Total
	}
	c := order.Customer
	awbReq := clients.AWBRequest{
		Reference: order.OrderNumber,
		Recipient: clients.AWBRecipient{
			Name: c.Name, Phone: c.Phone, Email: c.Email,
			Street: c.Street, City: c.City, County: c.County, PostalCode: c.PostalCode,
			Company: c.CompanyName,
		},
		Parcel: clients.AWBParcel{
			WeightKg: req.WeightKg, LengthCm: req.LengthCm, WidthCm: req.WidthCm, HeightCm: req.HeightCm,
		},
		CashOnDelivery: cod,
		Service:        string(order.DeliveryMethod),
	}

	res, err := s.courier.GenerateAWB(ctx, awbReq)
	if err != nil {
		return nil, fmt.Errorf("generating AWB for order %s: %w", order.OrderNumber, err)
	}

	now := s.now()
	order.Shipping = &models.Shipping{
		AWBNumber:      res.AWBNumber,
		AWBStatus:      res.Status,
		AWBGeneratedAt: &now,
		TrackingURL:    res.TrackingURL,
		WeightKg:       req.WeightKg,
		LengthCm:       req.LengthCm,
		WidthCm:        req.WidthCm,
		HeightCm:       req.HeightCm,
	}
	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}
	recordAudit(s.state, s.audit, models.AuditAWBGenerated, order.ID, actor, map[string]interface{}{"awb": res.AWBNumber}, now)
	utils.LogInfo("AWB generated", map[string]interface{}{"order_id": order.ID, "awb": res.AWBNumber})
	return order.Clone(), nil
}

func (s *shippingService) UpdateAWBTracking(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderWithAWB(orderID)
	if err != nil {
		return nil, err
	}

	tracking, err := s.courier.TrackAWB(ctx, order.Shipping.AWBNumber)
	if err != nil {
		return nil, fmt.Errorf("tracking AWB %s: %w", order.Shipping.AWBNumber, err)
	}
	order.Shipping.AWBStatus = tracking.Status
	if err := s.persist(ctx, order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

func (s *shippingService) DownloadAWBLabel(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := s.orderWithAWB(orderID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.courier.DownloadLabel(ctx, order.Shipping.AWBNumber)
	if err != nil {
		return nil, "", fmt.Errorf("downloading label for AWB %s: %w", order.Shipping.AWBNumber, err)
	}
	return pdf, "AWB-" + order.Shipping.AWBNumber + ".pdf", nil
}

func (s *shippingService) orderWithAWB(orderID string) (*models.Order, error) {
	order := s.state.Orders.snapshot(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Shipping == nil || order.Shipping.AWBNumber == "" {
		return nil, ErrNoAWB
	}
	return order, nil
}

func (s *shippingService) persist(ctx context.Context, order *models.Order) error {
	store := s.state.Orders
	order.UpdatedAt = s.now()
	if err := store.repo.UpdateOrderShipping(ctx, order.ID, order.Shipping, order.UpdatedAt); err != nil {
		return fmt.Errorf("saving shipping of order %s: %w", order.ID, err)
	}
	store.commit(order)
	store.Invalidate(ctx)
	return nil
}
