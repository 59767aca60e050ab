package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderNotifier sends customer emails about an order.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendShippedNotice(ctx context.Context, order *models.Order) error
}

// BulkFailure names an order a bulk operation could not update.
type BulkFailure struct {
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

// BulkResult reports a best-effort batch: Completed < Requested when some orders failed.
type BulkResult struct {
	Requested int           `json:"requested"`
	Completed int           `json:"completed"`
	Failures  []BulkFailure `json:"failures"`
}

// OrderServiceConfig holds order settings taken from configuration.
type OrderServiceConfig struct {
	CheckoutTimeout time.Duration
	NotifyTimeout   time.Duration
	DeliveryCosts   map[models.DeliveryMethod]decimal.Decimal
}

// OrderService covers the order lifecycle: status changes, note threads, checkout and deletion.
// Operations on an order id that is not loaded return a nil result and a nil error.
type OrderService interface {
	GetOrders(filters models.OrderFilters) ([]models.Order, int)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	CreateOrder(ctx context.Context, req CheckoutRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string, actor models.Actor) error

	ChangeStatus(ctx context.Context, orderID string, status models.OrderStatus, reason string, actor models.Actor) (*models.Order, error)
	BulkChangeStatus(ctx context.Context, orderIDs []string, status models.OrderStatus, reason string, actor models.Actor) BulkResult
	AllowedStatuses(orderID string, role models.Role) []models.OrderStatus

	AddNote(ctx context.Context, orderID, text string, actor models.Actor) (*models.Note, error)
	MarkNoteRead(ctx context.Context, orderID, noteID string, actor models.Actor) (*models.Note, error)
	CloseNote(ctx context.Context, orderID, noteID string, actor models.Actor) (*models.Note, error)
	CountUnread(orderID string) int
	CountTotal(orderID string) int

	AuditTrail(ctx context.Context, orderID string) ([]models.AuditEntry, error)
}

type orderService struct {
	state    *AppState
	notifier OrderNotifier
	audit    repositories.AuditRepository
	cfg      OrderServiceConfig
	now      func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(state *AppState, notifier OrderNotifier, audit repositories.AuditRepository, cfg OrderServiceConfig) OrderService {
	if audit == nil {
		audit = repositories.NoopAuditRepository{}
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 15 * time.Second
	}
	return &orderService{
		state:    state,
		notifier: notifier,
		audit:    audit,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int) {
	return s.state.Orders.List(filters)
}

// GetOrderByID fetches the full order from the gateway and merges it into memory.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	fresh, err := s.state.Orders.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("fetching order %s: %w", orderID, err)
	}
	return s.state.Orders.mergeDetail(fresh), nil
}

// ChangeStatus moves an order to status, appending a history entry and, for a non-empty
// reason, a closed note. Nothing is changed in memory unless the gateway write succeeds.
func (s *orderService) ChangeStatus(ctx context.Context, orderID string, status models.OrderStatus, reason string, actor models.Actor) (*models.Order, error) {
	if !models.IsValidOrderStatus(string(status)) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}

	order := s.state.Orders.snapshot(orderID)
	if order == nil {
		return nil, nil
	}
	if !CanTransition(actor.Role, order.Status, status) {
		return nil, fmt.Errorf("%w: %s cannot move %s to %s", ErrTransitionNotAllowed, actor.Role, order.Status, status)
	}

	now := s.now()
	reason = strings.TrimSpace(reason)
	order.StatusHistory = append(order.StatusHistory, models.StatusChange{
		Status:    status,
		Timestamp: now,
		ChangedBy: actor.Name,
		Reason:    reason,
	})
	order.Status = status
	if reason != "" {
		closedAt := now
		order.Notes = append(order.Notes, models.Note{
			ID:            uuid.NewString(),
			Text:          fmt.Sprintf("Status changed to \"%s\": %s", status, reason),
			CreatedAt:     now,
			CreatedBy:     actor.Name,
			CreatedByRole: string(actor.Role),
			IsRead:        false,
			ReadBy:        []string{},
			Status:        models.NoteClosed,
			ClosedAt:      &closedAt,
			ClosedBy:      actor.Name,
		})
	}
	order.UpdatedAt = now

	if err := s.state.Orders.repo.UpdateOrderStatus(ctx, order); err != nil {
		return nil, fmt.Errorf("updating status of order %s: %w", orderID, err)
	}
	s.state.Orders.commit(order)
	s.state.Orders.Invalidate(ctx)

	s.record(models.AuditStatusChanged, order.ID, actor, map[string]interface{}{"status": string(status), "reason": reason})
	utils.LogInfo("Order status changed", map[string]interface{}{"order_id": order.ID, "status": string(status), "by": actor.Name})

	if status == models.OrderStatusDelivered && s.notifier != nil {
		shipped := order.Clone()
		s.state.tasks.Go("shipped email "+order.OrderNumber, s.cfg.NotifyTimeout, func(ctx context.Context) error {
			return s.notifier.SendShippedNotice(ctx, shipped)
		})
	}
	return order.Clone(), nil
}

// BulkChangeStatus applies ChangeStatus to each order in turn. A failing order does not stop the batch.
func (s *orderService) BulkChangeStatus(ctx context.Context, orderIDs []string, status models.OrderStatus, reason string, actor models.Actor) BulkResult {
	result := BulkResult{Requested: len(orderIDs), Failures: []BulkFailure{}}
	for _, id := range orderIDs {
		order, err := s.ChangeStatus(ctx, id, status, reason, actor)
		switch {
		case err != nil:
			utils.LogWarn("Bulk status change failed for order", map[string]interface{}{"order_id": id, "error": err.Error()})
			result.Failures = append(result.Failures, BulkFailure{OrderID: id, Error: err.Error()})
		case order == nil:
			result.Failures = append(result.Failures, BulkFailure{OrderID: id, Error: ErrOrderNotFound.Error()})
		default:
			result.Completed++
		}
	}
	return result
}

func (s *orderService) AllowedStatuses(orderID string, role models.Role) []models.OrderStatus {
	order := s.state.Orders.snapshot(orderID)
	if order == nil {
		return nil
	}
	return AllowedTransitions(role, order.Status)
}

func (s *orderService) AddNote(ctx context.Context, orderID, text string, actor models.Actor) (*models.Note, error) {
	note, err := s.updateNotes(ctx, orderID, func(o *models.Order, now time.Time) *models.Note {
		o.Notes = append(o.Notes, models.Note{
			ID:            uuid.NewString(),
			Text:          text,
			CreatedAt:     now,
			CreatedBy:     actor.Name,
			CreatedByRole: string(actor.Role),
			IsRead:        false,
			ReadBy:        []string{},
			Status:        models.NoteOpen,
		})
		return &o.Notes[len(o.Notes)-1]
	})
	if note != nil {
		s.record(models.AuditNoteAdded, orderID, actor, map[string]interface{}{"note_id": note.ID})
	}
	return note, err
}

// MarkNoteRead flags the note as read and appends the reader. Repeated reads append again.
func (s *orderService) MarkNoteRead(ctx context.Context, orderID, noteID string, actor models.Actor) (*models.Note, error) {
	note, err := s.updateNotes(ctx, orderID, func(o *models.Order, _ time.Time) *models.Note {
		n := findNote(o, noteID)
		if n == nil {
			return nil
		}
		n.IsRead = true
		n.ReadBy = append(n.ReadBy, actor.Name)
		return n
	})
	if note != nil {
		s.record(models.AuditNoteRead, orderID, actor, map[string]interface{}{"note_id": noteID})
	}
	return note, err
}

// CloseNote closes an open note. A note that is already closed is returned unchanged.
func (s *orderService) CloseNote(ctx context.Context, orderID, noteID string, actor models.Actor) (*models.Note, error) {
	if o := s.state.Orders.snapshot(orderID); o != nil {
		if n := findNote(o, noteID); n != nil && n.Status == models.NoteClosed {
			return n, nil
		}
	}

	note, err := s.updateNotes(ctx, orderID, func(o *models.Order, now time.Time) *models.Note {
		n := findNote(o, noteID)
		if n == nil {
			return nil
		}
		closedAt := now
		n.Status = models.NoteClosed
		n.ClosedAt = &closedAt
		n.ClosedBy = actor.Name
		return n
	})
	if note != nil {
		s.record(models.AuditNoteClosed, orderID, actor, map[string]interface{}{"note_id": noteID})
	}
	return note, err
}

func (s *orderService) CountUnread(orderID string) int {
	o := s.state.Orders.snapshot(orderID)
	if o == nil {
		return 0
	}
	count := 0
	for _, n := range o.Notes {
		if n.Status == models.NoteOpen && !n.IsRead {
			count++
		}
	}
	return count
}

func (s *orderService) CountTotal(orderID string) int {
	o := s.state.Orders.snapshot(orderID)
	if o == nil {
		return 0
	}
	return len(o.Notes)
}

// updateNotes rewrites the whole note list of the order after mutate changed it.
// mutate returns the affected note, or nil to abandon the change.
func (s *orderService) updateNotes(ctx context.Context, orderID string, mutate func(o *models.Order, now time.Time) *models.Note) (*models.Note, error) {
	order := s.state.Orders.snapshot(orderID)
	if order == nil {
		return nil, nil
	}

	now := s.now()
	note := mutate(order, now)
	if note == nil {
		return nil, nil
	}
	result := *note

	order.UpdatedAt = now
	if err := s.state.Orders.repo.UpdateOrderNotes(ctx, order.ID, order.Notes, now); err != nil {
		return nil, fmt.Errorf("updating notes of order %s: %w", orderID, err)
	}
	s.state.Orders.commit(order)
	s.state.Orders.Invalidate(ctx)
	return &result, nil
}

func findNote(o *models.Order, noteID string) *models.Note {
	for i := range o.Notes {
		if o.Notes[i].ID == noteID {
			return &o.Notes[i]
		}
	}
	return nil
}

// DeleteOrder removes the order from the gateway, then from memory.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string, actor models.Actor) error {
	err := s.state.Orders.repo.DeleteOrder(ctx, orderID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("deleting order %s: %w", orderID, err)
	}
	removed := s.state.Orders.remove(orderID)
	if err != nil && !removed {
		return ErrOrderNotFound
	}
	s.state.Orders.Invalidate(ctx)
	s.record(models.AuditOrderDeleted, orderID, actor, nil)
	utils.LogInfo("Order deleted", map[string]interface{}{"order_id": orderID, "by": actor.Name})
	return nil
}

func (s *orderService) AuditTrail(ctx context.Context, orderID string) ([]models.AuditEntry, error) {
	return s.audit.ListForOrder(ctx, orderID, 200)
}

func (s *orderService) record(action models.AuditAction, orderID string, actor models.Actor, data map[string]interface{}) {
	recordAudit(s.state, s.audit, action, orderID, actor, data, s.now())
}

// recordAudit writes an audit entry in the background.
func recordAudit(state *AppState, audit repositories.AuditRepository, action models.AuditAction, orderID string, actor models.Actor, data map[string]interface{}, at time.Time) {
	entry := &models.AuditEntry{
		Action:    action,
		OrderID:   orderID,
		Actor:     actor.Name,
		ActorRole: string(actor.Role),
		Data:      data,
		CreatedAt: at,
	}
	state.tasks.Go("audit "+string(action), 5*time.Second, func(ctx context.Context) error {
		return audit.Record(ctx, entry)
	})
}
