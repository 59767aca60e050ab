package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"canvas_shop_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	// GetOrders returns every order without line items; ItemsCount carries the item count instead.
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
	UpdateOrderNotes(ctx context.Context, orderID string, notes []models.Note, updatedAt time.Time) error
	UpdateOrderShipping(ctx context.Context, orderID string, shipping *models.Shipping, updatedAt time.Time) error
	DeleteOrder(ctx context.Context, orderID string) error
}

type orderRepository struct {
	db SQLExecutor
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db SQLExecutor) OrderRepository {
	return &orderRepository{db: db}
}

const orderSummaryColumns = `id, order_number, customer, jsonb_array_length(items), subtotal, delivery_cost, total,
	delivery_method, payment_method, payment_status, status, status_history, notes, shipping, created_at, updated_at`

const orderDetailColumns = `id, order_number, customer, items, subtotal, delivery_cost, total,
	delivery_method, payment_method, payment_status, status, status_history, notes, shipping, created_at, updated_at`

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	customer, err := json.Marshal(order.Customer)
	if err != nil {
		return fmt.Errorf("encoding customer: %w", err)
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	history, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return fmt.Errorf("encoding status history: %w", err)
	}
	notes, err := models.EncodeNotes(order.Notes)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}
	shipping, err := encodeShipping(order.Shipping)
	if err != nil {
		return err
	}

	query := `INSERT INTO orders
	            (id, order_number, customer, items, subtotal, delivery_cost, total,
	             delivery_method, payment_method, payment_status, status, status_history, notes, shipping,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = r.db.ExecContext(ctx, query,
		order.ID, order.OrderNumber, customer, items, order.Subtotal, order.DeliveryCost, order.Total,
		order.DeliveryMethod, order.PaymentMethod, order.PaymentStatus, order.Status, history, notes, shipping,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderSummaryColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows, false)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating orders: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `SELECT ` + orderDetailColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, orderID), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// UpdateOrderStatus writes status, history and notes of order in one statement.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	history, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return fmt.Errorf("encoding status history: %w", err)
	}
	notes, err := models.EncodeNotes(order.Notes)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}

	query := `UPDATE orders SET status = $1, status_history = $2, notes = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, order.Status, history, notes, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %s: %v", ErrDatabaseError, order.ID, err)
	}
	return requireAffected(result, "orders", order.ID)
}

func (r *orderRepository) UpdateOrderNotes(ctx context.Context, orderID string, notes []models.Note, updatedAt time.Time) error {
	encoded, err := models.EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}
	query := `UPDATE orders SET notes = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, encoded, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating notes for order ID %s: %v", ErrDatabaseError, orderID, err)
	}
	return requireAffected(result, "orders", orderID)
}

func (r *orderRepository) UpdateOrderShipping(ctx context.Context, orderID string, shipping *models.Shipping, updatedAt time.Time) error {
	encoded, err := encodeShipping(shipping)
	if err != nil {
		return err
	}
	query := `UPDATE orders SET shipping = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, encoded, updatedAt, orderID)
	if err != nil {
		return fmt.Errorf("%w: updating shipping for order ID %s: %v", ErrDatabaseError, orderID, err)
	}
	return requireAffected(result, "orders", orderID)
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("%w: deleting order ID %s: %v", ErrDatabaseError, orderID, err)
	}
	return requireAffected(result, "orders", orderID)
}

func scanOrder(s scanner, withItems bool) (*models.Order, error) {
	var (
		o                 models.Order
		customer, history []byte
		items, shipping   []byte
		itemsCount        sql.NullInt64
		notes             sql.NullString
	)

	itemsDest := interface{}(&itemsCount)
	if withItems {
		itemsDest = &items
	}

	err := s.Scan(
		&o.ID, &o.OrderNumber, &customer, itemsDest, &o.Subtotal, &o.DeliveryCost, &o.Total,
		&o.DeliveryMethod, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &history, &notes, &shipping,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
	}

	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("%w: decoding customer of order %s: %v", ErrDatabaseError, o.ID, err)
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
			return nil, fmt.Errorf("%w: decoding status history of order %s: %v", ErrDatabaseError, o.ID, err)
		}
	}
	if withItems {
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.Items); err != nil {
				return nil, fmt.Errorf("%w: decoding items of order %s: %v", ErrDatabaseError, o.ID, err)
			}
		}
		o.ItemsCount = len(o.Items)
	} else {
		o.ItemsCount = int(itemsCount.Int64)
	}
	if len(shipping) > 0 {
		o.Shipping = &models.Shipping{}
		if err := json.Unmarshal(shipping, o.Shipping); err != nil {
			return nil, fmt.Errorf("%w: decoding shipping of order %s: %v", ErrDatabaseError, o.ID, err)
		}
	}
	o.Notes = models.DecodeNotes(notes.String, o.CreatedAt)
	return &o, nil
}

func encodeShipping(s *models.Shipping) (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding shipping: %w", err)
	}
	return data, nil
}
