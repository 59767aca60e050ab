package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"canvas_shop_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumnNames = []string{
	"id", "order_number", "customer", "items", "subtotal", "delivery_cost", "total",
	"delivery_method", "payment_method", "payment_status", "status", "status_history", "notes", "shipping",
	"created_at", "updated_at",
}

func TestGetOrdersReturnsSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(orderColumnNames).
		AddRow("o1", "CV-240502-0001", []byte(`{"name":"Ana Pop","email":"ana@example.com"}`), int64(5),
			"320.00", "20.00", "340.00", "standard", "card", "paid", "queue",
			[]byte(`[{"status":"new","timestamp":"2024-05-02T10:00:00Z","changedBy":"system"}]`),
			"Client called to confirm", nil, created, created)
	mock.ExpectQuery(regexp.QuoteMeta("jsonb_array_length(items)")).WillReturnRows(rows)

	repo := NewOrderRepository(db)
	orders, err := repo.GetOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, 5, o.ItemsCount)
	assert.Empty(t, o.Items)
	assert.True(t, o.HasPlaceholderItems())
	assert.Equal(t, models.OrderStatusQueue, o.Status)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("340")))
	assert.Equal(t, "Ana Pop", o.Customer.Name)
	require.Len(t, o.StatusHistory, 1)
	require.Len(t, o.Notes, 1)
	assert.Equal(t, models.NoteClosed, o.Notes[0].Status)
	assert.Nil(t, o.Shipping)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByIDDecodesItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	items := `[{"type":"painting","paintingId":"p1","paintingTitle":"Sea","sizeId":"s1","quantity":2,"printType":"Print Canvas","price":"160"},
		{"type":"personalized","id":"x1","size":"30x40","orientation":"portrait","price":"90"}]`
	rows := sqlmock.NewRows(orderColumnNames).
		AddRow("o1", "CV-240502-0001", []byte(`{"name":"Ana Pop"}`), []byte(items),
			"250.00", "20.00", "270.00", "standard", "card", "paid", "new",
			[]byte(`[]`), `[{"id":"n1","text":"hi","status":"open","readBy":[]}]`,
			[]byte(`{"awbNumber":"AWB1","weightKg":"1.5","lengthCm":40,"widthCm":30,"heightCm":5}`), created, created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).WithArgs("o1").WillReturnRows(rows)

	repo := NewOrderRepository(db)
	o, err := repo.GetOrderByID(context.Background(), "o1")

	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.ItemsCount)
	painting, ok := o.Items[0].(*models.PaintingItem)
	require.True(t, ok)
	assert.Equal(t, 2, painting.Quantity)
	require.Len(t, o.Notes, 1)
	assert.Equal(t, "n1", o.Notes[0].ID)
	require.NotNil(t, o.Shipping)
	assert.Equal(t, "AWB1", o.Shipping.AWBNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(orderColumnNames))

	_, err = NewOrderRepository(db).GetOrderByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateOrderStatusWritesAllFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	order := &models.Order{
		ID:     "o1",
		Status: models.OrderStatusClosed,
		StatusHistory: []models.StatusChange{
			{Status: models.OrderStatusClosed, Timestamp: now, ChangedBy: "Ana", Reason: "client cancelled"},
		},
		Notes:     []models.Note{{ID: "n1", Text: `Status changed to "closed": client cancelled`, Status: models.NoteClosed}},
		UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1, status_history = $2, notes = $3, updated_at = $4 WHERE id = $5")).
		WithArgs("closed", jsonContains(`"reason":"client cancelled"`), sqlmock.AnyArg(), now, "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewOrderRepository(db).UpdateOrderStatus(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrderMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE id = $1")).
		WithArgs("o9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewOrderRepository(db).DeleteOrder(context.Background(), "o9"), ErrNotFound)
}
