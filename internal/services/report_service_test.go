package services

import (
	"context"
	"testing"
	"time"

	"canvas_shop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportOrder(id string, status models.OrderStatus, created time.Time, total string) *models.Order {
	o := newOrder(id, status)
	o.CreatedAt = created
	o.Total = d(total)
	o.Subtotal = d(total).Sub(d("20"))
	return o
}

func TestCountsAsSale(t *testing.T) {
	delivered := newOrder("o1", models.OrderStatusClosed)
	delivered.StatusHistory = append(delivered.StatusHistory, models.StatusChange{Status: models.OrderStatusDelivered})
	cancelled := newOrder("o2", models.OrderStatusClosed)

	assert.True(t, countsAsSale(delivered))
	assert.False(t, countsAsSale(cancelled))
	assert.False(t, countsAsSale(newOrder("o3", models.OrderStatusReturned)))
	assert.True(t, countsAsSale(newOrder("o4", models.OrderStatusQueue)))
}

func TestDashboardSummary(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	today := reportOrder("o1", models.OrderStatusNew, now.Add(-time.Hour), "100")
	today.PaymentMethod = models.PaymentCash
	today.PaymentStatus = models.PaymentUnpaid
	today.Notes = []models.Note{{ID: "n1", Status: models.NoteOpen}, {ID: "n2", Status: models.NoteClosed}}
	monday := reportOrder("o2", models.OrderStatusInProduction, time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC), "50")
	earlyMonth := reportOrder("o3", models.OrderStatusDelivered, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC), "30")
	returned := reportOrder("o4", models.OrderStatusReturned, now.Add(-2*time.Hour), "999")

	env := newTestEnv(today, monday, earlyMonth, returned)
	require.NoError(t, env.state.Init(context.Background()))

	summary := NewReportService(env.state).DashboardSummary(now)

	assert.Equal(t, 1, summary.OrdersByStatus[models.OrderStatusNew])
	assert.Equal(t, 1, summary.OrdersByStatus[models.OrderStatusReturned])
	assert.Equal(t, 2, summary.OpenOrdersCount)
	assert.Equal(t, 1, summary.UnreadNotesCount)
	assert.Equal(t, 1, summary.UnpaidCashCount)
	assert.Equal(t, 2, summary.OrdersToday)
	assert.Equal(t, "100.00", summary.TotalSalesToday.StringFixed(2))
	assert.Equal(t, "150.00", summary.TotalSalesThisWeek.StringFixed(2))
	assert.Equal(t, "180.00", summary.TotalSalesThisMonth.StringFixed(2))
}

func TestSalesReport(t *testing.T) {
	env := newTestEnv(
		reportOrder("o1", models.OrderStatusNew, time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC), "100"),
		reportOrder("o2", models.OrderStatusQueue, time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC), "60"),
		reportOrder("o3", models.OrderStatusDelivered, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC), "30"),
		reportOrder("o4", models.OrderStatusReturned, time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC), "999"),
	)
	require.NoError(t, env.state.Init(context.Background()))
	svc := NewReportService(env.state)

	daily, err := svc.SalesReport(models.ReportRequestParams{StartDate: "2024-05-01", EndDate: "2024-05-15"})
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-05-15", daily[0].Period)
	assert.Equal(t, 2, daily[0].OrdersCount)
	assert.Equal(t, "160.00", daily[0].Total.StringFixed(2))
	assert.Equal(t, "40.00", daily[0].DeliveryTotal.StringFixed(2))
	assert.Equal(t, "2024-05-02", daily[1].Period)

	monthly, err := svc.SalesReport(models.ReportRequestParams{Period: "monthly"})
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, "2024-05", monthly[0].Period)
	assert.Equal(t, 3, monthly[0].OrdersCount)

	weekly, err := svc.SalesReport(models.ReportRequestParams{Period: "weekly", StartDate: "2024-05-10"})
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, "2024-W20", weekly[0].Period)

	_, err = svc.SalesReport(models.ReportRequestParams{Period: "yearly"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SalesReport(models.ReportRequestParams{StartDate: "15/05/2024"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SalesReport(models.ReportRequestParams{StartDate: "2024-05-20", EndDate: "2024-05-10"})
	assert.ErrorIs(t, err, ErrValidation)
}
