package services

import (
	"fmt"
	"sort"
	"time"

	"canvas_shop_backend/internal/models"

	"github.com/shopspring/decimal"
)

const reportDateLayout = "2006-01-02"

// ReportService computes dashboard metrics and sales reports from the loaded orders.
type ReportService interface {
	DashboardSummary(now time.Time) models.DashboardSummary
	SalesReport(params models.ReportRequestParams) ([]models.SalesReportItem, error)
}

type reportService struct {
	state *AppState
}

func NewReportService(state *AppState) ReportService {
	return &reportService{state: state}
}

// countsAsSale excludes returned orders and orders closed before they were ever delivered.
func countsAsSale(o *models.Order) bool {
	switch o.Status {
	case models.OrderStatusReturned:
		return false
	case models.OrderStatusClosed:
		for _, h := range o.StatusHistory {
			if h.Status == models.OrderStatusDelivered {
				return true
			}
		}
		return false
	}
	return true
}

func isOpen(s models.OrderStatus) bool {
	return s == models.OrderStatusNew || s == models.OrderStatusQueue || s == models.OrderStatusInProduction
}

func (s *reportService) DashboardSummary(now time.Time) models.DashboardSummary {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Weeks start on Monday.
	startOfWeek := startOfDay.AddDate(0, 0, -((int(startOfDay.Weekday()) + 6) % 7))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summary := models.DashboardSummary{
		OrdersByStatus:      map[models.OrderStatus]int{},
		TotalSalesToday:     decimal.Zero,
		TotalSalesThisWeek:  decimal.Zero,
		TotalSalesThisMonth: decimal.Zero,
	}
	orders, _ := s.state.Orders.List(models.OrderFilters{})
	for i := range orders {
		o := &orders[i]
		summary.OrdersByStatus[o.Status]++
		if isOpen(o.Status) {
			summary.OpenOrdersCount++
		}
		if o.PaymentMethod == models.PaymentCash && o.PaymentStatus != models.PaymentPaid && countsAsSale(o) {
			summary.UnpaidCashCount++
		}
		for _, n := range o.Notes {
			if n.Status == models.NoteOpen && !n.IsRead {
				summary.UnreadNotesCount++
			}
		}

		created := o.CreatedAt.In(now.Location())
		if !created.Before(startOfDay) {
			summary.OrdersToday++
		}
		if !countsAsSale(o) || created.After(now) {
			continue
		}
		if !created.Before(startOfDay) {
			summary.TotalSalesToday = summary.TotalSalesToday.Add(o.Total)
		}
		if !created.Before(startOfWeek) {
			summary.TotalSalesThisWeek = summary.TotalSalesThisWeek.Add(o.Total)
		}
		if !created.Before(startOfMonth) {
			summary.TotalSalesThisMonth = summary.TotalSalesThisMonth.Add(o.Total)
		}
	}
	return summary
}

// SalesReport groups sales by day, ISO week or month, newest period first.
func (s *reportService) SalesReport(params models.ReportRequestParams) ([]models.SalesReportItem, error) {
	periodKey, err := periodFormatter(params.Period)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if params.StartDate != "" {
		if start, err = time.Parse(reportDateLayout, params.StartDate); err != nil {
			return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if params.EndDate != "" {
		if end, err = time.Parse(reportDateLayout, params.EndDate); err != nil {
			return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidation)
		}
		end = end.AddDate(0, 0, 1)
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return nil, fmt.Errorf("%w: start_date is after end_date", ErrValidation)
	}

	byPeriod := map[string]*models.SalesReportItem{}
	orders, _ := s.state.Orders.List(models.OrderFilters{})
	for i := range orders {
		o := &orders[i]
		created := o.CreatedAt.UTC()
		if !countsAsSale(o) || (!start.IsZero() && created.Before(start)) || (!end.IsZero() && !created.Before(end)) {
			continue
		}
		key := periodKey(created)
		item, ok := byPeriod[key]
		if !ok {
			item = &models.SalesReportItem{Period: key, Subtotal: decimal.Zero, DeliveryTotal: decimal.Zero, Total: decimal.Zero}
			byPeriod[key] = item
		}
		item.OrdersCount++
		item.ItemsCount += max(o.ItemsCount, len(o.Items))
		item.Subtotal = item.Subtotal.Add(o.Subtotal)
		item.DeliveryTotal = item.DeliveryTotal.Add(o.DeliveryCost)
		item.Total = item.Total.Add(o.Total)
	}

	report := make([]models.SalesReportItem, 0, len(byPeriod))
	for _, item := range byPeriod {
		report = append(report, *item)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Period > report[j].Period })
	return report, nil
}

func periodFormatter(period string) (func(time.Time) string, error) {
	switch period {
	case "", "daily":
		return func(t time.Time) string { return t.Format(reportDateLayout) }, nil
	case "weekly":
		return func(t time.Time) string {
			y, w := t.ISOWeek()
			return fmt.Sprintf("%d-W%02d", y, w)
		}, nil
	case "monthly":
		return func(t time.Time) string { return t.Format("2006-01") }, nil
	default:
		return nil, fmt.Errorf("%w: period must be daily, weekly or monthly", ErrValidation)
	}
}
