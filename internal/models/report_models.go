package models

import "github.com/shopspring/decimal"

// SalesReportItem is the sales of one reporting period.
type SalesReportItem struct {
	Period        string          `json:"period"`
	OrdersCount   int             `json:"ordersCount"`
	ItemsCount    int             `json:"itemsCount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryTotal decimal.Decimal `json:"deliveryTotal"`
	Total         decimal.Decimal `json:"total"`
}

// DashboardSummary holds key metrics for the admin dashboard.
type DashboardSummary struct {
	OrdersByStatus      map[OrderStatus]int `json:"ordersByStatus"`
	OpenOrdersCount     int                 `json:"openOrdersCount"`
	UnreadNotesCount    int                 `json:"unreadNotesCount"`
	UnpaidCashCount     int                 `json:"unpaidCashCount"`
	OrdersToday         int                 `json:"ordersToday"`
	TotalSalesToday     decimal.Decimal     `json:"totalSalesToday"`
	TotalSalesThisWeek  decimal.Decimal     `json:"totalSalesThisWeek"`
	TotalSalesThisMonth decimal.Decimal     `json:"totalSalesThisMonth"`
}

// ReportRequestParams holds common parameters for requesting reports.
type ReportRequestParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD, inclusive
	Period    string `form:"period"`     // daily, weekly, monthly
}
