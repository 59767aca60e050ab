package utils

import "github.com/shopspring/decimal"

// FormatLei renders an amount the way the storefront displays it, e.g. "125.00 lei".
func FormatLei(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " lei"
}
