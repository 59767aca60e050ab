package services

import (
	"canvas_shop_backend/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountedPrice applies a percentage discount and rounds to bani.
func DiscountedPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return price.Mul(factor).Round(2)
}

// FrameOffered reports whether a frame price entry may be sold with the given print type.
// An empty print type is treated as canvas.
func FrameOffered(entry models.FramePrice, printType models.PrintType) bool {
	flag := entry.AvailableForCanvas
	if printType == models.PrintHartie {
		flag = entry.AvailableForPrint
	}
	return flag == nil || *flag
}

// FramePrice is the discounted price of frameTypeID on size, or zero when no frame is
// chosen, the size has no entry for it, or the entry is not offered for printType.
func FramePrice(size models.CanvasSize, frameTypeID string, printType models.PrintType) decimal.Decimal {
	if frameTypeID == "" {
		return decimal.Zero
	}
	entry, ok := size.FramePrices[frameTypeID]
	if !ok || !FrameOffered(entry, printType) {
		return decimal.Zero
	}
	return DiscountedPrice(entry.Price, entry.Discount)
}

// UnitPrice is the price of one painting print: discounted size price plus frame price.
func UnitPrice(size models.CanvasSize, frameTypeID string, printType models.PrintType) decimal.Decimal {
	return DiscountedPrice(size.Price, size.Discount).Add(FramePrice(size, frameTypeID, printType))
}

// LineTotal multiplies the stored unit price by quantity. Personalized items are single pieces.
func LineTotal(item models.CanvasItem) decimal.Decimal {
	switch it := item.(type) {
	case *models.PaintingItem:
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		return it.Price.Mul(decimal.NewFromInt(int64(qty)))
	case *models.PersonalizedItem:
		return it.Price
	default:
		return decimal.Zero
	}
}

// Subtotal sums the line totals of items.
func Subtotal(items models.LineItems) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it))
	}
	return sum
}

// PaintingFromPrice is the lowest discounted size price among the painting's available sizes.
// It returns nil when none of the sizes is known.
func PaintingFromPrice(p *models.Painting, sizes []models.CanvasSize) *decimal.Decimal {
	byID := make(map[string]models.CanvasSize, len(sizes))
	for _, s := range sizes {
		byID[s.ID] = s
	}

	var lowest *decimal.Decimal
	for _, id := range p.AvailableSizes {
		s, ok := byID[id]
		if !ok {
			continue
		}
		price := DiscountedPrice(s.Price, s.Discount)
		if lowest == nil || price.LessThan(*lowest) {
			lowest = &price
		}
	}
	return lowest
}

// PriceQuote is the breakdown shown by the storefront configurator.
type PriceQuote struct {
	SizeID          string           `json:"sizeId"`
	FrameTypeID     string           `json:"frameTypeId,omitempty"`
	PrintType       models.PrintType `json:"printType"`
	BasePrice       decimal.Decimal  `json:"basePrice"`
	DiscountedPrice decimal.Decimal  `json:"discountedPrice"`
	FramePrice      decimal.Decimal  `json:"framePrice"`
	UnitPrice       decimal.Decimal  `json:"unitPrice"`
	Quantity        int              `json:"quantity"`
	LineTotal       decimal.Decimal  `json:"lineTotal"`
}

// QuoteFor composes the full price breakdown for one configured painting line.
func QuoteFor(size models.CanvasSize, frameTypeID string, printType models.PrintType, quantity int) PriceQuote {
	if printType == "" {
		printType = models.PrintCanvas
	}
	if quantity < 1 {
		quantity = 1
	}
	discounted := DiscountedPrice(size.Price, size.Discount)
	frame := FramePrice(size, frameTypeID, printType)
	unit := discounted.Add(frame)
	return PriceQuote{
		SizeID:          size.ID,
		FrameTypeID:     frameTypeID,
		PrintType:       printType,
		BasePrice:       size.Price,
		DiscountedPrice: discounted,
		FramePrice:      frame,
		UnitPrice:       unit,
		Quantity:        quantity,
		LineTotal:       unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
