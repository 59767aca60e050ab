package services

import "canvas_shop_backend/internal/models"

// keepExisting decides whether an order already in memory wins over a freshly listed copy.
// The list endpoint carries placeholder items, and a detailed fetch or local note write
// may be newer than the list snapshot. This is a heuristic, not conflict resolution.
func keepExisting(existing, fresh *models.Order) bool {
	if len(existing.Items) > 0 && fresh.HasPlaceholderItems() {
		return true
	}
	return len(existing.Notes) > len(fresh.Notes)
}

// MergeOrders returns fresh in its order, substituting the existing copy where keepExisting holds.
// Orders missing from fresh are dropped.
func MergeOrders(existing, fresh []*models.Order) []*models.Order {
	byID := make(map[string]*models.Order, len(existing))
	for _, o := range existing {
		byID[o.ID] = o
	}

	merged := make([]*models.Order, 0, len(fresh))
	for _, f := range fresh {
		if e, ok := byID[f.ID]; ok && keepExisting(e, f) {
			merged = append(merged, e)
			continue
		}
		merged = append(merged, f)
	}
	return merged
}
