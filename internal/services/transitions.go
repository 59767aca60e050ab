package services

import "canvas_shop_backend/internal/models"

type transitionKey struct {
	role models.Role
	from models.OrderStatus
}

// transitions lists the statuses each non-admin role may move an order into, per current status.
// A full-admin may set any status.
var transitions = map[transitionKey][]models.OrderStatus{
	{models.RoleAccountManager, models.OrderStatusNew}:      {models.OrderStatusQueue, models.OrderStatusClosed},
	{models.RoleAccountManager, models.OrderStatusQueue}:    {models.OrderStatusInProduction, models.OrderStatusClosed},
	{models.RoleProduction, models.OrderStatusInProduction}: {models.OrderStatusDelivered, models.OrderStatusReturned},
}

// CanTransition reports whether role may move an order from one status to another.
func CanTransition(role models.Role, from, to models.OrderStatus) bool {
	if role == models.RoleFullAdmin {
		return true
	}
	for _, allowed := range transitions[transitionKey{role, from}] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses role may choose for an order currently in from.
func AllowedTransitions(role models.Role, from models.OrderStatus) []models.OrderStatus {
	if role == models.RoleFullAdmin {
		all := []models.OrderStatus{
			models.OrderStatusNew, models.OrderStatusQueue, models.OrderStatusInProduction,
			models.OrderStatusDelivered, models.OrderStatusReturned, models.OrderStatusClosed,
		}
		out := make([]models.OrderStatus, 0, len(all)-1)
		for _, s := range all {
			if s != from {
				out = append(out, s)
			}
		}
		return out
	}
	allowed := transitions[transitionKey{role, from}]
	return append([]models.OrderStatus{}, allowed...)
}
