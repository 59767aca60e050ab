package services

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrTransitionNotAllowed = errors.New("status transition not allowed for role")
	ErrCheckoutTimeout      = errors.New("order creation timed out")
	ErrNoAWB                = errors.New("order has no AWB")

	// ErrValidation marks a request rejected before any state change; wrap it with details.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by catalog collections for unknown ids.
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUsernameTaken      = errors.New("username already taken")
)
