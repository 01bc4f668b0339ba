package domain

import "errors"

// Business errors recognized at the HTTP boundary. Repositories and services
// wrap these with fmt.Errorf("...: %w", err) so callers can errors.Is them.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrTableUnavailable  = errors.New("table unavailable")
)
