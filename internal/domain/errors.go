package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidCode      = errors.New("invalid authorization code")
	ErrCodeExpired      = errors.New("expired authorization code")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrDelivery         = errors.New("delivery failed")
	ErrBadRequest       = errors.New("bad request")
)
