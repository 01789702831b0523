package clienterrors

import "errors"

// Validation errors caught before any network call
var (
	ErrNotAuthenticated  = errors.New("authentication required")
	ErrBelowMinimum      = errors.New("bid below minimum")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotBiddable       = errors.New("auction not open for bidding")
)

// Gateway-level errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("not logged in")
	ErrForbidden      = errors.New("permission denied")
	ErrServerRejected = errors.New("request rejected by server")
	ErrUnavailable    = errors.New("server unreachable")
)
