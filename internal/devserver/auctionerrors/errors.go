// Package auctionerrors holds the sentinel errors of the development stub
// backend. Handlers map them to HTTP statuses and the Russian error texts
// the pages display verbatim.
package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNewsNotFound    = errors.New("news not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Business logic errors
var (
	ErrNotStarted        = errors.New("auction has not started")
	ErrAuctionClosed     = errors.New("auction is closed")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidInput      = errors.New("invalid input")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBanned         = errors.New("user is banned")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("operation not allowed")
)

// BidTooLowError carries the computed minimum so the handler can report it
// in the error text.
type BidTooLowError struct {
	Minimum float64
}

func (e *BidTooLowError) Error() string {
	return "bid amount too low"
}

// Is matches the ErrBidTooLow sentinel.
func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}

// ValidationError carries a display-ready message for a rejected field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches the ErrInvalidInput sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
