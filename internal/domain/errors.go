package domain

import "errors"

// Stable error taxonomy. Every layer wraps these with %w and callers match
// with errors.Is; raw storage error text never crosses the API boundary.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorizedRole  = errors.New("role not authorized for this transition")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTransactionFailed = errors.New("transaction failed")
)
