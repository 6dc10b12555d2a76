package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrUnknownRedirectToken = errors.New("unknown transparent redirect token")
)

// InvalidTransitionError represents an invalid status transition attempt.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// NewInvalidTransitionError creates a new InvalidTransitionError.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NotAuthorizedError is returned when settling a transaction that is not
// in the authorized status.
type NotAuthorizedError struct {
	TransactionID string
	Status        string
}

func (e *NotAuthorizedError) Error() string {
	return "Transaction not authorized"
}

// NewNotAuthorizedError creates a new NotAuthorizedError.
func NewNotAuthorizedError(id, status string) *NotAuthorizedError {
	return &NotAuthorizedError{TransactionID: id, Status: status}
}
