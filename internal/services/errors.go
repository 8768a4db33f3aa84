package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"withdrawal-service/internal/models"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrValidation          = errors.New("validation error")
)

// WithdrawalError carries a caller-facing message alongside one of the
// sentinel kinds above, so errors.Is(err, ErrInvalidState) keeps working.
type WithdrawalError struct {
	Kind    error
	Message string
}

func (e *WithdrawalError) Error() string {
	return e.Message
}

func (e *WithdrawalError) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &WithdrawalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity, id any) error {
	return newError(ErrNotFound, "%s %v not found", entity, id)
}

func invalidState(action string, status models.WithdrawalStatus) error {
	return newError(ErrInvalidState, "cannot %s a request in state %s", action, status)
}

func insufficientBalance(requested, available decimal.Decimal) error {
	return newError(ErrInsufficientBalance,
		"insufficient balance: requested %s, available %s, shortfall %s",
		requested.StringFixed(2), available.StringFixed(2), requested.Sub(available).StringFixed(2))
}
