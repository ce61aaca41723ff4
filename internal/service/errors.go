package service

import (
	"errors"
	"fmt"

	"brecho-backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrLookupSuperseded is returned to a caller whose address lookup was
	// overtaken by a newer one. The newer request's result wins.
	ErrLookupSuperseded = errors.New("address lookup superseded by a newer request")

	// ErrContractNotRead guards the acceptance latch: the contract must be
	// scrolled to its bottom before it can be accepted.
	ErrContractNotRead = errors.New("contrato deve ser lido até o fim antes de aceitar")

	// ErrPaymentNotConfirmed is the one-shot poll's answer when the
	// gateway does not report the payment approved yet.
	ErrPaymentNotConfirmed = errors.New("pagamento ainda não confirmado")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// PreconditionError names the single unmet precondition blocking a step
// advance. Surfaced to the user as-is; nothing is mutated on a failed
// advance.
type PreconditionError struct {
	Step    domain.CheckoutStep
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func precondition(step domain.CheckoutStep, message string) *PreconditionError {
	return &PreconditionError{Step: step, Message: message}
}

// ValidationError is a field-scoped schema failure. Non-fatal; blocks only
// the specific advance action.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
