// Package errs defines the error taxonomy shared by repositories, services and
// handlers. Each kind has a sentinel for errors.Is checks; NotFoundError and
// ConstraintViolationError carry the details and unwrap to their sentinel.
package errs

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrOrderLocked         = errors.New("order is concluded")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInvalidInput        = errors.New("invalid input")
)

// NotFoundError reports that an entity with the given ID does not exist.
type NotFoundError struct {
	Entity string
	ID     any
}

// NewNotFoundError reports a missing entity of the given kind.
func NewNotFoundError(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConstraintViolationError reports a store-level or required-field violation.
type ConstraintViolationError struct {
	Entity string
	Reason string
	Cause  error
}

// NewConstraintViolationError reports a rule the entity breaks.
func NewConstraintViolationError(entity, reason string) *ConstraintViolationError {
	return &ConstraintViolationError{Entity: entity, Reason: reason}
}

// NewConstraintViolationErrorWithCause is NewConstraintViolationError with
// the store error that detected the violation.
func NewConstraintViolationErrorWithCause(entity, reason string, cause error) *ConstraintViolationError {
	return &ConstraintViolationError{Entity: entity, Reason: reason, Cause: cause}
}

func (e *ConstraintViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %v)", ErrConstraintViolation, e.Entity, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConstraintViolation, e.Entity, e.Reason)
}

func (e *ConstraintViolationError) Unwrap() error {
	return ErrConstraintViolation
}

// OrderLocked returns ErrOrderLocked annotated with the order ID.
func OrderLocked(orderID uint) error {
	return fmt.Errorf("order %d: %w", orderID, ErrOrderLocked)
}

// InvalidInput returns ErrInvalidInput annotated with a reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
