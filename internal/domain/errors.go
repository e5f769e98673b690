package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrPriceUnavailable  = errors.New("price unavailable")
	ErrAmountTooSmall    = errors.New("amount too small")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPersistence       = errors.New("persistence error")
	ErrOwnerConflict     = errors.New("owner conflict")
	ErrUserNotRegistered = errors.New("user not registered")
)

// InvalidTransitionError описывает нарушение предусловия машины состояний. Сравнивается через errors.Is
// с ErrInvalidTransition.
type InvalidTransitionError struct {
	Entity string
	ID     int64
	From   string
	To     string
}

func NewInvalidTransitionError(entity string, id int64, from, to string) error {
	return &InvalidTransitionError{Entity: entity, ID: id, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %d: cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
