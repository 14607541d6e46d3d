package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// NotFound wraps ErrNotFound with the entity kind and id.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BudgetExceededError is returned when a fee would push a movie's
// cumulative fees above its budget.
type BudgetExceededError struct {
	MovieID int64
	Total   decimal.Decimal
	Budget  decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("total fees %s would exceed the budget of movie %d (%s)",
		e.Total.StringFixed(2), e.MovieID, e.Budget.StringFixed(2))
}

// ReferentialIntegrityError is returned when deleting an actor or movie
// that shootings still reference.
type ReferentialIntegrityError struct {
	Entity    string
	ID        int64
	Shootings int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %d still has %d associated shooting(s)", e.Entity, e.ID, e.Shootings)
}

// ExportError reports a destination that could not be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
