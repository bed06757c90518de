package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates an expense total (or explicit share) that is not a
// non-negative decimal representable in the currency's precision.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrInvalidSplit indicates a split that cannot be computed: no owed participants,
// a payer outside the participant set, or policy weights that do not add up.
var ErrInvalidSplit = fmt.Errorf("%w: invalid split", ErrValidation)

// ErrMalformedExpense marks a persisted expense that cannot take part in debt folding.
var ErrMalformedExpense = errors.New("malformed expense")

// MalformedExpenseError is the non-fatal warning produced when an expense is
// skipped by the debt fold. It matches ErrMalformedExpense with errors.Is.
type MalformedExpenseError struct {
	ExpenseID string
	Reason    string
}

func (e *MalformedExpenseError) Error() string {
	return fmt.Sprintf("malformed expense %s: %s", e.ExpenseID, e.Reason)
}

// Is reports whether target is ErrMalformedExpense.
func (e *MalformedExpenseError) Is(target error) bool {
	return target == ErrMalformedExpense
}
