package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Types lists every valid Type in display order.
var Types = []Type{TypeIncome, TypeExpense}

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// DateLayout is the persisted timestamp format. Lexical order matches chronological order.
const DateLayout = "2006-01-02 15:04:05"

var (
	// ErrValidation is wrapped by every input rejection.
	ErrValidation = errors.New("validation failed")
	// ErrStorage is wrapped by every persistence failure.
	ErrStorage = errors.New("storage failure")

	ErrInvalidAmount   = fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	ErrMissingCategory = fmt.Errorf("%w: category is required", ErrValidation)
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrInvalidType     = fmt.Errorf("%w: type must be income or expense", ErrValidation)
	ErrInvalidDate     = fmt.Errorf("%w: invalid date", ErrValidation)
)

// Transaction represents a single dated income or expense entry.
type Transaction struct {
	ID          int64
	Date        time.Time
	Type        Type
	Category    string
	Amount      decimal.Decimal
	Description string // empty when not provided, never absent
}

// CreateParams carries the caller supplied fields of a new transaction.
type CreateParams struct {
	Date        time.Time // zero means "now"
	Type        Type
	Category    string
	Amount      decimal.Decimal
	Description string
}

// Validate checks the invariants every stored transaction must satisfy.
func (p CreateParams) Validate() error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(p.Category) == "" {
		return ErrMissingCategory
	}

	if !p.Type.Valid() {
		return ErrInvalidType
	}

	return nil
}
