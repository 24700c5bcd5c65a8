package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// MaxDescriptionLength caps the free-form description.
const MaxDescriptionLength = 200

type (
	TransactionType string

	// Filter selects which transactions the list view shows. It is never persisted.
	Filter string

	Transaction struct {
		ID          int64
		Description string
		Amount      decimal.Decimal
		Type        TransactionType
		Category    string // grouped verbatim, case-sensitive
		Date        time.Time
	}
)

var (
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyCategory      = errors.New("empty category")
	ErrZeroDate           = errors.New("date cannot be zero")
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType accepts "income" or "expense", ignoring case and
// surrounding whitespace.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	return t, nil
}

// IsValid reports whether f is one of all, income or expense.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterIncome, FilterExpense:
		return true
	default:
		return false
	}
}

func (f Filter) String() string {
	return string(f)
}

// Matches reports whether a transaction of type t passes the filter.
func (f Filter) Matches(t TransactionType) bool {
	switch f {
	case FilterAll:
		return true
	case FilterIncome:
		return t == Income
	case FilterExpense:
		return t == Expense
	default:
		return false
	}
}

// ParseFilter is strict: the value must match exactly.
func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.IsValid() {
		return "", &InvalidFilterError{Value: s}
	}
	return f, nil
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == Income
}

// Validate checks every field of a stored transaction. The returned error is
// always a *ValidationError.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return &ValidationError{Field: "id", Err: ErrInvalidID}
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return &ValidationError{Field: "amount", Err: err}
	}
	if !t.Type.IsValid() {
		return &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	if strings.TrimSpace(t.Category) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Err: ErrZeroDate}
	}
	return nil
}

// ValidateNew applies Validate plus the limits that only bind user input.
// Records already saved are not held to them.
func (t Transaction) ValidateNew() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Err: ErrDescriptionTooLong}
	}
	return nil
}
