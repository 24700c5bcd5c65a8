package core

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is on the typed errors below.
var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrPersistence   = errors.New("persistence failed")
	ErrCorruptData   = errors.New("corrupt data")
)

// ValidationError reports a rejected field on add. The store is unchanged.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidFilterError reports a filter value outside all/income/expense.
type InvalidFilterError struct {
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: must be one of all, income, expense", e.Value)
}

func (e *InvalidFilterError) Is(target error) bool { return target == ErrInvalidFilter }

// PersistenceError reports a failed save. The in-memory mutation that
// triggered the save is kept.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// CorruptDataError reports a stored record that cannot be loaded.
// Index is the offending transaction position, or -1 for the record itself.
type CorruptDataError struct {
	Index int
	Field string
	Err   error
}

func (e *CorruptDataError) Error() string {
	if e.Index < 0 {
		if e.Field == "" {
			return fmt.Sprintf("corrupt data: %v", e.Err)
		}
		return fmt.Sprintf("corrupt data: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("corrupt data: transaction %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }
