package log

import (
	"time"

	"github.com/shopspring/decimal"
)

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldTxID        = "transaction_id"
	FieldTxType      = "transaction_type"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldFilter      = "filter"
	FieldCount       = "count"
	FieldVersion     = "version"
	FieldStorageKey  = "storage_key"
	FieldBackend     = "backend"
	FieldBytes       = "bytes"
	FieldLastSaved   = "last_saved"
	FieldRecordIndex = "record_index"
	FieldReason      = "reason"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentSummary = "summary"
	ComponentBackend = "backend"
	ComponentCache   = "cache"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpFilter   = "filter"
	OpSave     = "save"
	OpLoad     = "load"
	OpInfo     = "info"
	OpReport   = "report"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
	OpMigrate  = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(id int64, txType string, amount decimal.Decimal, category string) LogFields {
	f[FieldTxID] = id
	f[FieldTxType] = txType
	f[FieldAmount] = amount.String()
	f[FieldCategory] = category
	return f
}

// WithSave adds persistence fields
func (f LogFields) WithSave(key string, count int, savedAt time.Time) LogFields {
	f[FieldStorageKey] = key
	f[FieldCount] = count
	f[FieldLastSaved] = savedAt.UTC().Format(time.RFC3339)
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
