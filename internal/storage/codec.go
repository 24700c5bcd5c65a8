package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"moneymanager/internal/core"

	"github.com/shopspring/decimal"
)

// DateLayout is ISO-8601 in UTC with millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

var errMissingField = errors.New("missing field")

// parseLayouts are tried in order when reading dates back.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

type record struct {
	Transactions []recordTransaction `json:"transactions"`
	LastSaved    string              `json:"lastSaved"`
}

type recordTransaction struct {
	ID          int64       `json:"id"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// rawRecord uses pointers so missing keys can be told apart from zero values.
type rawRecord struct {
	Transactions *[]json.RawMessage `json:"transactions"`
	LastSaved    *string            `json:"lastSaved"`
}

type rawTransaction struct {
	ID          *json.Number    `json:"id"`
	Description *string         `json:"description"`
	Amount      *json.Number    `json:"amount"`
	Type        *string         `json:"type"`
	Category    *string         `json:"category"`
	Date        json.RawMessage `json:"date"`
}

// Warning describes a stored transaction that was dropped during load.
type Warning struct {
	Index  int   // position in the stored list, -1 for record metadata
	ID     int64 // zero when unknown
	Reason string
}

func (w Warning) String() string {
	if w.Index < 0 {
		return w.Reason
	}
	return fmt.Sprintf("transaction %d (id %d): %s", w.Index, w.ID, w.Reason)
}

type decoded struct {
	transactions []core.Transaction
	lastSaved    time.Time
	warnings     []Warning
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate reads a date written by FormatDate or by other ISO-8601 writers.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.IsZero() {
				return time.Time{}, fmt.Errorf("zero date %q", s)
			}
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func encodeRecord(txs []core.Transaction, savedAt time.Time) ([]byte, error) {
	rec := record{
		Transactions: make([]recordTransaction, len(txs)),
		LastSaved:    FormatDate(savedAt),
	}
	for i, tx := range txs {
		rec.Transactions[i] = recordTransaction{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      json.Number(tx.Amount.String()),
			Type:        tx.Type.String(),
			Category:    tx.Category,
			Date:        FormatDate(tx.Date),
		}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (decoded, error) {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return decoded{}, &core.CorruptDataError{Index: -1, Err: err}
	}
	if raw.Transactions == nil {
		return decoded{}, &core.CorruptDataError{Index: -1, Field: "transactions", Err: errMissingField}
	}

	var out decoded
	switch {
	case raw.LastSaved == nil:
		out.warnings = append(out.warnings, Warning{Index: -1, Reason: "lastSaved missing"})
	default:
		t, err := ParseDate(*raw.LastSaved)
		if err != nil {
			out.warnings = append(out.warnings, Warning{Index: -1, Reason: fmt.Sprintf("lastSaved unparsable: %v", err)})
		} else {
			out.lastSaved = t
		}
	}

	items := *raw.Transactions
	out.transactions = make([]core.Transaction, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for i, item := range items {
		tx, warn, err := decodeTransaction(i, item)
		if err != nil {
			return decoded{}, err
		}
		if warn != nil {
			out.warnings = append(out.warnings, *warn)
			continue
		}
		if _, dup := seen[tx.ID]; dup {
			out.warnings = append(out.warnings, Warning{Index: i, ID: tx.ID, Reason: "duplicate id"})
			continue
		}
		seen[tx.ID] = struct{}{}
		out.transactions = append(out.transactions, tx)
	}
	return out, nil
}

// decodeTransaction returns a warning, not an error, when only the date is unusable.
func decodeTransaction(i int, item json.RawMessage) (core.Transaction, *Warning, error) {
	corrupt := func(field string, err error) error {
		return &core.CorruptDataError{Index: i, Field: field, Err: err}
	}

	var raw rawTransaction
	if err := json.Unmarshal(item, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return core.Transaction{}, nil, corrupt(typeErr.Field, err)
		}
		return core.Transaction{}, nil, corrupt("record", err)
	}

	if raw.ID == nil {
		return core.Transaction{}, nil, corrupt("id", errMissingField)
	}
	id, err := strconv.ParseInt(raw.ID.String(), 10, 64)
	if err != nil || id <= 0 {
		return core.Transaction{}, nil, corrupt("id", core.ErrInvalidID)
	}
	if raw.Description == nil {
		return core.Transaction{}, nil, corrupt("description", errMissingField)
	}
	if raw.Amount == nil {
		return core.Transaction{}, nil, corrupt("amount", errMissingField)
	}
	amount, err := decimal.NewFromString(raw.Amount.String())
	if err != nil {
		return core.Transaction{}, nil, corrupt("amount", core.ErrInvalidAmount)
	}
	if raw.Type == nil {
		return core.Transaction{}, nil, corrupt("type", errMissingField)
	}
	if raw.Category == nil {
		return core.Transaction{}, nil, corrupt("category", errMissingField)
	}

	date, reason := decodeDate(raw.Date)
	if reason != "" {
		return core.Transaction{}, &Warning{Index: i, ID: id, Reason: reason}, nil
	}

	tx := core.Transaction{
		ID:          id,
		Description: *raw.Description,
		Amount:      amount,
		Type:        core.TransactionType(*raw.Type),
		Category:    *raw.Category,
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			return core.Transaction{}, nil, corrupt(verr.Field, verr.Err)
		}
		return core.Transaction{}, nil, corrupt("record", err)
	}
	return tx, nil, nil
}

func decodeDate(raw json.RawMessage) (time.Time, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, "date missing"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Sprintf("date is not a string: %s", raw)
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Sprintf("date unparsable: %q", s)
	}
	return t, ""
}
