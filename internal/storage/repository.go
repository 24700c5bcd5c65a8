package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"moneymanager/internal/core"
	"moneymanager/internal/log"
)

// Repository persists ledger snapshots as a single JSON record in a Slot.
type Repository struct {
	slot   Slot
	key    string
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(r *Repository) {
		if key != "" {
			r.key = key
		}
	}
}

// WithClock sets the clock used for the lastSaved timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger.WithComponent(log.ComponentStorage)
		}
	}
}

func NewRepository(slot Slot, opts ...Option) *Repository {
	r := &Repository{
		slot:   slot,
		key:    DefaultKey,
		now:    time.Now,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the storage key the record is written under.
func (r *Repository) Key() string {
	return r.key
}

// LoadResult is the outcome of a load. Found is false on first run.
type LoadResult struct {
	Found        bool
	Transactions []core.Transaction
	LastSaved    time.Time
	// Warnings lists records dropped during a partial recovery.
	Warnings []Warning
}

// Info summarizes what is currently saved.
type Info struct {
	Saved     bool
	Count     int
	LastSaved time.Time
}

// Save writes the snapshot's transactions and a save timestamp. The filter
// is not persisted. Failures are returned as *core.PersistenceError.
func (r *Repository) Save(ctx context.Context, snap core.Snapshot) error {
	savedAt := r.now()
	data, err := encodeRecord(snap.Transactions, savedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to encode ledger record", log.FieldError, err)
		return &core.PersistenceError{Op: "encode", Err: err}
	}

	if err := r.slot.Put(ctx, r.key, data); err != nil {
		r.logger.ErrorContext(ctx, "Failed to write ledger record",
			log.FieldStorageKey, r.key,
			log.FieldBytes, len(data),
			log.FieldError, err)
		return &core.PersistenceError{Op: "write", Err: err}
	}

	r.logger.WithFields(log.NewFields().
		WithOperation(log.OpSave).
		WithSave(r.key, len(snap.Transactions), savedAt)).
		DebugContext(ctx, "Ledger saved", log.FieldBytes, len(data))
	return nil
}

// Load reads the record back. A missing record is not an error. A malformed
// record yields *core.CorruptDataError; records with unusable dates are
// dropped and reported in LoadResult.Warnings.
func (r *Repository) Load(ctx context.Context) (LoadResult, error) {
	data, err := r.slot.Get(ctx, r.key)
	if errors.Is(err, ErrSlotEmpty) {
		r.logger.InfoContext(ctx, "No saved ledger found", log.FieldStorageKey, r.key)
		return LoadResult{}, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read ledger record", log.FieldStorageKey, r.key, log.FieldError, err)
		return LoadResult{}, &core.PersistenceError{Op: "read", Err: err}
	}

	dec, err := decodeRecord(data)
	if err != nil {
		r.logger.ErrorContext(ctx, "Saved ledger is corrupt", log.FieldStorageKey, r.key, log.FieldError, err)
		return LoadResult{Found: true}, err
	}

	for _, w := range dec.warnings {
		r.logger.WarnContext(ctx, "Dropped stored transaction",
			log.FieldRecordIndex, w.Index,
			log.FieldTxID, w.ID,
			log.FieldReason, w.Reason)
	}

	r.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldStorageKey, r.key,
		log.FieldCount, len(dec.transactions),
		"dropped", len(dec.warnings))

	return LoadResult{
		Found:        true,
		Transactions: dec.transactions,
		LastSaved:    dec.lastSaved,
		Warnings:     dec.warnings,
	}, nil
}

// Info reports the saved transaction count and last save time without
// validating individual records. When the record carries no usable
// lastSaved, a Timestamped slot's write time is used instead.
func (r *Repository) Info(ctx context.Context) (Info, error) {
	data, err := r.slot.Get(ctx, r.key)
	if errors.Is(err, ErrSlotEmpty) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, &core.PersistenceError{Op: "read", Err: err}
	}

	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return Info{}, &core.CorruptDataError{Index: -1, Err: err}
	}
	if raw.Transactions == nil {
		return Info{}, &core.CorruptDataError{Index: -1, Field: "transactions", Err: errMissingField}
	}

	info := Info{Saved: true, Count: len(*raw.Transactions)}
	if raw.LastSaved != nil {
		if t, err := ParseDate(*raw.LastSaved); err == nil {
			info.LastSaved = t
		}
	}
	if ts, ok := r.slot.(Timestamped); ok && info.LastSaved.IsZero() {
		if t, err := ts.UpdatedAt(ctx, r.key); err == nil {
			info.LastSaved = t
		} else {
			r.logger.DebugContext(ctx, "Slot write time unavailable", log.FieldStorageKey, r.key, log.FieldError, err)
		}
	}
	return info, nil
}
