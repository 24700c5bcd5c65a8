// Package ledger holds the transaction store: the single owner of the
// ledger's transactions and active filter.
package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"moneymanager/internal/core"
	"moneymanager/internal/log"
	"moneymanager/internal/storage"

	"github.com/shopspring/decimal"
)

// ErrAlreadyLoaded is returned by Load after the first attempt.
var ErrAlreadyLoaded = errors.New("ledger already loaded")

// Draft is the user input for a new transaction. A zero Date means now.
type Draft struct {
	Description string
	Amount      decimal.Decimal
	Type        core.TransactionType
	Category    string
	Date        time.Time
}

type Store struct {
	mu      sync.Mutex
	items   []core.Transaction
	filter  core.Filter
	version uint64
	loaded  bool

	repo   Repository
	now    func() time.Time
	logger *log.Logger
}

type Option func(*Store)

// WithClock sets the clock used for IDs and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.WithComponent(log.ComponentLedger)
		}
	}
}

// New returns an empty store saving through repo.
func New(repo Repository, opts ...Option) *Store {
	s := &Store{
		filter: core.FilterAll,
		repo:   repo,
		now:    time.Now,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates the draft, appends the new transaction and saves. On a
// save failure the transaction stays in the store and is returned together
// with the *core.PersistenceError.
func (s *Store) Add(ctx context.Context, d Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tx := core.Transaction{
		ID:          s.nextID(now),
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount,
		Type:        d.Type,
		Category:    strings.TrimSpace(d.Category),
		Date:        d.Date,
	}
	if tx.Date.IsZero() {
		tx.Date = now
	}
	if err := tx.ValidateNew(); err != nil {
		s.logger.DebugContext(ctx, "Rejected transaction",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
		return core.Transaction{}, err
	}

	s.items = append(s.items, tx)
	s.version++
	s.loaded = true

	s.logger.WithFields(log.NewFields().
		WithOperation(log.OpAdd).
		WithTransaction(tx.ID, tx.Type.String(), tx.Amount, tx.Category)).
		InfoContext(ctx, "Transaction added", log.FieldCount, len(s.items))

	return tx, s.save(ctx)
}

// nextID derives the id from the creation time and keeps ids strictly
// increasing when the clock repeats or goes backwards.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	var max int64
	for _, tx := range s.items {
		if tx.ID > max {
			max = tx.ID
		}
	}
	if id <= max {
		id = max + 1
	}
	if id <= 0 {
		id = 1
	}
	return id
}

// Remove deletes the transaction with id. It reports false without saving
// when no such transaction exists.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, tx := range s.items {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.DebugContext(ctx, "Transaction not found",
			log.FieldOperation, log.OpRemove,
			log.FieldTxID, id)
		return false, nil
	}

	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.version++
	s.loaded = true

	s.logger.InfoContext(ctx, "Transaction removed",
		log.FieldOperation, log.OpRemove,
		log.FieldTxID, id,
		log.FieldCount, len(s.items))

	return true, s.save(ctx)
}

// SetFilter changes the active filter. It never saves.
func (s *Store) SetFilter(value string) error {
	f, err := core.ParseFilter(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != f {
		s.filter = f
		s.version++
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() core.Snapshot {
	return core.Snapshot{
		Transactions: append([]core.Transaction(nil), s.items...),
		Filter:       s.filter,
		Version:      s.version,
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Load populates the store from the repository. It may run once, before any
// add or remove; afterwards it returns ErrAlreadyLoaded. The store is left
// empty when nothing is saved or the saved record is corrupt.
func (s *Store) Load(ctx context.Context) (storage.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return storage.LoadResult{}, ErrAlreadyLoaded
	}
	s.loaded = true

	res, err := s.repo.Load(ctx)
	if err != nil {
		return res, err
	}
	if !res.Found {
		return res, nil
	}

	s.items = append(s.items[:0], res.Transactions...)
	s.version++

	s.logger.InfoContext(ctx, "Ledger restored",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(s.items),
		log.FieldLastSaved, res.LastSaved)
	return res, nil
}

func (s *Store) save(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.snapshotLocked()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist ledger",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
		return err
	}
	return nil
}
