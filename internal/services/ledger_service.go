package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moneymanager/internal/cache"
	"moneymanager/internal/core"
	"moneymanager/internal/ledger"
	"moneymanager/internal/log"
	"moneymanager/internal/storage"
	"moneymanager/internal/summary"
)

// Repository is the persistence adapter the service needs.
type Repository interface {
	ledger.Repository
	Info(ctx context.Context) (storage.Info, error)
}

type reportKey struct {
	version uint64
	zone    string
}

// OpenResult describes how the ledger was restored.
type OpenResult struct {
	storage.LoadResult
	// Discarded holds the corruption error when the saved record was
	// ignored and the ledger started empty.
	Discarded error
}

// LedgerService orchestrates the store, its persistence and the derived reports.
type LedgerService struct {
	store   *ledger.Store
	repo    Repository
	loc     *time.Location
	reports *cache.LRU[reportKey, summary.Report]
	caches  *cache.Manager
	logger  *log.Logger
	cleanup func() error

	cacheTTL time.Duration
}

type Option func(*serviceOptions)

type serviceOptions struct {
	loc       *time.Location
	cacheSize int
	cacheTTL  time.Duration
	logger    *log.Logger
	clock     func() time.Time
	cleanup   func() error
}

// WithLocation sets the zone used for monthly grouping. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *serviceOptions) { o.loc = loc }
}

// WithReportCache sizes the report cache. A ttl of zero never expires entries.
func WithReportCache(size int, ttl time.Duration) Option {
	return func(o *serviceOptions) { o.cacheSize, o.cacheTTL = size, ttl }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *serviceOptions) { o.logger = logger }
}

// WithClock is forwarded to the store.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) { o.clock = now }
}

// WithCleanup registers a function run by Close, typically the slot cleanup.
func WithCleanup(fn func() error) Option {
	return func(o *serviceOptions) { o.cleanup = fn }
}

func NewLedgerService(repo Repository, opts ...Option) *LedgerService {
	o := serviceOptions{loc: time.UTC, cacheSize: 16, logger: log.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loc == nil {
		o.loc = time.UTC
	}
	if o.logger == nil {
		o.logger = log.Discard()
	}

	reports := cache.NewLRU[reportKey, summary.Report](o.cacheSize, o.cacheTTL)
	caches := cache.NewManager(o.logger)
	caches.Register(reports)

	return &LedgerService{
		store:    ledger.New(repo, ledger.WithClock(o.clock), ledger.WithLogger(o.logger)),
		repo:     repo,
		loc:      o.loc,
		reports:  reports,
		caches:   caches,
		logger:   o.logger.WithComponent(log.ComponentApp),
		cleanup:  o.cleanup,
		cacheTTL: o.cacheTTL,
	}
}

// Open performs the single load. A corrupt record is logged and discarded
// so the ledger starts empty; read failures are returned.
func (s *LedgerService) Open(ctx context.Context) (OpenResult, error) {
	res, err := s.store.Load(ctx)
	if s.cacheTTL > 0 {
		s.caches.Start(context.WithoutCancel(ctx), s.cacheTTL)
	}

	switch {
	case err == nil:
		for _, w := range res.Warnings {
			s.logger.WarnContext(ctx, "Stored transaction skipped", log.FieldReason, w.String())
		}
		return OpenResult{LoadResult: res}, nil
	case errors.Is(err, core.ErrCorruptData):
		s.logger.ErrorContext(ctx, "Saved ledger is corrupt, starting empty",
			log.FieldOperation, log.OpLoad,
			log.FieldError, err)
		return OpenResult{LoadResult: res, Discarded: err}, nil
	default:
		return OpenResult{}, fmt.Errorf("open ledger: %w", err)
	}
}

// AddTransaction adds a transaction. A *core.PersistenceError comes back
// together with the added transaction when only the save failed.
func (s *LedgerService) AddTransaction(ctx context.Context, d ledger.Draft) (core.Transaction, error) {
	return s.store.Add(ctx, d)
}

func (s *LedgerService) RemoveTransaction(ctx context.Context, id int64) (bool, error) {
	return s.store.Remove(ctx, id)
}

func (s *LedgerService) SetFilter(value string) error {
	return s.store.SetFilter(value)
}

func (s *LedgerService) Snapshot() core.Snapshot {
	return s.store.Snapshot()
}

// Report returns every derived view for the current state. Reports are
// shared with the cache and must not be modified.
func (s *LedgerService) Report(ctx context.Context) summary.Report {
	return s.ReportIn(ctx, s.loc)
}

// ReportIn is Report with months grouped in loc.
func (s *LedgerService) ReportIn(ctx context.Context, loc *time.Location) summary.Report {
	if loc == nil {
		loc = time.UTC
	}
	snap := s.store.Snapshot()
	key := reportKey{version: snap.Version, zone: loc.String()}

	if r, ok := s.reports.Get(key); ok {
		return r
	}

	r := summary.Build(snap, loc)
	s.reports.Set(key, r)
	s.logger.DebugContext(ctx, "Report built",
		log.FieldOperation, log.OpReport,
		log.FieldVersion, snap.Version,
		log.FieldCount, len(r.Transactions))
	return r
}

// StorageInfo reports what is currently persisted.
func (s *LedgerService) StorageInfo(ctx context.Context) (storage.Info, error) {
	info, err := s.repo.Info(ctx)
	if err != nil {
		return storage.Info{}, fmt.Errorf("storage info: %w", err)
	}
	return info, nil
}

// Close stops cache maintenance and releases the slot.
func (s *LedgerService) Close() error {
	s.caches.Stop()
	s.reports.Purge()
	if s.cleanup == nil {
		return nil
	}
	if err := s.cleanup(); err != nil {
		return fmt.Errorf("close ledger service: %w", err)
	}
	return nil
}
