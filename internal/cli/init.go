// Package cli provides common CLI initialization utilities shared by the
// commands under cmd/.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"moneymanager/internal/backend"
	"moneymanager/internal/config"
	"moneymanager/internal/log"
	"moneymanager/internal/services"
	"moneymanager/internal/storage"
)

// SetupLogger builds the process logger at the given level and installs it
// as the slog default. An unknown level falls back to info.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := log.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	cfg.Component = log.ComponentCLI
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. A missing file is
// not an error.
func LoadEnvFile(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenLedger builds the configured slot, wraps it in a repository and a
// ledger service, and performs the initial load.
func OpenLedger(ctx context.Context, logger *log.Logger, cfg *config.Config) (*services.LedgerService, services.OpenResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, services.OpenResult{}, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, services.OpenResult{}, fmt.Errorf("resolve timezone: %w", err)
	}

	res, err := backend.NewFactory(logger).CreateSlot(ctx, bcfg)
	if err != nil {
		return nil, services.OpenResult{}, err
	}

	repo := storage.NewRepository(res.Slot,
		storage.WithKey(cfg.StorageKey),
		storage.WithLogger(logger))

	svc := services.NewLedgerService(repo,
		services.WithLocation(loc),
		services.WithReportCache(cfg.ReportCacheSize, cfg.ReportCacheTTL),
		services.WithLogger(logger),
		services.WithCleanup(res.Cleanup))

	opened, err := svc.Open(ctx)
	if err != nil {
		_ = svc.Close()
		return nil, services.OpenResult{}, err
	}

	logger.Info("Ledger opened",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, bcfg.Type,
		log.FieldStorageKey, repo.Key(),
		log.FieldCount, svc.Snapshot().Len())
	return svc, opened, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
