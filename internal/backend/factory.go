package backend

import (
	"context"
	"fmt"

	"moneymanager/internal/log"
	"moneymanager/internal/storage/file"
	"moneymanager/internal/storage/memory"
	"moneymanager/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSlot implements Factory.CreateSlot
func (f *DefaultFactory) CreateSlot(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemorySlot(config), nil
	case FileBackend:
		return f.createFileSlot(config)
	case SQLiteBackend:
		return f.createSQLiteSlot(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemorySlot(config Config) *Result {
	slot := memory.New(config.QuotaBytes)

	f.logger.Warn("Initialized memory backend, data will not survive restarts",
		log.FieldBackend, MemoryBackend)

	return &Result{Slot: slot, Cleanup: slot.Close}
}

func (f *DefaultFactory) createFileSlot(config Config) (*Result, error) {
	slot, err := file.New(config.DataDirectory, config.QuotaBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file slot: %w", err)
	}

	f.logger.Info("Initialized file backend",
		log.FieldBackend, FileBackend,
		"data_directory", slot.Dir())

	return &Result{Slot: slot, Cleanup: slot.Close}, nil
}

func (f *DefaultFactory) createSQLiteSlot(config Config) (*Result, error) {
	slot, err := sqlite.New(config.SQLiteDBPath, config.QuotaBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite slot: %w", err)
	}

	f.logger.Info("Initialized SQLite backend",
		log.FieldBackend, SQLiteBackend,
		"db_path", config.SQLiteDBPath)

	return &Result{Slot: slot, Cleanup: slot.Close}, nil
}
