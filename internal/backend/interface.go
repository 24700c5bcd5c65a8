package backend

import (
	"context"

	"moneymanager/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the slot instance and its cleanup function
type Result struct {
	Slot    storage.Slot
	Cleanup CleanupFunc
}

// Factory creates slots based on configuration
type Factory interface {
	CreateSlot(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for slot creation
type Config struct {
	Type Type

	// Quota in bytes applied by every slot; zero means unlimited.
	QuotaBytes int64

	// File specific
	DataDirectory string

	// SQLite specific
	SQLiteDBPath string
}

// Type represents the kind of durable slot
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
