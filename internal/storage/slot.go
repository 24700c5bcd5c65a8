package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultKey is the well-known key the ledger record lives under.
const DefaultKey = "moneyManagerData"

// DefaultQuotaBytes mirrors the usual browser localStorage budget.
const DefaultQuotaBytes = 5 << 20

var (
	// ErrSlotEmpty is returned by Slot.Get when nothing is stored under the key.
	ErrSlotEmpty = errors.New("slot empty")
	// ErrQuotaExceeded is returned by Slot.Put when the value is over the slot quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Slot is a durable key-value location provided by the host environment.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Timestamped is implemented by slots that record when a key was last written.
type Timestamped interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// CheckQuota returns ErrQuotaExceeded when value is larger than quota.
// A quota of zero or less means unlimited.
func CheckQuota(value []byte, quota int64) error {
	if quota > 0 && int64(len(value)) > quota {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQuotaExceeded, len(value), quota)
	}
	return nil
}
