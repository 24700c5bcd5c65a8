package ledger

import (
	"context"

	"moneymanager/internal/core"
	"moneymanager/internal/storage"
)

// Ports for the persistence adapter.
type (
	Saver interface {
		Save(ctx context.Context, snap core.Snapshot) error
	}

	Loader interface {
		// Load returns Found=false on first run and *core.CorruptDataError
		// when the saved record cannot be used.
		Load(ctx context.Context) (storage.LoadResult, error)
	}

	Repository interface {
		Saver
		Loader
	}
)
