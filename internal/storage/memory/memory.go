package memory

import (
	"context"
	"sync"

	"moneymanager/internal/storage"
)

// Slot keeps values in process memory. Nothing survives a restart.
type Slot struct {
	mu    sync.Mutex
	quota int64
	items map[string][]byte
}

func New(quota int64) *Slot {
	return &Slot{quota: quota, items: make(map[string][]byte)}
}

// Get returns a copy of the stored value or storage.ErrSlotEmpty.
func (s *Slot) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, storage.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (s *Slot) Put(_ context.Context, key string, value []byte) error {
	if err := storage.CheckQuota(value, s.quota); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value...)
	return nil
}

func (s *Slot) Close() error { return nil }
