package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tfx/internal/shared"
)

// KV is the storage primitive the document is kept in.
type KV interface {
	// Get returns the value at key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryKV is an in-process [KV].
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

// Open builds the [KV] named by cfg.Backend.
func Open(ctx context.Context, cfg shared.StoreConfig) (KV, error) {
	switch cfg.Backend {
	case "", "sqlite":
		kv, err := OpenSQLiteKV(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "redis":
		kv, err := OpenRedisKV(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedStore, cfg.Backend)
	}
}
