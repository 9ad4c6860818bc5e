package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-publishing/pkg/model"
)

// Memory keeps encoded blobs in process. It round-trips through Encode and
// Decode so callers observe the same value shapes as the SQLite store.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, key string) (model.Values, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("store: option key is required")
	}
	m.mu.RLock()
	payload := m.blobs[key]
	m.mu.RUnlock()
	return Decode(payload)
}

func (m *Memory) Save(ctx context.Context, key string, values model.Values) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("store: option key is required")
	}
	payload, err := Encode(values)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blobs[key] = payload
	m.mu.Unlock()
	return nil
}
