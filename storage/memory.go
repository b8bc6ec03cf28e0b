package storage

import (
	"context"
	"sync"
)

// Memory keeps the blob in memory. The zero value is an empty sink.
type Memory struct {
	mu   sync.Mutex
	blob string
	ok   bool
}

// NewMemory returns a sink already holding blob.
func NewMemory(blob string) *Memory {
	return &Memory{blob: blob, ok: true}
}

func (m *Memory) ReadBlob(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob, m.ok, nil
}

func (m *Memory) WriteBlob(_ context.Context, blob string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob, m.ok = blob, true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob, m.ok = "", false
	return nil
}
