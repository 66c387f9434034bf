package storage

import (
	"context"
	"sync"
)

// Memory is an in-process KV. GetErr and SetErr, when non-nil, are returned
// from every call so callers can exercise failure paths.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]string
	sets   int
	closed bool

	GetErr error
	SetErr error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrClosed
	}
	if m.GetErr != nil {
		return "", false, m.GetErr
	}

	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.SetErr != nil {
		return m.SetErr
	}

	m.data[key] = value
	m.sets++
	return nil
}

// Sets reports how many successful writes the store has seen.
func (m *Memory) Sets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
