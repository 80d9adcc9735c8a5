package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store. It backs tests and single-process runs
// where durability across restarts is not needed.
type Memory struct {
	mu        sync.RWMutex
	streams   map[string][]string
	snapshots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		streams:   make(map[string][]string),
		snapshots: make(map[string][]byte),
	}
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.streams[key]; ok {
		return true, nil
	}
	_, ok := m.snapshots[key]
	return ok, nil
}

func (m *Memory) ReadLines(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines, ok := m.streams[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out, nil
}

func (m *Memory) AppendLine(_ context.Context, key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams[key] = append(m.streams[key], text)
	return nil
}

func (m *Memory) Overwrite(_ context.Context, key, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams[key] = []string{text}
	return nil
}

func (m *Memory) SaveSnapshot(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = data
	return nil
}

func (m *Memory) LoadSnapshot(_ context.Context, key string, v any) error {
	m.mu.RLock()
	data, ok := m.snapshots[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}
