package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// MemorySnapshotStore keeps snapshots in process memory. Stored values are
// copied on the way in and out.
type MemorySnapshotStore struct {
	mu     sync.Mutex
	snaps  map[SnapshotKey]*domain.Snapshot
	active map[string]SnapshotKey
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		snaps:  make(map[SnapshotKey]*domain.Snapshot),
		active: make(map[string]SnapshotKey),
	}
}

func (m *MemorySnapshotStore) Load(_ context.Context, key SnapshotKey) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[key]
	if !ok {
		return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
	}
	return snap.Clone(), nil
}

func (m *MemorySnapshotStore) Save(_ context.Context, key SnapshotKey, snap *domain.Snapshot) error {
	if err := checkKey(key, snap); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[key] = snap.Clone()
	m.active[key.UserID] = key
	return nil
}

func (m *MemorySnapshotStore) Delete(_ context.Context, key SnapshotKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, key)
	if m.active[key.UserID] == key {
		delete(m.active, key.UserID)
	}
	return nil
}

func (m *MemorySnapshotStore) Active(_ context.Context, userID string) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.active[userID]
	if !ok {
		return nil, fmt.Errorf("active program for %s: %w", userID, ErrNotFound)
	}
	return m.snaps[key].Clone(), nil
}
