package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/glidepath/internal/domain"
)

// SnapshotKey identifies a stored program snapshot. Programs are keyed by
// their identity, never by their parameters, so two programs with the same
// weights and length never collide.
type SnapshotKey struct {
	UserID    string
	ProgramID string
}

func (k SnapshotKey) String() string {
	return k.UserID + "/" + k.ProgramID
}

// KeyOf returns the key under which p's snapshot is stored.
func KeyOf(p *domain.Program) SnapshotKey {
	return SnapshotKey{UserID: p.UserID, ProgramID: p.ID}
}

// SnapshotStore persists program snapshots. Snapshots of different users
// never share storage, even under the same program ID. Load and Active
// return an error wrapping ErrNotFound when nothing is stored. Deleting a
// missing snapshot is not an error.
type SnapshotStore interface {
	Load(ctx context.Context, key SnapshotKey) (*domain.Snapshot, error)
	// Save stores snap under key, replacing every stored field, and makes
	// it the user's active program.
	Save(ctx context.Context, key SnapshotKey, snap *domain.Snapshot) error
	Delete(ctx context.Context, key SnapshotKey) error
	// Active returns the snapshot the user saved last. Once that snapshot
	// is deleted the user has no active program until the next Save, even
	// if older snapshots remain.
	Active(ctx context.Context, userID string) (*domain.Snapshot, error)
}

func checkKey(key SnapshotKey, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("saving snapshot %s: nil snapshot", key)
	}
	if got := KeyOf(&snap.Program); got != key {
		return fmt.Errorf("saving snapshot %s: snapshot belongs to %s", key, got)
	}
	return nil
}
