package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/glidepath/internal/db"
	"github.com/alexanderramin/glidepath/internal/domain"
)

// SQLiteSnapshotStore implements SnapshotStore on the programs and
// week_entries tables.
type SQLiteSnapshotStore struct {
	db  *sql.DB
	uow db.UnitOfWork
}

func NewSQLiteSnapshotStore(database *sql.DB) *SQLiteSnapshotStore {
	return NewSQLiteSnapshotStoreWithUoW(database, db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteSnapshotStoreWithUoW lets callers supply the transaction runner
// used for writes.
func NewSQLiteSnapshotStoreWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{db: database, uow: uow}
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context, key SnapshotKey) (*domain.Snapshot, error) {
	query := `SELECT id, user_id, start_weight, target_weight, total_weeks, start_date, created_at, last_updated
		FROM programs WHERE id = ? AND user_id = ?`
	row := s.db.QueryRowContext(ctx, query, key.ProgramID, key.UserID)

	var (
		snap                            domain.Snapshot
		startDate, createdAt, updatedAt string
	)
	p := &snap.Program
	err := row.Scan(&p.ID, &p.UserID, &p.StartWeight, &p.TargetWeight, &p.TotalWeeks,
		&startDate, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning program: %w", err)
	}
	if p.StartDate, err = parseTime(startDate); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if snap.LastUpdated, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing last_updated: %w", err)
	}

	weeks, err := s.listWeeks(ctx, key)
	if err != nil {
		return nil, err
	}
	snap.Weeks = weeks
	return &snap, nil
}

func (s *SQLiteSnapshotStore) listWeeks(ctx context.Context, key SnapshotKey) ([]domain.WeekEntry, error) {
	query := `SELECT week, target_weight, target_change, actual_weight, actual_change, status, recorded_at
		FROM week_entries WHERE user_id = ? AND program_id = ? ORDER BY week`
	rows, err := s.db.QueryContext(ctx, query, key.UserID, key.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}
	defer rows.Close()

	var weeks []domain.WeekEntry
	for rows.Next() {
		var (
			w              domain.WeekEntry
			actual, change sql.NullFloat64
			status         string
			recordedAt     sql.NullString
		)
		if err := rows.Scan(&w.Week, &w.TargetWeight, &w.TargetChange, &actual, &change, &status, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning week: %w", err)
		}
		w.ActualWeight = parseNullableFloat(actual)
		w.ActualChange = parseNullableFloat(change)
		w.Status = domain.WeekStatus(status)
		w.RecordedAt = parseNullableTime(recordedAt)
		weeks = append(weeks, w)
	}
	return weeks, rows.Err()
}

// Save writes the program row, replaces all of its weeks and makes it the
// user's active program, in one transaction. Every program column is
// overwritten so a re-saved program never keeps stale parameters.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, key SnapshotKey, snap *domain.Snapshot) error {
	if err := checkKey(key, snap); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		p := snap.Program
		_, err := tx.ExecContext(ctx, `INSERT INTO programs
			(user_id, id, start_weight, target_weight, total_weeks, start_date, created_at, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id, id) DO UPDATE SET
				start_weight  = excluded.start_weight,
				target_weight = excluded.target_weight,
				total_weeks   = excluded.total_weeks,
				start_date    = excluded.start_date,
				created_at    = excluded.created_at,
				last_updated  = excluded.last_updated`,
			key.UserID, key.ProgramID, p.StartWeight, p.TargetWeight, p.TotalWeeks,
			formatTime(p.StartDate), formatTime(p.CreatedAt), formatTime(snap.LastUpdated),
		)
		if err != nil {
			return fmt.Errorf("upserting program: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM week_entries WHERE user_id = ? AND program_id = ?`,
			key.UserID, key.ProgramID); err != nil {
			return fmt.Errorf("clearing weeks: %w", err)
		}

		for _, w := range snap.Weeks {
			_, err := tx.ExecContext(ctx, `INSERT INTO week_entries
				(user_id, program_id, week, target_weight, target_change, actual_weight, actual_change, status, recorded_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				key.UserID, key.ProgramID, w.Week, w.TargetWeight, w.TargetChange,
				nullableFloatToValue(w.ActualWeight), nullableFloatToValue(w.ActualChange),
				string(w.Status), nullableTimeToString(w.RecordedAt),
			)
			if err != nil {
				return fmt.Errorf("inserting week %d: %w", w.Week, err)
			}
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO active_programs (user_id, program_id) VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET program_id = excluded.program_id`,
			key.UserID, key.ProgramID)
		if err != nil {
			return fmt.Errorf("setting active program: %w", err)
		}
		return nil
	})
}

// Delete removes the program; its weeks and an active pointer to it go with
// it.
func (s *SQLiteSnapshotStore) Delete(ctx context.Context, key SnapshotKey) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ? AND user_id = ?`, key.ProgramID, key.UserID)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Active(ctx context.Context, userID string) (*domain.Snapshot, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT program_id FROM active_programs WHERE user_id = ?`, userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active program for %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("finding active program: %w", err)
	}
	return s.Load(ctx, SnapshotKey{UserID: userID, ProgramID: id})
}
