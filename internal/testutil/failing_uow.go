package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/glidepath/internal/db"
)

// FailOnNthExecUoW is a test UoW that injects Err on the FailOn-th
// ExecContext call of every transaction. A snapshot save issues the program
// upsert first, then the week delete, then one insert per week, so FailOn
// picks the write that breaks.
//
// Reads pass through. Setting Disabled lets a test run successful saves
// through the same store before arming the failure.
type FailOnNthExecUoW struct {
	DB       *sql.DB
	FailOn   int32
	Err      error
	Disabled atomic.Bool
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	var conn db.DBTX = tx
	if !u.Disabled.Load() {
		conn = &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}
	if fnErr := fn(ctx, conn); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
