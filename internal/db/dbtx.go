package db

import (
	"context"
	"database/sql"
)

// DBTX is what snapshot queries need from a connection. Reads run on the
// *sql.DB directly; writes get the *sql.Tx of the surrounding UnitOfWork.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
