package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the slice of the pgx pool surface the repositories use. Both
// *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it, so repository
// tests run against a mock without touching the constructors.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNoRowsAffected reports a write that matched nothing, e.g. a delete
// of an id that is already gone.
var ErrNoRowsAffected = errors.New("no rows affected")
