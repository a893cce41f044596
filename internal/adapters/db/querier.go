// internal/adapters/db/querier.go
package db

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *Database and pgx.Tx, so repositories can run
// against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

var (
	_ Querier = (*Database)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// psql is the squirrel builder used by every repository
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
