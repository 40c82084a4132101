// Package pgx implements the principal and content storage ports on top of
// a PostgreSQL connection pool.
package pgx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knowtasks/knowtasks/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var (
	_ core.PrincipalStore = (*Adapter)(nil)
	_ core.ContentStore   = (*Adapter)(nil)
)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
