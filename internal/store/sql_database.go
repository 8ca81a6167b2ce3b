// Package store implements the persistence layer: database connections for
// PostgreSQL and SQLite plus the repositories for users, vault items,
// disclosure tokens, and notifications.
package store

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/migrations"
)

// Dialect identifies the SQL backend a DB connection speaks.
type Dialect string

const (
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite3"
)

// DB wraps the sql.DB connection with the dialect-specific pieces the
// repositories need: a squirrel builder with the right placeholder format
// and a constraint-violation classifier for the active driver.
type DB struct {
	*sql.DB
	dialect    Dialect
	builder    sq.StatementBuilderType
	classifier errorClassifier
	logger     *logger.Logger
}

// Dialect returns the SQL backend of this connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate brings the schema up to date. PostgreSQL runs the embedded goose
// migrations; the SQLite schema is applied inline at connect time, so
// Migrate is a no-op there.
func (db *DB) Migrate() error {
	if db.dialect != DialectPostgres {
		return nil
	}
	return migrations.Migrate(db.DB)
}

// IsPostgresDSN reports whether dsn looks like a PostgreSQL connection
// string. Anything else is treated as a SQLite file path.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
