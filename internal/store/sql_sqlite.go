package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/mypasslab/mypass/internal/config"
	"github.com/mypasslab/mypass/internal/logger"
)

// sqliteSchema mirrors the goose migration for PostgreSQL with SQLite
// column types. Applied idempotently on every connect.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	sec_q1        TEXT NOT NULL DEFAULT '',
	sec_a1        TEXT NOT NULL DEFAULT '',
	sec_q2        TEXT NOT NULL DEFAULT '',
	sec_a2        TEXT NOT NULL DEFAULT '',
	sec_q3        TEXT NOT NULL DEFAULT '',
	sec_a3        TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS vault_items (
	id             TEXT PRIMARY KEY,
	user_id        INTEGER NOT NULL,
	item_type      TEXT NOT NULL DEFAULT '',
	title          TEXT NOT NULL DEFAULT '',
	encrypted_data TEXT NOT NULL DEFAULT '',
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vault_items_user ON vault_items (user_id);

CREATE TABLE IF NOT EXISTS unmask_tokens (
	token      TEXT PRIMARY KEY,
	owner_id   INTEGER NOT NULL,
	record_id  TEXT,
	field_name TEXT,
	expires_at DATETIME NOT NULL,
	used       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_unmask_tokens_owner ON unmask_tokens (owner_id);
CREATE INDEX IF NOT EXISTS idx_unmask_tokens_expires ON unmask_tokens (expires_at);

CREATE TABLE IF NOT EXISTS notifications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL,
	content    TEXT NOT NULL,
	is_read    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, is_read);
`

// NewConnectSQLite opens (creating the file if needed) a local SQLite
// database and applies the schema. Used for single-machine deployments
// where running PostgreSQL would be overkill.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error applying schema")
		return nil, fmt.Errorf("error applying schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{
		DB:         conn,
		dialect:    DialectSQLite,
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Question),
		classifier: sqliteErrorClassifier{},
		logger:     log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}

type sqliteErrorClassifier struct{}

func (sqliteErrorClassifier) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
