package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/migrations"
)

// Dialect captures what differs between the supported SQL backends.
type Dialect struct {
	// Name is the migrations directory and the dialect label in logs.
	Name string

	// DriverName is the database/sql driver registered for the backend.
	DriverName string

	// GooseDialect is the dialect name understood by goose.
	GooseDialect string

	placeholder sq.PlaceholderFormat

	// nextSequence is a SQL expression yielding a fresh change sequence
	// greater than every sequence already stored.
	nextSequence string

	// ownerLock, when set, is executed at the start of every item
	// transaction with the owner id as its only argument.
	ownerLock string
}

var (
	// Postgres uses a database sequence for change numbers and a
	// transaction-scoped advisory lock per owner, so several server
	// processes sharing one database still serialize per account.
	Postgres = Dialect{
		Name:         "postgres",
		DriverName:   "pgx",
		GooseDialect: "pgx",
		placeholder:  sq.Dollar,
		nextSequence: "nextval('items_sequence_seq')",
		ownerLock:    "SELECT pg_advisory_xact_lock($1)",
	}

	// SQLite allocates change numbers from the current maximum. Writers are
	// serialized by the database lock, so MAX()+1 inside the write
	// transaction is never handed out twice.
	SQLite = Dialect{
		Name:         "sqlite",
		DriverName:   "sqlite3",
		GooseDialect: "sqlite3",
		placeholder:  sq.Question,
		nextSequence: "(SELECT COALESCE(MAX(sequence), 0) + 1 FROM items)",
	}
)

// DialectFromDSN picks the backend for dsn: "file:" URIs, ":memory:" and
// paths ending in ".db", ".sqlite" or ".sqlite3" select SQLite, everything
// else PostgreSQL.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	path, _, _ := strings.Cut(lower, "?")

	switch {
	case strings.HasPrefix(lower, "file:"),
		lower == ":memory:",
		strings.HasSuffix(path, ".db"),
		strings.HasSuffix(path, ".sqlite"),
		strings.HasSuffix(path, ".sqlite3"):
		return SQLite
	default:
		return Postgres
	}
}

func (d Dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// DB is a database handle bound to its dialect and error classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.DSN.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch DialectFromDSN(cfg.DSN).Name {
	case SQLite.Name:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return NewConnectPostgres(ctx, cfg, log)
	}
}

// Dialect returns the backend the handle talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies all pending schema migrations for the handle's dialect.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, db.dialect.Name, db.dialect.GooseDialect); err != nil {
		return fmt.Errorf("migrate %s: %w", db.dialect.Name, err)
	}
	return nil
}

// querier is the subset of *sql.DB and *sql.Tx used by repositories.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
