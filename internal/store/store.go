package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added covering indexes on jobs(workday_id) and jobs(project_id)
const currentSchemaVersion = 1

// Store provides durable storage for the timesheet ledger.
// Uses SQLite with WAL mode and foreign-key enforcement.
type Store struct {
	db *sql.DB
}

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Read helpers that must run inside a caller-owned transaction take a
// Querier instead of reaching for the Store's connection.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement (cascade deletes depend on it)
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// WithTx runs fn inside an explicit transaction. The transaction is
// committed when fn returns nil and rolled back otherwise; the original
// error from fn is returned unchanged so callers can match on domain
// error types. The connection is released on every exit path.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// schemaSurface is the allow-listed set of (table, column) pairs that
// Exists may interpolate into SQL. Identifiers arriving from the CLI
// are never trusted directly.
var schemaSurface = map[string][]string{
	"clients":  {"id", "name", "city", "nation", "notes"},
	"projects": {"id", "client_id", "name", "color", "active"},
	"workdays": {"id", "day", "notes"},
	"jobs":     {"id", "workday_id", "project_id", "start_at", "end_at", "place", "work_type", "description"},
}

// SchemaRefError reports an existence check against a table or column
// outside the allow-listed schema surface.
type SchemaRefError struct {
	Table  string
	Column string
}

func (e *SchemaRefError) Error() string {
	return fmt.Sprintf("invalid schema reference %s.%s", e.Table, e.Column)
}

// Exists reports whether any row in table has column equal to value,
// compared case-insensitively. Table and column must name part of the
// allow-listed schema surface; anything else fails with SchemaRefError.
func (s *Store) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	if err := checkSchemaRef(table, column); err != nil {
		return false, err
	}

	// Identifiers are validated above, only the value is bound.
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ? COLLATE %s LIMIT 1", table, column, foldCollation)
	var one int
	err := s.db.QueryRowContext(ctx, query, value).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s.%s: %w", table, column, err)
	}
	return true, nil
}

func checkSchemaRef(table, column string) error {
	cols, ok := schemaSurface[table]
	if !ok {
		return &SchemaRefError{Table: table, Column: column}
	}
	for _, c := range cols {
		if c == column {
			return nil
		}
	}
	return &SchemaRefError{Table: table, Column: column}
}

// IsBusy reports whether err is the storage engine's busy/locked
// condition, surfaced after the bounded busy-timeout window expires.
func IsBusy(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return false
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the jobs indexes for databases created before they
// were part of schema.sql. CREATE INDEX IF NOT EXISTS is a no-op when
// the index already exists.
func migrateToV1(db *sql.DB) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_jobs_workday ON jobs(workday_id)",
		"CREATE INDEX IF NOT EXISTS idx_jobs_project ON jobs(project_id)",
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
