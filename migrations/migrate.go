// Package migrations embeds the SQL schema of the "sql" backend driver and
// applies it with goose. PostgreSQL and SQLite keep separate migration sets
// with identical versions.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var (
	// ErrUnknownDialect is returned for a dialect without a migration set.
	ErrUnknownDialect = errors.New("unknown migration dialect")

	// goose keeps its base FS and dialect in package globals
	gooseMu sync.Mutex
)

// Migrate applies every pending migration of dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	var dir, gooseDialect string
	switch dialect {
	case DialectPostgres:
		dir, gooseDialect = "postgres", "pgx"
	case DialectSQLite:
		dir, gooseDialect = "sqlite", "sqlite3"
	default:
		return fmt.Errorf("migration error: %w %q", ErrUnknownDialect, dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
