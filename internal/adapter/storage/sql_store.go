// Package storage implements the port interfaces on database/sql.
//
// Two drivers are supported: MySQL for production and the pure-Go SQLite
// driver for development and tests. All SQL sticks to the common subset
// (? placeholders, no vendor functions); timestamps and money are bound as
// fixed-width strings so both drivers order and compare them identically.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	// Register the MySQL driver.
	_ "github.com/go-sql-driver/mysql"
	// Register the pure-Go SQLite driver under the name "sqlite".
	_ "modernc.org/sqlite"

	"github.com/rfandrade/storefront/internal/port"
)

// timeLayout is fixed-width and UTC-only, so lexicographic order on the
// stored text equals chronological order in both MySQL and SQLite.
const timeLayout = "2006-01-02 15:04:05.000000"

type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an already-opened database handle. Schema management is
// the caller's concern; the Open helpers below apply it for you.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenMySQL connects to MySQL, applies the schema and returns the store.
func OpenMySQL(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	if err := applySchema(ctx, db, mysqlSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

// OpenSQLite opens (or creates) a SQLite database at path and applies the
// schema. Pass ":memory:" for an in-memory database, handy in tests.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection; this also pins
	// an in-memory database to one connection so it is not discarded.
	db.SetMaxOpenConns(1)

	if err := applySchema(ctx, db, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithinTx runs fn inside one transaction. The deferred Rollback is a no-op
// after a successful Commit, so every early return rolls back.
func (s *SQLStore) WithinTx(ctx context.Context, fn func(tx port.OrderTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&orderTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func applySchema(ctx context.Context, db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// placeholders returns "?, ?, ..." for n bound parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
