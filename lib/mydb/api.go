package mydb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

// TimeLayout is fixed width so stored timestamps sort lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(c context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(c context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(c context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	db     *sql.DB
	driver string
}

// Open connects to the relational store and brings the schema up to date.
func Open(c context.Context, driver string, dsn string) (*DB, func(), error) {
	switch driver {
	case DriverSqlite:
		dsn = withForeignKeys(dsn)
	case DriverPostgres:
	default:
		return nil, func() {}, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSqlite {
		// one connection keeps in-memory databases alive and serializes writers
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	err = db.PingContext(c)
	if err != nil {
		db.Close()
		return nil, func() {}, fmt.Errorf("failed to ping database: %w", err)
	}

	result := &DB{
		db:     db,
		driver: driver,
	}

	err = result.migrate()
	if err != nil {
		db.Close()
		return nil, func() {}, err
	}

	return result, func() {
		db.Close()
	}, nil
}

func (d *DB) Driver() string {
	return d.driver
}

type ctxTransactionKeyType int

const ctxTransactionKey ctxTransactionKeyType = iota

// Conn returns the transaction bound to the context, or the pool when there is none.
func (d *DB) Conn(c context.Context) Querier {
	tx, ok := c.Value(ctxTransactionKey).(*sql.Tx)
	if ok && tx != nil {
		return tx
	}
	return d.db
}

// RunInTransaction commits when f returns nil and rolls back otherwise.
// Nested calls join the outer transaction.
func (d *DB) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if tx, ok := c.Value(ctxTransactionKey).(*sql.Tx); ok && tx != nil {
		return f(c)
	}

	tx, err := d.db.BeginTx(c, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	err = f(context.WithValue(c, ctxTransactionKey, tx))
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_pragma=foreign_keys(1)"
	}
	return dsn + "?_pragma=foreign_keys(1)"
}

func (d *DB) Ping(c context.Context) error {
	err := d.db.PingContext(c)
	if err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	return nil
}
