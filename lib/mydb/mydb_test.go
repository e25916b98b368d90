package mydb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	db, cleanup, err := Open(context.TODO(), DriverSqlite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return db
}

func countProducts(t *testing.T, db *DB) int {
	var count int
	err := db.Conn(context.TODO()).QueryRowContext(context.TODO(), `SELECT COUNT(*) FROM products`).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestOpen(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := Open(context.TODO(), "oracle", "whatever")
		assert.Error(t, err)
	})

	t.Run("schema is migrated and migrating again is a no-op", func(t *testing.T) {
		db := openTestDB(t)
		assert.Equal(t, DriverSqlite, db.Driver())
		assert.Equal(t, 0, countProducts(t, db))
		assert.NoError(t, db.migrate())
	})
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "file:shop.db?_pragma=foreign_keys(1)", withForeignKeys("file:shop.db"))
	assert.Equal(t, "file:shop.db?cache=shared&_pragma=foreign_keys(1)", withForeignKeys("file:shop.db?cache=shared"))
	assert.Equal(t, "file:x?_pragma=foreign_keys(0)", withForeignKeys("file:x?_pragma=foreign_keys(0)"))
}

func TestRunInTransaction(t *testing.T) {
	ctx := context.TODO()

	t.Run("commit", func(t *testing.T) {
		db := openTestDB(t)

		err := db.RunInTransaction(ctx, func(c context.Context) error {
			_, err := db.Conn(c).ExecContext(c, `INSERT INTO products (id, name, price, stock) VALUES ($1, $2, $3, $4)`, 1, "Roses", "19.99", 5)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countProducts(t, db))
	})

	t.Run("rollback on error", func(t *testing.T) {
		db := openTestDB(t)

		err := db.RunInTransaction(ctx, func(c context.Context) error {
			_, err := db.Conn(c).ExecContext(c, `INSERT INTO products (id, name, price, stock) VALUES ($1, $2, $3, $4)`, 1, "Roses", "19.99", 5)
			require.NoError(t, err)
			return fmt.Errorf("boom")
		})
		assert.EqualError(t, err, "boom")
		assert.Equal(t, 0, countProducts(t, db))
	})

	t.Run("nested joins outer", func(t *testing.T) {
		db := openTestDB(t)

		err := db.RunInTransaction(ctx, func(c context.Context) error {
			_, err := db.Conn(c).ExecContext(c, `INSERT INTO products (id, name, price, stock) VALUES ($1, $2, $3, $4)`, 1, "Roses", "19.99", 5)
			require.NoError(t, err)
			return db.RunInTransaction(c, func(c context.Context) error {
				return fmt.Errorf("inner failed")
			})
		})
		assert.Error(t, err)
		assert.Equal(t, 0, countProducts(t, db))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	ctx := context.TODO()
	db := openTestDB(t)

	_, err := db.Conn(ctx).ExecContext(ctx, `INSERT INTO order_lines (order_uid, position, product_id, product_name, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, "missing-order", 0, 42, "Roses", 1, "19.99", "19.99")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", err)))

	assert.False(t, IsForeignKeyViolation(nil))
	assert.False(t, IsForeignKeyViolation(fmt.Errorf("other")))
}

func TestTimeRoundTrip(t *testing.T) {
	formatted := FormatTime(mustParse(t, "2024-01-01T10:00:00.5+02:00"))
	assert.Equal(t, "2024-01-01T08:00:00.500000000Z", formatted)

	parsed, err := ParseTime(formatted)
	require.NoError(t, err)
	assert.Equal(t, mustParse(t, "2024-01-01T08:00:00.5Z"), parsed)

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func mustParse(t *testing.T, s string) time.Time {
	p, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return p
}
