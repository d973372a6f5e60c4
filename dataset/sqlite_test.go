package dataset_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/commerce-insights/dataset"
)

func seedSQLite(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "commerce.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE orders (order_id TEXT, customer_id TEXT, order_status TEXT,
			order_purchase_timestamp TEXT, order_delivered_customer_date TEXT)`,
		`CREATE TABLE order_items (order_id TEXT, order_item_id TEXT, product_id TEXT, price REAL)`,
		`CREATE TABLE products (product_id TEXT, product_category_name TEXT)`,
		`CREATE TABLE customers (customer_id TEXT, customer_state TEXT)`,
		`CREATE TABLE order_reviews (order_id TEXT, review_score INTEGER)`,
		`INSERT INTO orders VALUES
			('o1', 'c1', 'delivered', '2023-01-01 10:00:00', '2023-01-05 14:00:00'),
			('o2', 'c1', 'shipped', '2023-02-01 10:00:00', NULL)`,
		`INSERT INTO order_items VALUES ('o1', 'li1', 'p1', 100.0)`,
		`INSERT INTO products VALUES ('p1', 'electronics')`,
		`INSERT INTO customers VALUES ('c1', 'CA')`,
		`INSERT INTO order_reviews VALUES ('o1', 5)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	// GIVEN: A database with all five tables
	// WHEN: Loading it
	// THEN: Tables come back with schema-ordered columns and NULLs
	//       rendered as empty strings, the same shape the CSV source
	//       produces

	set, err := dataset.LoadSQLite(seedSQLite(t))
	require.NoError(t, err)

	assert.Equal(t, "orders", set.Orders.Name)
	require.Len(t, set.Orders.Rows, 2)
	assert.Equal(t, []string{
		"order_id", "customer_id", "order_status",
		"order_purchase_timestamp", "order_delivered_customer_date",
	}, set.Orders.Columns)

	shipped := set.Orders.Rows[1]
	assert.Equal(t, "", shipped[4], "NULL delivered date reads as empty")

	require.Len(t, set.OrderItems.Rows, 1)
	assert.Equal(t, "100", set.OrderItems.Rows[0][3][:3])
	require.Len(t, set.Reviews.Rows, 1)
	assert.Equal(t, "5", set.Reviews.Rows[0][1])
}

func TestLoadSQLite_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE orders (order_id TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = dataset.LoadSQLite(path)
	require.Error(t, err)
}
