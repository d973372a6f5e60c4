package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/commerce-insights/dataset"
)

func TestParseCSV_TrimsHeaderAndCells(t *testing.T) {
	tbl, err := dataset.ParseCSV("orders", "order_id, order_status\n o1 ,delivered\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "order_status"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"o1", "delivered"}, tbl.Rows[0])
}

func TestParseCSV_RaggedRowsPadToEmpty(t *testing.T) {
	// A short row reads as empty cells, matching how the raw exports
	// represent absent values.
	tbl, err := dataset.ParseCSV("orders", "a,b,c\n1,2\n")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"1", "2", ""}, tbl.Rows[0])
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := dataset.ParseCSV("orders", "")
	require.Error(t, err)
}

func TestTable_IndexAndMissing(t *testing.T) {
	tbl := &dataset.Table{Name: "t", Columns: []string{"a", "b"}}

	assert.Equal(t, 1, tbl.Index("b"))
	assert.Equal(t, -1, tbl.Index("z"))
	assert.Equal(t, []string{"z"}, tbl.Missing("a", "z"))
	assert.Nil(t, tbl.Missing("a", "b"))
}

func TestLoadDir(t *testing.T) {
	// GIVEN: A directory holding all five raw exports
	// WHEN: Loading it
	// THEN: Every table is present with its header bound

	dir := t.TempDir()
	files := map[string]string{
		dataset.OrdersFile:     "order_id,order_status\no1,delivered\n",
		dataset.OrderItemsFile: "order_id,order_item_id,product_id,price\no1,li1,p1,10.0\n",
		dataset.ProductsFile:   "product_id,product_category_name\np1,toys\n",
		dataset.CustomersFile:  "customer_id,customer_state\nc1,CA\n",
		dataset.ReviewsFile:    "order_id,review_score\no1,5\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	set, err := dataset.LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "orders", set.Orders.Name)
	require.Len(t, set.Orders.Rows, 1)
	assert.Equal(t, "order_items", set.OrderItems.Name)
	assert.Equal(t, "products", set.Products.Name)
	assert.Equal(t, "customers", set.Customers.Name)
	assert.Equal(t, "reviews", set.Reviews.Name)
}

func TestLoadDir_MissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.OrdersFile),
		[]byte("order_id\no1\n"), 0o644))

	_, err := dataset.LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.OrderItemsFile)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := dataset.LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDemo_Shape(t *testing.T) {
	set := dataset.Demo()

	require.NotNil(t, set.Orders)
	assert.Len(t, set.Orders.Rows, 15)
	assert.Len(t, set.OrderItems.Rows, 18)
	assert.Len(t, set.Products.Rows, 6)
	assert.Len(t, set.Customers.Rows, 4)
	assert.Len(t, set.Reviews.Rows, 13)

	// Demo is rebuilt per call so callers can never alias each other.
	assert.NotSame(t, dataset.Demo().Orders, set.Orders)
}
