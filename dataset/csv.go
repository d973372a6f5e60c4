package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// CSV SOURCE - Flat-file directory layout the dataset ships as
// =============================================================================

// File names of the raw datasets inside a data directory.
const (
	OrdersFile     = "orders_dataset.csv"
	OrderItemsFile = "order_items_dataset.csv"
	ProductsFile   = "products_dataset.csv"
	CustomersFile  = "customers_dataset.csv"
	ReviewsFile    = "order_reviews_dataset.csv"
)

// LoadDir loads all five raw tables from a directory of CSV files.
// A missing file is fatal: the pipeline has no partial-success mode.
func LoadDir(dir string) (*Set, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("data path not found: %s: %w", dir, err)
	}

	load := func(name, file string) (*Table, error) {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("required file not found: %s: %w", path, err)
		}
		return ReadCSVFile(name, path)
	}

	var set Set
	var err error
	if set.Orders, err = load("orders", OrdersFile); err != nil {
		return nil, err
	}
	if set.OrderItems, err = load("order_items", OrderItemsFile); err != nil {
		return nil, err
	}
	if set.Products, err = load("products", ProductsFile); err != nil {
		return nil, err
	}
	if set.Customers, err = load("customers", CustomersFile); err != nil {
		return nil, err
	}
	if set.Reviews, err = load("reviews", ReviewsFile); err != nil {
		return nil, err
	}
	return &set, nil
}

// ReadCSVFile reads one CSV file into a Table. The first row is the
// header; header names are trimmed. Cell values are kept verbatim apart
// from surrounding whitespace.
func ReadCSVFile(name, path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseCSV(name, string(data))
}

// ParseCSV parses CSV text into a Table.
func ParseCSV(name, data string) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows surface as short cells, not parse aborts

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parse csv %s: no header row", name)
	}

	columns := make([]string, len(records[0]))
	for i, h := range records[0] {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return &Table{Name: name, Columns: columns, Rows: rows}, nil
}
