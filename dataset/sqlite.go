/*
sqlite.go - SQLite-backed dataset source

PURPOSE:
  Loads the same five raw tables from a SQLite database instead of a CSV
  directory. Useful when the dataset has been imported into a database for
  ad hoc querying; the pipeline itself still runs entirely in memory and
  writes nothing back.

TABLE NAMES:
  orders, order_items, products, customers, order_reviews

READ-ONLY:
  The connection is opened in read-only mode. This source never creates
  schema or modifies data.

USAGE:
  set, err := dataset.LoadSQLite("./data/ecommerce.db")
  if err != nil {
      log.Fatal(err)
  }

SEE ALSO:
  - csv.go: The flat-file source with the same contract
*/
package dataset

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteTables maps Set fields to their database table names.
var sqliteTables = []struct {
	name  string
	table string
}{
	{"orders", "orders"},
	{"order_items", "order_items"},
	{"products", "products"},
	{"customers", "customers"},
	{"reviews", "order_reviews"},
}

// LoadSQLite loads all five raw tables from a SQLite database.
func LoadSQLite(dbPath string) (*Set, error) {
	db, err := sql.Open("sqlite3", dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tables := make(map[string]*Table, len(sqliteTables))
	for _, t := range sqliteTables {
		tbl, err := readTable(db, t.name, t.table)
		if err != nil {
			return nil, err
		}
		tables[t.name] = tbl
	}

	return &Set{
		Orders:     tables["orders"],
		OrderItems: tables["order_items"],
		Products:   tables["products"],
		Customers:  tables["customers"],
		Reviews:    tables["reviews"],
	}, nil
}

// readTable reads an entire database table into a Table. Column order
// follows the database schema; NULL becomes the empty string, matching
// the CSV source's representation of absent values.
func readTable(db *sql.DB, name, table string) (*Table, error) {
	rows, err := db.Query("SELECT * FROM " + table)
	if err != nil {
		return nil, fmt.Errorf("required table not found: %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}

	out := &Table{Name: name, Columns: columns}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", table, err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
