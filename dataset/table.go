/*
Package dataset provides the raw rectangular tables the pipeline consumes
and the sources that produce them.

PURPOSE:
  The preparation core works on five raw record sets: orders, order items,
  products, customers, and reviews. This package defines the Table shape
  those record sets arrive in and implements three interchangeable
  sources:
  - CSV directory (csv.go): the flat files the dataset ships as
  - SQLite database (sqlite.go): the same tables loaded from a database
  - Built-in demo set (demo.go): deterministic sample data

SOURCE CONTRACT:
  A source either returns a complete Set or an error naming what was
  missing. Column-level validation is NOT done here: whether a table has
  the columns an operation needs is the consumer's concern and surfaces as
  a commerce.SchemaError at the point of use.

SEE ALSO:
  - commerce/preparer.go: Consumes these tables
  - api/handlers.go: Serves aggregations derived from them
*/
package dataset

// Table is a named rectangular record set: an ordered list of column
// names plus string-valued rows. Values are uninterpreted at this layer;
// parsing into timestamps and decimals happens in the preparation core.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Index returns the position of a column, or -1 when absent.
func (t *Table) Index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Missing reports which of the given columns the table lacks.
func (t *Table) Missing(columns ...string) []string {
	var missing []string
	for _, c := range columns {
		if t.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// =============================================================================
// SET - The five raw tables of one pipeline run
// =============================================================================

// Set holds the raw tables a single pipeline run consumes.
type Set struct {
	Orders     *Table
	OrderItems *Table
	Products   *Table
	Customers  *Table
	Reviews    *Table
}
