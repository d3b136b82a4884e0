package dataset

// Batch is a fixed-schema, columnar block of rows. Batches are
// immutable once constructed; the slices returned by Column and Row
// must not be modified by callers.
type Batch interface {
	Schema() Schema
	NumRows() int
	Column(colName string) (values []interface{}, err error) // column values in row order
	Cell(colName string, row int) (value interface{}, err error)
	Row(row int) []interface{} // cell values in schema column order
}
