package batch

import (
	"fmt"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// batch is a column-major block of rows conforming to a Schema
type batch struct {
	schema  dataset.Schema
	columns map[string][]interface{}
	numRows int
}

// CreateBatch constructs a Batch from column-major data. Every column of
// the Schema must be present in columns, with equal lengths, and no
// extra columns may be supplied.
func CreateBatch(schema dataset.Schema, columns map[string][]interface{}) (dataset.Batch, error) {
	if len(columns) != schema.NumColumns() {
		return nil, errors.InvalidError{Msg: fmt.Sprintf("batch has %d columns, schema expects %d", len(columns), schema.NumColumns())}
	}
	numRows := -1
	err := schema.ForEachColumn(func(name string, col dataset.Column) error {
		values, ok := columns[name]
		if !ok {
			return errors.FieldResolutionError{Name: name}
		}
		if numRows < 0 {
			numRows = len(values)
		} else if numRows != len(values) {
			return errors.InvalidError{Msg: fmt.Sprintf("column %s has %d rows, expected %d", name, len(values), numRows)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if numRows < 0 {
		numRows = 0
	}
	return &batch{schema: schema, columns: columns, numRows: numRows}, nil
}

// Schema returns the Schema this Batch conforms to
func (b *batch) Schema() dataset.Schema {
	return b.schema
}

// NumRows returns the number of rows in this Batch
func (b *batch) NumRows() int {
	return b.numRows
}

// Column returns the values of the named column, in row order
func (b *batch) Column(colName string) ([]interface{}, error) {
	values, ok := b.columns[colName]
	if !ok {
		return nil, errors.FieldResolutionError{Name: colName}
	}
	return values, nil
}

// Cell returns the value of the named column in the given row
func (b *batch) Cell(colName string, row int) (interface{}, error) {
	values, err := b.Column(colName)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(values) {
		return nil, errors.InvalidError{Msg: fmt.Sprintf("row %d out of range [0, %d)", row, len(values))}
	}
	return values[row], nil
}

// Row returns the cell values of the given row, in schema column order
func (b *batch) Row(row int) []interface{} {
	cells := make([]interface{}, b.schema.NumColumns())
	for i, name := range b.schema.ColumnNames() {
		cells[i] = b.columns[name][row]
	}
	return cells
}
