package scanner

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/batch"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// maxPreviewRows caps the number of rows ToString renders
const maxPreviewRows = 10

// Table is the final result of a completed scan: a schema plus an
// ordered sequence of Batches, every one of which conforms to that
// schema. Batch order equals the discovery order of the scan tasks
// which produced them.
type Table struct {
	schema  dataset.Schema
	batches []dataset.Batch
}

// CreateTable constructs a Table, validating that every Batch conforms
// to the given Schema. All non-conforming batches are reported
// together, not just the first.
func CreateTable(schema dataset.Schema, batches []dataset.Batch) (*Table, error) {
	var multierr *multierror.Error
	for i, b := range batches {
		if err := schema.Equals(b.Schema()); err != nil {
			multierr = multierror.Append(multierr, errors.IncompatibleBatchError{Position: i, Reason: err})
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Table{schema: schema, batches: batches}, nil
}

// Schema returns the Schema every Batch of this Table conforms to
func (t *Table) Schema() dataset.Schema {
	return t.schema
}

// Batches returns this Table's Batches, in scan-task discovery order
func (t *Table) Batches() []dataset.Batch {
	return t.batches
}

// NumBatches returns the number of Batches in this Table
func (t *Table) NumBatches() int {
	return len(t.batches)
}

// NumRows returns the total number of rows across this Table's Batches
func (t *Table) NumRows() int64 {
	var total int64
	for _, b := range t.batches {
		total += int64(b.NumRows())
	}
	return total
}

// NumBytes estimates the cell-data footprint of this Table in bytes
func (t *Table) NumBytes() int64 {
	var total int64
	for _, b := range t.batches {
		total += batch.NumBytes(b)
	}
	return total
}

// ToString produces a human-readable preview of this Table: a header of
// column names followed by rows with each cell formatted by its column
// type. Rows beyond the first few are summarized rather than printed.
func (t *Table) ToString() string {
	names := t.schema.ColumnNames()
	types := t.schema.ColumnTypes()
	var res strings.Builder
	fmt.Fprintln(&res, strings.Join(names, ", "))
	printed := int64(0)
	for _, b := range t.batches {
		for row := 0; row < b.NumRows(); row++ {
			if printed >= maxPreviewRows {
				fmt.Fprintf(&res, "... %d more rows", t.NumRows()-printed)
				return res.String()
			}
			cells := make([]string, len(names))
			for i, name := range names {
				// names come from the table's own schema, so Cell cannot fail
				v, _ := b.Cell(name, row)
				cells[i] = types[i].ToString(v)
			}
			fmt.Fprintln(&res, strings.Join(cells, ", "))
			printed++
		}
	}
	return res.String()
}
