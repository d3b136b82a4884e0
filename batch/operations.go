package batch

import (
	"fmt"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// Select produces a Batch containing only the named columns, with a
// schema in the requested column order. The source Batch must contain
// every requested column.
func Select(b dataset.Batch, colNames []string) (dataset.Batch, error) {
	selected, err := b.Schema().Select(colNames)
	if err != nil {
		return nil, err
	}
	columns := make(map[string][]interface{}, len(colNames))
	for _, name := range colNames {
		values, err := b.Column(name)
		if err != nil {
			return nil, err
		}
		columns[name] = values
	}
	return &batch{schema: selected, columns: columns, numRows: b.NumRows()}, nil
}

// Filter produces a Batch containing only the rows for which the given
// bound predicate evaluates to true. A nil filter keeps every row.
func Filter(b dataset.Batch, filter dataset.Expression) (dataset.Batch, error) {
	if filter == nil {
		return b, nil
	}
	var keep []int
	for row := 0; row < b.NumRows(); row++ {
		val, err := filter.Evaluate(b, row)
		if err != nil {
			return nil, err
		}
		matches, ok := val.(bool)
		if !ok {
			return nil, errors.NotBooleanError{Value: fmt.Sprintf("%v", val)}
		}
		if matches {
			keep = append(keep, row)
		}
	}
	if len(keep) == b.NumRows() {
		return b, nil
	}
	columns := make(map[string][]interface{}, b.Schema().NumColumns())
	for _, name := range b.Schema().ColumnNames() {
		source, err := b.Column(name)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(keep))
		for i, row := range keep {
			values[i] = source[row]
		}
		columns[name] = values
	}
	return &batch{schema: b.Schema(), columns: columns, numRows: len(keep)}, nil
}

// NumBytes estimates the in-memory footprint of a Batch's cell data.
// Fixed-width columns contribute their type's size per row;
// variable-length columns contribute the length of each value.
func NumBytes(b dataset.Batch) int64 {
	var total int64
	names := b.Schema().ColumnNames()
	types := b.Schema().ColumnTypes()
	for i, name := range names {
		if !dataset.IsVariableLength(types[i]) {
			total += int64(types[i].Size()) * int64(b.NumRows())
			continue
		}
		// names come from the batch's own schema, so Column cannot fail
		values, _ := b.Column(name)
		for _, v := range values {
			switch cell := v.(type) {
			case string:
				total += int64(len(cell))
			case []byte:
				total += int64(len(cell))
			}
		}
	}
	return total
}

// Rechunk splits a Batch into a sequence of Batches of at most maxRows
// rows each, preserving row order. A Batch already within the limit is
// returned as-is; an empty Batch produces no chunks.
func Rechunk(b dataset.Batch, maxRows int64) []dataset.Batch {
	if b.NumRows() == 0 {
		return nil
	}
	if int64(b.NumRows()) <= maxRows {
		return []dataset.Batch{b}
	}
	var chunks []dataset.Batch
	for start := 0; start < b.NumRows(); start += int(maxRows) {
		end := start + int(maxRows)
		if end > b.NumRows() {
			end = b.NumRows()
		}
		columns := make(map[string][]interface{}, b.Schema().NumColumns())
		for _, name := range b.Schema().ColumnNames() {
			source, _ := b.Column(name)
			columns[name] = source[start:end]
		}
		chunks = append(chunks, &batch{schema: b.Schema(), columns: columns, numRows: end - start})
	}
	return chunks
}
