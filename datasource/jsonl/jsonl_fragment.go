package jsonl

import (
	"bufio"
	"bytes"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/batch"
	"github.com/YashJipkate/skyhookdm-arrow/datasource"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
	"github.com/YashJipkate/skyhookdm-arrow/schema"
)

// Fragment is a Fragment over JSON-lines data. Columns are parsed
// lazily from each line of JSON using their column name, which should
// be a gjson path; only the columns the scan materializes are parsed at
// all. Values within the JSON which do not correspond to a materialized
// column are ignored, and values missing from a line parse as the
// column type's zero value.
type Fragment struct {
	schema dataset.Schema
	data   []byte
}

// CreateFragment is a factory for JSONL Fragments
func CreateFragment(fragmentSchema dataset.Schema, data []byte) *Fragment {
	return &Fragment{schema: fragmentSchema, data: data}
}

// Schema returns the full Schema of this Fragment's underlying data
func (f *Fragment) Schema() dataset.Schema {
	return f.schema
}

// Scan returns a single scan task which parses this Fragment's data,
// reading only the columns named by opts.MaterializedFields
func (f *Fragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	materialized, err := materializeSchema(f.schema, opts)
	if err != nil {
		return nil, err
	}
	task := &scanTask{data: f.data, materialized: materialized, opts: opts}
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{task}), nil
}

// materializeSchema reduces a fragment schema to the columns the scan
// must physically parse, resolving each against fragmentSchema
func materializeSchema(fragmentSchema dataset.Schema, opts *dataset.ScanOptions) (dataset.Schema, error) {
	materialized := schema.CreateSchema()
	for _, name := range opts.MaterializedFields() {
		col, err := fragmentSchema.GetColumn(name)
		if err != nil {
			return nil, err
		}
		if materialized, err = materialized.CreateColumn(name, col.Type()); err != nil {
			return nil, err
		}
	}
	return materialized, nil
}

// scanTask parses JSONL data into Batches of materialized columns, then
// feeds them through the filter/project/re-chunk pipeline
type scanTask struct {
	data         []byte
	materialized dataset.Schema
	opts         *dataset.ScanOptions
}

// Execute produces this task's Batches. Parsing happens incrementally
// as the returned iterator is advanced.
func (t *scanTask) Execute() (dataset.BatchIterator, error) {
	source := &parsingBatchIterator{
		scanner:   bufio.NewScanner(bytes.NewReader(t.data)),
		schema:    t.materialized,
		batchSize: t.opts.BatchSize(),
	}
	return datasource.CreateScanBatchIterator(source, t.opts), nil
}

// parsingBatchIterator parses up to batchSize lines per NextBatch call
type parsingBatchIterator struct {
	scanner   *bufio.Scanner
	schema    dataset.Schema
	batchSize int64
	done      bool
	lock      sync.Mutex
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch
func (pbi *parsingBatchIterator) HasNextBatch() bool {
	pbi.lock.Lock()
	defer pbi.lock.Unlock()
	return !pbi.done
}

// NextBatch parses the next Batch of rows if one is available, or returns an error
func (pbi *parsingBatchIterator) NextBatch() (dataset.Batch, error) {
	pbi.lock.Lock()
	defer pbi.lock.Unlock()
	if pbi.done {
		return nil, errors.NoMoreBatchesError{}
	}
	colNames := pbi.schema.ColumnNames()
	colTypes := pbi.schema.ColumnTypes()
	columns := make(map[string][]interface{}, len(colNames))
	for _, name := range colNames {
		columns[name] = []interface{}{}
	}
	rows := 0
	for int64(rows) < pbi.batchSize {
		if !pbi.scanner.Scan() {
			pbi.done = true
			if err := pbi.scanner.Err(); err != nil {
				return nil, err
			}
			break
		}
		line := pbi.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		for i, name := range colNames {
			value, err := parseValue(gjson.GetBytes(line, name), colTypes[i])
			if err != nil {
				return nil, err
			}
			columns[name] = append(columns[name], value)
		}
		rows++
	}
	if rows == 0 {
		return nil, errors.NoMoreBatchesError{}
	}
	return batch.CreateBatch(pbi.schema, columns)
}

// parseValue converts a gjson result to the Go value a column type stores
func parseValue(res gjson.Result, colType dataset.ColumnType) (interface{}, error) {
	switch colType.(type) {
	case *dataset.Int64ColumnType:
		return res.Int(), nil
	case *dataset.Float64ColumnType:
		return res.Float(), nil
	case *dataset.BoolColumnType:
		return res.Bool(), nil
	case *dataset.VarStringColumnType:
		return res.String(), nil
	case *dataset.VarBytesColumnType:
		return []byte(res.String()), nil
	default:
		return nil, errors.InvalidError{Msg: fmt.Sprintf("column type %T is not supported for JSONL data", colType)}
	}
}
