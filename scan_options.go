package dataset

// DefaultBatchSize is the number of rows a scan task aims to include in
// each Batch it produces, unless configured otherwise.
const DefaultBatchSize = 1 << 15

// ScanOptions is the immutable per-scan configuration shared by every
// scan task of a single scan: the output schema, the bound row filter
// and the target batch size. Values are never mutated in place; the
// With* and ReplaceSchema methods return modified copies.
type ScanOptions struct {
	schema    Schema
	filter    Expression
	batchSize int64
}

// CreateScanOptions produces default ScanOptions for the given Schema:
// no filter and the default batch size. Never fails.
func CreateScanOptions(schema Schema) *ScanOptions {
	return &ScanOptions{schema: schema, batchSize: DefaultBatchSize}
}

// Schema returns the output schema batches produced under these options conform to
func (so *ScanOptions) Schema() Schema {
	return so.schema
}

// Filter returns the bound row filter for the scan, or nil if none was ever bound
func (so *ScanOptions) Filter() Expression {
	return so.filter
}

// BatchSize returns the target number of rows per produced Batch
func (so *ScanOptions) BatchSize() int64 {
	return so.batchSize
}

// Clone returns a copy of these ScanOptions
func (so *ScanOptions) Clone() *ScanOptions {
	return &ScanOptions{schema: so.schema, filter: so.filter, batchSize: so.batchSize}
}

// WithFilter returns a copy of these ScanOptions carrying the given bound filter
func (so *ScanOptions) WithFilter(filter Expression) *ScanOptions {
	copied := so.Clone()
	copied.filter = filter
	return copied
}

// WithBatchSize returns a copy of these ScanOptions carrying the given batch size
func (so *ScanOptions) WithBatchSize(batchSize int64) *ScanOptions {
	copied := so.Clone()
	copied.batchSize = batchSize
	return copied
}

// ReplaceSchema returns a copy of these ScanOptions with the schema
// swapped for newSchema. The filter is copied verbatim and is NOT
// re-bound against newSchema: the filter's column resolution is fixed
// at Filter() time against the original schema, which is what keeps a
// filter on a projected-out column evaluable. Callers are responsible
// for only passing schemas whose columns are a subset of the
// materialized fields already validated by the original binding.
func (so *ScanOptions) ReplaceSchema(newSchema Schema) *ScanOptions {
	copied := so.Clone()
	copied.schema = newSchema
	return copied
}

// MaterializedFields returns the names of every column which must be
// physically read to satisfy the scan: the output schema's columns
// first, followed by any columns referenced only by the filter.
// Fragment implementations use this to decide what to read.
func (so *ScanOptions) MaterializedFields() []string {
	fields := so.schema.ColumnNames()
	if so.filter == nil {
		return fields
	}
	for _, name := range so.filter.Fields() {
		if !so.schema.HasColumn(name) {
			fields = append(fields, name)
		}
	}
	return fields
}
