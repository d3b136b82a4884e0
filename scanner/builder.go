package scanner

import (
	"fmt"

	uuid "github.com/gofrs/uuid"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
	"github.com/YashJipkate/skyhookdm-arrow/expr"
)

// ScannerBuilder accumulates and validates a scan configuration, then
// freezes it into an immutable Scanner. Setters fail fast: a setter
// which returns an error leaves the previously accepted configuration
// unchanged. A builder must not be shared across goroutines during
// construction.
type ScannerBuilder struct {
	dataset        dataset.Dataset
	fragment       dataset.Fragment
	fragmentSchema dataset.Schema
	opts           *dataset.ScanOptions
	sctx           *dataset.ScanContext
	projection     []string
	hasProjection  bool
}

// CreateScannerBuilder produces a ScannerBuilder bound to a whole
// Dataset; fragments are discovered lazily at scan time. A
// trivially-true filter is bound immediately so the Scanner is valid
// with zero explicit configuration.
func CreateScannerBuilder(ds dataset.Dataset, sctx *dataset.ScanContext) *ScannerBuilder {
	b := &ScannerBuilder{
		dataset: ds,
		opts:    dataset.CreateScanOptions(ds.Schema()),
		sctx:    sctx,
	}
	// binding a boolean literal cannot fail
	_ = b.Filter(expr.Literal(true))
	return b
}

// CreateFragmentScannerBuilder produces a ScannerBuilder bound to a
// single pre-supplied Fragment with an explicit schema; no
// dataset-level fragment discovery occurs.
func CreateFragmentScannerBuilder(fragmentSchema dataset.Schema, fragment dataset.Fragment, sctx *dataset.ScanContext) *ScannerBuilder {
	b := &ScannerBuilder{
		fragment:       fragment,
		fragmentSchema: fragmentSchema,
		opts:           dataset.CreateScanOptions(fragmentSchema),
		sctx:           sctx,
	}
	_ = b.Filter(expr.Literal(true))
	return b
}

// Schema returns the fragment's schema in single-fragment mode, else the dataset's schema
func (b *ScannerBuilder) Schema() dataset.Schema {
	if b.fragment != nil {
		return b.fragmentSchema
	}
	return b.dataset.Schema()
}

// Project records a request to restrict the scan's output to the named
// columns, in the given order. Every name must resolve uniquely against
// Schema(); the schema itself is not rewritten until Finish.
func (b *ScannerBuilder) Project(columns []string) error {
	if err := b.Schema().CanReferenceColumns(columns); err != nil {
		return err
	}
	b.hasProjection = true
	b.projection = append([]string{}, columns...)
	return nil
}

// Filter validates that every column referenced by filter resolves
// against Schema(), binds filter against it, and stores the bound
// result as the scan's active filter. On failure the previously bound
// filter remains active.
func (b *ScannerBuilder) Filter(filter dataset.Expression) error {
	for _, name := range filter.Fields() {
		if _, err := b.Schema().GetColumn(name); err != nil {
			return err
		}
	}
	bound, err := filter.Bind(b.Schema())
	if err != nil {
		return err
	}
	b.opts = b.opts.WithFilter(bound)
	return nil
}

// UseThreads selects pooled (true) or serial (false) execution for the scan. Always succeeds.
func (b *ScannerBuilder) UseThreads(useThreads bool) error {
	b.sctx.UseThreads = useThreads
	return nil
}

// BatchSize sets the target number of rows per produced Batch. Fails
// for non-positive sizes, leaving the prior batch size unchanged.
func (b *ScannerBuilder) BatchSize(batchSize int64) error {
	if batchSize <= 0 {
		return errors.InvalidError{Msg: fmt.Sprintf("BatchSize must be greater than 0, got %d", batchSize)}
	}
	b.opts = b.opts.WithBatchSize(batchSize)
	return nil
}

// Finish freezes the accumulated configuration into a new immutable
// Scanner. Finish is read-only with respect to the builder and may be
// called multiple times, producing an independent Scanner each call. If
// a non-empty projection was requested, the scan's output schema is
// reduced to exactly the requested columns in requested order; the
// filter stays bound against the full schema, which keeps it evaluable
// even when it references projected-out columns.
func (b *ScannerBuilder) Finish() (*Scanner, error) {
	var opts *dataset.ScanOptions
	if b.hasProjection && len(b.projection) > 0 {
		projected, err := b.Schema().Select(b.projection)
		if err != nil {
			return nil, err
		}
		opts = b.opts.ReplaceSchema(projected)
	} else {
		opts = b.opts.Clone()
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	if b.dataset == nil {
		return &Scanner{fragment: b.fragment, opts: opts, sctx: b.sctx, id: id.String()}, nil
	}
	return &Scanner{dataset: b.dataset, opts: opts, sctx: b.sctx, id: id.String()}, nil
}
