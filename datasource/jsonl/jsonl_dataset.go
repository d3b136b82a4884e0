package jsonl

import (
	"bufio"
	"bytes"
	"io/ioutil"
	"path/filepath"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/datasource"
	"github.com/YashJipkate/skyhookdm-arrow/logging"
)

// Dataset is a Dataset over JSON-lines files on disk matched by a glob.
// Each matched file becomes one Fragment; file contents are not read
// until a scan task over that Fragment is executed.
type Dataset struct {
	glob   string
	schema dataset.Schema
}

// CreateDataset is a factory for JSONL file Datasets
func CreateDataset(glob string, fragmentSchema dataset.Schema) *Dataset {
	return &Dataset{glob: glob, schema: fragmentSchema}
}

// Schema returns the Schema shared by this Dataset's files
func (ds *Dataset) Schema() dataset.Schema {
	return ds.schema
}

// GetFragments matches the glob against the filesystem and returns a
// single-pass iterator over one Fragment per matched file. JSONL files
// carry no statistics, so the predicate cannot prune anything here.
func (ds *Dataset) GetFragments(filter dataset.Expression) (dataset.FragmentIterator, error) {
	matches, err := filepath.Glob(ds.glob)
	if err != nil {
		return nil, err
	}
	fragments := make([]dataset.Fragment, len(matches))
	for i, path := range matches {
		fragments[i] = &fileFragment{path: path, schema: ds.schema}
	}
	logging.Logf(logging.TraceLevel, "glob %s matched %d files", ds.glob, len(matches))
	return dataset.CreateFragmentSliceIterator(fragments), nil
}

// fileFragment is a Fragment over a single JSONL file on disk
type fileFragment struct {
	path   string
	schema dataset.Schema
}

// Schema returns the full Schema of this Fragment's underlying data
func (f *fileFragment) Schema() dataset.Schema {
	return f.schema
}

// Scan returns a single scan task which opens and parses this
// Fragment's file, reading only the columns named by
// opts.MaterializedFields. The file is not opened until the task is
// executed.
func (f *fileFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	materialized, err := materializeSchema(f.schema, opts)
	if err != nil {
		return nil, err
	}
	task := &fileScanTask{path: f.path, materialized: materialized, opts: opts}
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{task}), nil
}

// fileScanTask opens its file at execution time and parses it the same
// way an in-memory JSONL scan task does
type fileScanTask struct {
	path         string
	materialized dataset.Schema
	opts         *dataset.ScanOptions
}

// Execute reads the file and produces this task's Batches. The whole
// file is held in memory while the task runs; rows still stream out in
// batchSize chunks.
func (t *fileScanTask) Execute() (dataset.BatchIterator, error) {
	data, err := ioutil.ReadFile(t.path)
	if err != nil {
		return nil, err
	}
	source := &parsingBatchIterator{
		scanner:   bufio.NewScanner(bytes.NewReader(data)),
		schema:    t.materialized,
		batchSize: t.opts.BatchSize(),
	}
	return datasource.CreateScanBatchIterator(source, t.opts), nil
}
