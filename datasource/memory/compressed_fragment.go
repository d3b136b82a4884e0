package memory

import (
	"bytes"
	"io/ioutil"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/lz4"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/batch"
	"github.com/YashJipkate/skyhookdm-arrow/datasource"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// CompressedFragment is an in-memory Fragment which stores its Batches
// as lz4-compressed payloads, trading scan-time CPU for resident
// memory. Each payload carries an xxhash64 checksum which is verified
// before decompression.
type CompressedFragment struct {
	schema    dataset.Schema
	payloads  [][]byte
	checksums []uint64
}

// CompressFragment compresses the given Batches into a CompressedFragment
func CompressFragment(schema dataset.Schema, batches []dataset.Batch) (*CompressedFragment, error) {
	payloads := make([][]byte, len(batches))
	checksums := make([]uint64, len(batches))
	for i, b := range batches {
		raw, err := batch.ToBytes(b)
		if err != nil {
			return nil, err
		}
		var buff bytes.Buffer
		compressor := lz4.NewWriter(&buff)
		if _, err := compressor.Write(raw); err != nil {
			return nil, err
		}
		if err := compressor.Close(); err != nil {
			return nil, err
		}
		payloads[i] = buff.Bytes()
		checksums[i] = xxhash.Sum64(payloads[i])
	}
	return &CompressedFragment{schema: schema, payloads: payloads, checksums: checksums}, nil
}

// Schema returns the physical Schema of this Fragment's stored Batches
func (f *CompressedFragment) Schema() dataset.Schema {
	return f.schema
}

// Scan returns a single scan task which decompresses this Fragment's
// payloads lazily and reads them through the filter/project/re-chunk
// pipeline
func (f *CompressedFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	task := &compressedScanTask{fragment: f, opts: opts}
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{task}), nil
}

type compressedScanTask struct {
	fragment *CompressedFragment
	opts     *dataset.ScanOptions
}

// Execute produces this task's Batches, decompressing each stored
// payload as the returned iterator reaches it
func (t *compressedScanTask) Execute() (dataset.BatchIterator, error) {
	source := &decompressingBatchIterator{fragment: t.fragment}
	return datasource.CreateScanBatchIterator(source, t.opts), nil
}

// decompressingBatchIterator decodes one stored payload per NextBatch call
type decompressingBatchIterator struct {
	fragment *CompressedFragment
	next     int
	lock     sync.Mutex
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch
func (dbi *decompressingBatchIterator) HasNextBatch() bool {
	dbi.lock.Lock()
	defer dbi.lock.Unlock()
	return dbi.next < len(dbi.fragment.payloads)
}

// NextBatch verifies, decompresses and deserializes the next stored payload
func (dbi *decompressingBatchIterator) NextBatch() (dataset.Batch, error) {
	dbi.lock.Lock()
	defer dbi.lock.Unlock()
	if dbi.next >= len(dbi.fragment.payloads) {
		return nil, errors.NoMoreBatchesError{}
	}
	position := dbi.next
	dbi.next++
	payload := dbi.fragment.payloads[position]
	if xxhash.Sum64(payload) != dbi.fragment.checksums[position] {
		return nil, errors.ChecksumMismatchError{Position: position}
	}
	decompressor := lz4.NewReader(bytes.NewReader(payload))
	raw, err := ioutil.ReadAll(decompressor)
	if err != nil {
		return nil, err
	}
	return batch.FromBytes(raw, dbi.fragment.schema)
}
