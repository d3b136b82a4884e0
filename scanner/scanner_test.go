package scanner

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/datasource/memory"
	"github.com/YashJipkate/skyhookdm-arrow/expr"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func collectColumn(t *testing.T, table *Table, colName string) []interface{} {
	var values []interface{}
	for _, b := range table.Batches() {
		col, err := b.Column(colName)
		require.Nil(t, err)
		values = append(values, col...)
	}
	return values
}

func TestToTableSerial(t *testing.T) {
	_, ds := createTestDataset(t)
	scanner, err := CreateScannerBuilder(ds, &dataset.ScanContext{}).Finish()
	require.Nil(t, err)

	table, err := scanner.ToTable()
	require.Nil(t, err)
	require.Equal(t, int64(6), table.NumRows())
	require.Nil(t, table.Schema().Equals(scanner.Options().Schema()))
	require.Equal(t,
		[]interface{}{int64(1), int64(2), int64(3), int64(4), int64(5), int64(6)},
		collectColumn(t, table, "id"))
}

func TestToTableFilterAndProject(t *testing.T) {
	_, ds := createTestDataset(t)
	b := CreateScannerBuilder(ds, &dataset.ScanContext{})
	require.Nil(t, b.Filter(expr.GreaterThanOrEqual(expr.Col("id"), expr.Literal(3))))
	require.Nil(t, b.Project([]string{"name"}))
	scanner, err := b.Finish()
	require.Nil(t, err)

	// the filter references a projected-out column, yet still applies
	table, err := scanner.ToTable()
	require.Nil(t, err)
	require.Equal(t, []string{"name"}, table.Schema().ColumnNames())
	require.Equal(t, []interface{}{"c", "d", "e", "f"}, collectColumn(t, table, "name"))
}

// gatedScanTask blocks inside Execute until released, so a test can
// force its tasks to complete in an order of its choosing
type gatedScanTask struct {
	batches []dataset.Batch
	release chan struct{}
}

func (gt *gatedScanTask) Execute() (dataset.BatchIterator, error) {
	<-gt.release
	return dataset.CreateBatchSliceIterator(gt.batches), nil
}

type gatedFragment struct {
	schema dataset.Schema
	task   dataset.ScanTask
}

func (gf *gatedFragment) Schema() dataset.Schema {
	return gf.schema
}

func (gf *gatedFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{gf.task}), nil
}

func TestToTableOrderIsTaskOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := createTestSchema()

	releases := make([]chan struct{}, 3)
	fragments := make([]dataset.Fragment, 3)
	for i := range fragments {
		releases[i] = make(chan struct{})
		fragments[i] = &gatedFragment{
			schema: s,
			task: &gatedScanTask{
				batches: []dataset.Batch{
					createTestBatch(t, s, []int64{int64(i)}, []string{fmt.Sprintf("frag%d", i)}),
				},
				release: releases[i],
			},
		}
	}
	ds := memory.CreateDataset(s, fragments...)

	// enough workers that every gated task can be in flight at once
	sctx := &dataset.ScanContext{UseThreads: true, NumWorkers: 3}
	scanner, err := CreateScannerBuilder(ds, sctx).Finish()
	require.Nil(t, err)

	done := make(chan struct{})
	var table *Table
	var scanErr error
	go func() {
		table, scanErr = scanner.ToTable()
		close(done)
	}()

	// release the tasks in reverse discovery order
	close(releases[2])
	close(releases[1])
	close(releases[0])
	<-done

	// the table order still follows discovery order, not completion order
	require.Nil(t, scanErr)
	require.Equal(t, []interface{}{int64(0), int64(1), int64(2)}, collectColumn(t, table, "id"))
}

// failingScanTask fails Execute unconditionally
type failingScanTask struct{}

func (ft *failingScanTask) Execute() (dataset.BatchIterator, error) {
	return nil, fmt.Errorf("disk on fire")
}

type failingFragment struct {
	schema dataset.Schema
}

func (ff *failingFragment) Schema() dataset.Schema {
	return ff.schema
}

func (ff *failingFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	return dataset.CreateScanTaskSliceIterator([]dataset.ScanTask{&failingScanTask{}}), nil
}

func TestToTableTaskFailure(t *testing.T) {
	s := createTestSchema()
	good := memory.CreateFragment(s, []dataset.Batch{
		createTestBatch(t, s, []int64{1}, []string{"a"}),
	})
	ds := memory.CreateDataset(s, good, &failingFragment{schema: s})

	for _, useThreads := range []bool{false, true} {
		scanner, err := CreateScannerBuilder(ds, &dataset.ScanContext{UseThreads: useThreads}).Finish()
		require.Nil(t, err)
		table, err := scanner.ToTable()
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "disk on fire")
		// no partial table on failure
		require.Nil(t, table)
	}
}

// scanFailingFragment cannot even enumerate its scan tasks
type scanFailingFragment struct {
	schema dataset.Schema
}

func (sf *scanFailingFragment) Schema() dataset.Schema {
	return sf.schema
}

func (sf *scanFailingFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	return nil, fmt.Errorf("cannot list scan tasks")
}

func TestToTableDrainsWorkersOnIteratorFailure(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := createTestSchema()
	ds := memory.CreateDataset(s,
		memory.CreateFragment(s, []dataset.Batch{
			createTestBatch(t, s, []int64{1}, []string{"a"}),
		}),
		&scanFailingFragment{schema: s},
	)

	// the first fragment's task is already submitted when iteration
	// fails on the second; the worker must be waited out, not leaked
	scanner, err := CreateScannerBuilder(ds, &dataset.ScanContext{UseThreads: true, NumWorkers: 2}).Finish()
	require.Nil(t, err)
	table, err := scanner.ToTable()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "cannot list scan tasks")
	require.Nil(t, table)
}

func TestScanIsLazy(t *testing.T) {
	s := createTestSchema()
	frag1 := &countingFragment{schema: s, batch: createTestBatch(t, s, []int64{1}, []string{"a"})}
	frag2 := &countingFragment{schema: s, batch: createTestBatch(t, s, []int64{2}, []string{"b"})}
	ds := memory.CreateDataset(s, frag1, frag2)

	scanner, err := CreateScannerBuilder(ds, &dataset.ScanContext{}).Finish()
	require.Nil(t, err)

	// building the task iterator expands no fragment
	tasks, err := scanner.Scan()
	require.Nil(t, err)
	require.Equal(t, 0, frag1.scans)
	require.Equal(t, 0, frag2.scans)

	// advancing once expands only the first fragment
	_, err = tasks.NextTask()
	require.Nil(t, err)
	require.Equal(t, 1, frag1.scans)
	require.Equal(t, 0, frag2.scans)

	_, err = tasks.NextTask()
	require.Nil(t, err)
	require.Equal(t, 1, frag2.scans)
}

type countingFragment struct {
	schema dataset.Schema
	batch  dataset.Batch
	scans  int
}

func (cf *countingFragment) Schema() dataset.Schema {
	return cf.schema
}

func (cf *countingFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	cf.scans++
	return ScanTaskIteratorFromBatches([]dataset.Batch{cf.batch}, opts, sctx)
}

// emptyFragment yields no scan tasks at all
type emptyFragment struct {
	schema dataset.Schema
}

func (ef *emptyFragment) Schema() dataset.Schema {
	return ef.schema
}

func (ef *emptyFragment) Scan(opts *dataset.ScanOptions, sctx *dataset.ScanContext) (dataset.ScanTaskIterator, error) {
	return dataset.CreateScanTaskSliceIterator(nil), nil
}

func TestScanToleratesEmptyFragments(t *testing.T) {
	s := createTestSchema()
	ds := memory.CreateDataset(s,
		&emptyFragment{schema: s},
		memory.CreateFragment(s, []dataset.Batch{createTestBatch(t, s, []int64{1}, []string{"a"})}),
		&emptyFragment{schema: s},
	)

	scanner, err := CreateScannerBuilder(ds, &dataset.ScanContext{}).Finish()
	require.Nil(t, err)
	table, err := scanner.ToTable()
	require.Nil(t, err)
	require.Equal(t, int64(1), table.NumRows())
}

func TestEmplaceConcurrent(t *testing.T) {
	s := createTestSchema()
	state := &tableAssemblyState{}

	const positions = 64
	expected := make([][]dataset.Batch, positions)
	for i := 0; i < positions; i++ {
		expected[i] = []dataset.Batch{
			createTestBatch(t, s, []int64{int64(i)}, []string{"x"}),
		}
	}

	order := rand.Perm(positions)
	var wg sync.WaitGroup
	for _, position := range order {
		wg.Add(1)
		position := position
		go func() {
			defer wg.Done()
			state.Emplace(expected[position], position)
		}()
	}
	wg.Wait()

	flattened := flattenBatches(state.batches)
	require.Equal(t, positions, len(flattened))
	for i, b := range flattened {
		cell, err := b.Cell("id", 0)
		require.Nil(t, err)
		require.Equal(t, int64(i), cell)
	}
}

func TestFlattenBatchesSkipsGaps(t *testing.T) {
	s := createTestSchema()
	state := &tableAssemblyState{}
	state.Emplace([]dataset.Batch{createTestBatch(t, s, []int64{5}, []string{"e"})}, 5)
	state.Emplace([]dataset.Batch{createTestBatch(t, s, []int64{2}, []string{"b"})}, 2)

	flattened := flattenBatches(state.batches)
	require.Equal(t, 2, len(flattened))
	first, err := flattened[0].Cell("id", 0)
	require.Nil(t, err)
	require.Equal(t, int64(2), first)
}

func TestToTableThreadedRandomized(t *testing.T) {
	defer goleak.VerifyNone(t)
	s := createTestSchema()

	const fragments = 8
	frags := make([]dataset.Fragment, fragments)
	var expected []interface{}
	for i := 0; i < fragments; i++ {
		rows := rand.Intn(5) + 1
		ids := make([]int64, rows)
		names := make([]string, rows)
		for r := range ids {
			ids[r] = int64(len(expected))
			names[r] = "n"
			expected = append(expected, int64(len(expected)))
		}
		frags[i] = memory.CreateFragment(s, []dataset.Batch{createTestBatch(t, s, ids, names)})
	}
	ds := memory.CreateDataset(s, frags...)

	scanner, err := CreateScannerBuilder(ds, &dataset.ScanContext{UseThreads: true, NumWorkers: 4}).Finish()
	require.Nil(t, err)
	table, err := scanner.ToTable()
	require.Nil(t, err)
	require.Equal(t, expected, collectColumn(t, table, "id"))
}
