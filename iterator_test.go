package dataset_test

import (
	"testing"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/batch"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
	"github.com/stretchr/testify/require"
)

func TestBatchSliceIterator(t *testing.T) {
	s := createTestSchema()
	b, err := batch.CreateBatch(s, map[string][]interface{}{
		"id":    {int64(1)},
		"name":  {"x"},
		"score": {0.5},
	})
	require.Nil(t, err)

	it := dataset.CreateBatchSliceIterator([]dataset.Batch{b, b})
	seen := 0
	for it.HasNextBatch() {
		next, err := it.NextBatch()
		require.Nil(t, err)
		require.Equal(t, 1, next.NumRows())
		seen++
	}
	require.Equal(t, 2, seen)

	_, err = it.NextBatch()
	require.IsType(t, errors.NoMoreBatchesError{}, err)
}

func TestEmptySliceIterators(t *testing.T) {
	fragIt := dataset.CreateFragmentSliceIterator(nil)
	require.False(t, fragIt.HasNextFragment())
	_, err := fragIt.NextFragment()
	require.IsType(t, errors.NoMoreFragmentsError{}, err)

	taskIt := dataset.CreateScanTaskSliceIterator(nil)
	require.False(t, taskIt.HasNextTask())
	_, err = taskIt.NextTask()
	require.IsType(t, errors.NoMoreScanTasksError{}, err)
}
