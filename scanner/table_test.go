package scanner

import (
	"testing"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/batch"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
	"github.com/YashJipkate/skyhookdm-arrow/schema"
	"github.com/stretchr/testify/require"
)

func createTestBatchForSchema(t *testing.T, s dataset.Schema, ids []int64) dataset.Batch {
	vals := make([]interface{}, len(ids))
	for i := range ids {
		vals[i] = ids[i]
	}
	b, err := batch.CreateBatch(s, map[string][]interface{}{"id": vals})
	require.Nil(t, err)
	return b
}

func TestCreateTable(t *testing.T) {
	s := createTestSchema()
	batches := []dataset.Batch{
		createTestBatch(t, s, []int64{1, 2}, []string{"a", "b"}),
		createTestBatch(t, s, []int64{3}, []string{"c"}),
	}
	table, err := CreateTable(s, batches)
	require.Nil(t, err)
	require.Equal(t, 2, table.NumBatches())
	require.Equal(t, int64(3), table.NumRows())
	require.Nil(t, table.Schema().Equals(s))
	require.Equal(t, batches, table.Batches())
}

func TestCreateTableEmpty(t *testing.T) {
	table, err := CreateTable(createTestSchema(), nil)
	require.Nil(t, err)
	require.Equal(t, 0, table.NumBatches())
	require.Equal(t, int64(0), table.NumRows())
}

func TestTableNumBytes(t *testing.T) {
	s := createTestSchema()
	table, err := CreateTable(s, []dataset.Batch{
		// 2 rows of int64 plus 2 bytes of string data
		createTestBatch(t, s, []int64{1, 2}, []string{"a", "b"}),
		// 1 row of int64 plus 2 bytes of string data
		createTestBatch(t, s, []int64{3}, []string{"cc"}),
	})
	require.Nil(t, err)
	require.Equal(t, int64(28), table.NumBytes())
}

func TestTableToString(t *testing.T) {
	s := createTestSchema()
	table, err := CreateTable(s, []dataset.Batch{
		createTestBatch(t, s, []int64{1, 2}, []string{"a", "b"}),
	})
	require.Nil(t, err)
	require.Equal(t, "id, name\n1, \"a\"\n2, \"b\"\n", table.ToString())

	// long tables are summarized past the preview cap
	ids := make([]int64, 15)
	names := make([]string, 15)
	for i := range ids {
		ids[i] = int64(i)
		names[i] = "n"
	}
	long, err := CreateTable(s, []dataset.Batch{createTestBatch(t, s, ids, names)})
	require.Nil(t, err)
	require.Contains(t, long.ToString(), "... 5 more rows")
}

func TestCreateTableReportsEveryBadBatch(t *testing.T) {
	s := createTestSchema()
	other := schema.CreateSchema()
	other.CreateColumn("id", &dataset.Int64ColumnType{})
	otherBatch := createTestBatchForSchema(t, other, []int64{9})

	_, err := CreateTable(s, []dataset.Batch{
		otherBatch,
		createTestBatch(t, s, []int64{1}, []string{"a"}),
		otherBatch,
	})
	require.NotNil(t, err)
	// both non-conforming batches are reported with their positions
	merr, ok := err.(interface{ WrappedErrors() []error })
	require.True(t, ok)
	wrapped := merr.WrappedErrors()
	require.Equal(t, 2, len(wrapped))
	require.Equal(t, 0, wrapped[0].(errors.IncompatibleBatchError).Position)
	require.Equal(t, 2, wrapped[1].(errors.IncompatibleBatchError).Position)
}
