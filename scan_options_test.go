package dataset_test

import (
	"testing"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	"github.com/YashJipkate/skyhookdm-arrow/expr"
	"github.com/YashJipkate/skyhookdm-arrow/schema"
	"github.com/stretchr/testify/require"
)

func createTestSchema() dataset.Schema {
	s := schema.CreateSchema()
	s.CreateColumn("id", &dataset.Int64ColumnType{})
	s.CreateColumn("name", &dataset.VarStringColumnType{})
	s.CreateColumn("score", &dataset.Float64ColumnType{})
	return s
}

func TestCreateScanOptionsDefaults(t *testing.T) {
	s := createTestSchema()
	opts := dataset.CreateScanOptions(s)
	require.Nil(t, opts.Schema().Equals(s))
	require.Nil(t, opts.Filter())
	require.Equal(t, int64(dataset.DefaultBatchSize), opts.BatchSize())
}

func TestWithSettersCopy(t *testing.T) {
	s := createTestSchema()
	opts := dataset.CreateScanOptions(s)

	sized := opts.WithBatchSize(64)
	require.Equal(t, int64(64), sized.BatchSize())
	require.Equal(t, int64(dataset.DefaultBatchSize), opts.BatchSize())

	filter, err := expr.Equal(expr.Col("id"), expr.Literal(1)).Bind(s)
	require.Nil(t, err)
	filtered := opts.WithFilter(filter)
	require.Equal(t, filter, filtered.Filter())
	require.Nil(t, opts.Filter())
}

func TestMaterializedFields(t *testing.T) {
	s := createTestSchema()
	opts := dataset.CreateScanOptions(s)
	// with no filter, the materialized fields are just the schema columns
	require.Equal(t, []string{"id", "name", "score"}, opts.MaterializedFields())

	filter, err := expr.And(
		expr.GreaterThan(expr.Col("score"), expr.Literal(0.5)),
		expr.Equal(expr.Col("id"), expr.Literal(1)),
	).Bind(s)
	require.Nil(t, err)
	// filter fields already in the schema are not repeated
	require.Equal(t, []string{"id", "name", "score"}, opts.WithFilter(filter).MaterializedFields())

	projected, err := s.Select([]string{"name"})
	require.Nil(t, err)
	narrowed := opts.WithFilter(filter).ReplaceSchema(projected)
	// filter-only fields follow the schema columns, in filter order
	require.Equal(t, []string{"name", "score", "id"}, narrowed.MaterializedFields())
}

func TestReplaceSchemaKeepsFilter(t *testing.T) {
	s := createTestSchema()
	filter, err := expr.GreaterThan(expr.Col("id"), expr.Literal(2)).Bind(s)
	require.Nil(t, err)
	opts := dataset.CreateScanOptions(s).WithFilter(filter)

	projected, err := s.Select([]string{"name"})
	require.Nil(t, err)
	replaced := opts.ReplaceSchema(projected)

	// the schema is swapped but the bound filter is carried verbatim,
	// keeping its original column resolution
	require.Equal(t, []string{"name"}, replaced.Schema().ColumnNames())
	require.Equal(t, filter, replaced.Filter())
	require.Equal(t, []string{"id", "name", "score"}, opts.Schema().ColumnNames())
}

func TestCloneIndependence(t *testing.T) {
	s := createTestSchema()
	opts := dataset.CreateScanOptions(s).WithBatchSize(32)
	copied := opts.Clone()
	require.Equal(t, opts.BatchSize(), copied.BatchSize())

	resized := copied.WithBatchSize(8)
	require.Equal(t, int64(32), opts.BatchSize())
	require.Equal(t, int64(8), resized.BatchSize())
}
