package dataset

// Schema is an ordered mapping from column names to ColumnTypes.
// It allows one to resolve columns by name, derive projected
// sub-Schemas, validate column references, etc.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumColumns() int
	GetColumn(colName string) (col Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, colType ColumnType) (newSchema Schema, err error)
	CanReferenceColumns(colNames []string) error
	Select(colNames []string) (newSchema Schema, err error)
	ColumnNames() []string
	ColumnTypes() []ColumnType
	ForEachColumn(fn func(name string, col Column) error) error
}
