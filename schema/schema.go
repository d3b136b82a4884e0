package schema

import (
	"fmt"
	"reflect"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// column describes the position and type of a named column within a Schema.
type column struct {
	idx     int
	colType dataset.ColumnType
}

// Clone returns a copy of this Column
func (c *column) Clone() dataset.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the ColumnType of this Column
func (c *column) Type() dataset.ColumnType {
	return c.colType
}

// Schema is an ordered mapping from column names to ColumnTypes. It
// allows one to resolve columns by name, derive projected sub-schemas,
// validate sets of column references, etc.
type schema struct {
	columns map[string]dataset.Column
}

// CreateSchema is a factory for Schemas
func CreateSchema() dataset.Schema {
	return &schema{
		columns: make(map[string]dataset.Column),
	}
}

// Equals returns nil iff this and another Schema are equivalent
func (s *schema) Equals(otherSchema dataset.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	return s.ForEachColumn(func(name string, col dataset.Column) error {
		otherCol, err := otherSchema.GetColumn(name)
		if err != nil {
			return err
		}
		if col.Index() != otherCol.Index() {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if reflect.TypeOf(col.Type()) != reflect.TypeOf(otherCol.Type()) {
			return fmt.Errorf("Column %s types do not match", name)
		}
		return nil
	})
}

// Clone returns a copy of this Schema
func (s *schema) Clone() dataset.Schema {
	newColumns := make(map[string]dataset.Column)
	for k, v := range s.columns {
		newColumns[k] = v.Clone()
	}
	return &schema{columns: newColumns}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.columns)
}

// GetColumn returns the column with the given name, or a FieldResolutionError if it does not resolve
func (s *schema) GetColumn(colName string) (col dataset.Column, err error) {
	col, ok := s.columns[colName]
	if !ok {
		err = errors.FieldResolutionError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, err := s.GetColumn(colName)
	return err == nil
}

// CreateColumn defines a new column within the Schema
func (s *schema) CreateColumn(colName string, colType dataset.ColumnType) (newSchema dataset.Schema, err error) {
	_, containsColumn := s.columns[colName]
	if containsColumn {
		err = errors.InvalidError{Msg: fmt.Sprintf("Schema already contains column with name %s", colName)}
	} else {
		s.columns[colName] = &column{len(s.columns), colType}
		newSchema = s
	}
	return
}

// CanReferenceColumns returns nil iff every name in colNames resolves
// to exactly one column of this Schema
func (s *schema) CanReferenceColumns(colNames []string) error {
	for _, name := range colNames {
		if _, err := s.GetColumn(name); err != nil {
			return err
		}
	}
	return nil
}

// Select produces a new Schema containing exactly the named columns,
// in the requested order. The source Schema is untouched.
func (s *schema) Select(colNames []string) (newSchema dataset.Schema, err error) {
	if err := s.CanReferenceColumns(colNames); err != nil {
		return nil, err
	}
	selected := &schema{columns: make(map[string]dataset.Column, len(colNames))}
	for i, name := range colNames {
		col := s.columns[name].Clone()
		col.SetIndex(i)
		selected.columns[name] = col
	}
	return selected, nil
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for k, v := range s.columns {
		names[v.Index()] = k
	}
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []dataset.ColumnType {
	types := make([]dataset.ColumnType, len(s.columns))
	for _, v := range s.columns {
		types[v.Index()] = v.Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema. Does not necessarily iterate in order of column index.
func (s *schema) ForEachColumn(fn func(name string, col dataset.Column) error) error {
	for k, v := range s.columns {
		err := fn(k, v)
		if err != nil {
			return err
		}
	}
	return nil
}
