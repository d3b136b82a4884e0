package batch

import (
	"bytes"
	"encoding/gob"
	"fmt"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

func init() {
	// fixed-width cell values travel through gob as interface values,
	// so their concrete types must be registered; variable-length
	// values are serialized by their column types instead
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(false)
}

// serializedColumn is the wire form of one column of a Batch.
// Fixed-width cells travel as gob interface values; variable-length
// cells are serialized individually by their VarColumnType.
type serializedColumn struct {
	Name  string
	Fixed []interface{}
	Var   [][]byte
}

// serializedBatch is the wire form of a Batch. The schema itself is not
// serialized; deserialization happens against a known Schema, and the
// column names are carried only to verify agreement.
type serializedBatch struct {
	Columns []serializedColumn
}

// ToBytes serializes a Batch to binary data
func ToBytes(b dataset.Batch) ([]byte, error) {
	names := b.Schema().ColumnNames()
	types := b.Schema().ColumnTypes()
	ser := serializedBatch{Columns: make([]serializedColumn, len(names))}
	for i, name := range names {
		values, err := b.Column(name)
		if err != nil {
			return nil, err
		}
		col := serializedColumn{Name: name}
		if dataset.IsVariableLength(types[i]) {
			varType := types[i].(dataset.VarColumnType)
			col.Var = make([][]byte, len(values))
			for j, v := range values {
				if col.Var[j], err = varType.Serialize(v); err != nil {
					return nil, err
				}
			}
		} else {
			col.Fixed = values
		}
		ser.Columns[i] = col
	}
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	if err := e.Encode(ser); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes deserializes a Batch from binary data produced by ToBytes,
// against the Schema the Batch was serialized with
func FromBytes(data []byte, schema dataset.Schema) (dataset.Batch, error) {
	var ser serializedBatch
	d := gob.NewDecoder(bytes.NewBuffer(data))
	if err := d.Decode(&ser); err != nil {
		return nil, err
	}
	names := schema.ColumnNames()
	types := schema.ColumnTypes()
	if len(ser.Columns) != len(names) {
		return nil, errors.InvalidError{Msg: fmt.Sprintf("serialized batch has %d columns, schema expects %d", len(ser.Columns), len(names))}
	}
	columns := make(map[string][]interface{}, len(names))
	for i, col := range ser.Columns {
		if col.Name != names[i] {
			return nil, errors.InvalidError{Msg: fmt.Sprintf("serialized batch column %s does not match schema column %s", col.Name, names[i])}
		}
		if dataset.IsVariableLength(types[i]) {
			varType := types[i].(dataset.VarColumnType)
			values := make([]interface{}, len(col.Var))
			for j, raw := range col.Var {
				v, err := varType.Deserialize(raw)
				if err != nil {
					return nil, err
				}
				values[j] = v
			}
			columns[col.Name] = values
		} else {
			columns[col.Name] = col.Fixed
		}
	}
	return CreateBatch(schema, columns)
}
