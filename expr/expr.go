package expr

import (
	"fmt"
	"strings"

	dataset "github.com/YashJipkate/skyhookdm-arrow"
	errors "github.com/YashJipkate/skyhookdm-arrow/errors"
)

// literal is an Expression which always evaluates to a fixed value
type literal struct {
	value interface{}
}

// Literal produces an Expression which evaluates to the given value.
// Integer and float values are normalized to int64 and float64 so that
// they compare cleanly against column values.
func Literal(value interface{}) dataset.Expression {
	switch v := value.(type) {
	case int:
		return &literal{int64(v)}
	case int32:
		return &literal{int64(v)}
	case float32:
		return &literal{float64(v)}
	default:
		return &literal{value}
	}
}

// Fields returns the names of all columns referenced by this Expression
func (l *literal) Fields() []string {
	return nil
}

// Bind resolves this Expression against a Schema. Literals reference no columns, so binding is a no-op.
func (l *literal) Bind(schema dataset.Schema) (dataset.Expression, error) {
	return l, nil
}

// Bound returns true iff every column reference in this Expression has been resolved
func (l *literal) Bound() bool {
	return true
}

// Evaluate produces the value of this Expression for the given Batch row
func (l *literal) Evaluate(b dataset.Batch, row int) (interface{}, error) {
	return l.value, nil
}

// ToString produces a string representation of this Expression
func (l *literal) ToString() string {
	if s, ok := l.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.value)
}

// columnRef is an Expression which evaluates to the value of a named column
type columnRef struct {
	name    string
	colType dataset.ColumnType // nil until bound
}

// Col produces an Expression which evaluates to the value of the named column
func Col(name string) dataset.Expression {
	return &columnRef{name: name}
}

// Fields returns the names of all columns referenced by this Expression
func (c *columnRef) Fields() []string {
	return []string{c.name}
}

// Bind resolves this column reference against a Schema, fixing its column type
func (c *columnRef) Bind(schema dataset.Schema) (dataset.Expression, error) {
	col, err := schema.GetColumn(c.name)
	if err != nil {
		return nil, err
	}
	return &columnRef{name: c.name, colType: col.Type()}, nil
}

// Bound returns true iff every column reference in this Expression has been resolved
func (c *columnRef) Bound() bool {
	return c.colType != nil
}

// Evaluate produces the value of this Expression for the given Batch row
func (c *columnRef) Evaluate(b dataset.Batch, row int) (interface{}, error) {
	if !c.Bound() {
		return nil, errors.UnboundExpressionError{}
	}
	return b.Cell(c.name, row)
}

// ToString produces a string representation of this Expression
func (c *columnRef) ToString() string {
	return c.name
}

type compareOp int

const (
	opEq compareOp = iota
	opNeq
	opLt
	opLte
	opGt
	opGte
)

func (op compareOp) String() string {
	switch op {
	case opEq:
		return "=="
	case opNeq:
		return "!="
	case opLt:
		return "<"
	case opLte:
		return "<="
	case opGt:
		return ">"
	default:
		return ">="
	}
}

// comparison is an Expression comparing the values of two sub-Expressions
type comparison struct {
	op          compareOp
	left, right dataset.Expression
}

// Equal produces an Expression testing whether left and right evaluate to equal values
func Equal(left dataset.Expression, right dataset.Expression) dataset.Expression {
	return &comparison{op: opEq, left: left, right: right}
}

// NotEqual produces an Expression testing whether left and right evaluate to unequal values
func NotEqual(left dataset.Expression, right dataset.Expression) dataset.Expression {
	return &comparison{op: opNeq, left: left, right: right}
}

// LessThan produces an Expression testing whether left evaluates to a value less than right's
func LessThan(left dataset.Expression, right dataset.Expression) dataset.Expression {
	return &comparison{op: opLt, left: left, right: right}
}

// LessThanOrEqual produces an Expression testing whether left evaluates to a value at most right's
func LessThanOrEqual(left dataset.Expression, right dataset.Expression) dataset.Expression {
	return &comparison{op: opLte, left: left, right: right}
}

// GreaterThan produces an Expression testing whether left evaluates to a value greater than right's
func GreaterThan(left dataset.Expression, right dataset.Expression) dataset.Expression {
	return &comparison{op: opGt, left: left, right: right}
}

// GreaterThanOrEqual produces an Expression testing whether left evaluates to a value at least right's
func GreaterThanOrEqual(left dataset.Expression, right dataset.Expression) dataset.Expression {
	return &comparison{op: opGte, left: left, right: right}
}

// Fields returns the names of all columns referenced by this Expression
func (c *comparison) Fields() []string {
	return mergeFields(c.left, c.right)
}

// Bind resolves both operands against a Schema and type-checks the comparison
func (c *comparison) Bind(schema dataset.Schema) (dataset.Expression, error) {
	left, err := c.left.Bind(schema)
	if err != nil {
		return nil, err
	}
	right, err := c.right.Bind(schema)
	if err != nil {
		return nil, err
	}
	leftKind := staticKind(left)
	rightKind := staticKind(right)
	if leftKind != "" && rightKind != "" {
		if leftKind != rightKind {
			return nil, errors.TypeMismatchError{Left: leftKind, Right: rightKind}
		}
		if leftKind == kindBytes {
			return nil, errors.TypeMismatchError{Left: leftKind, Right: rightKind}
		}
		if leftKind == kindBool && c.op != opEq && c.op != opNeq {
			return nil, errors.TypeMismatchError{Left: leftKind, Right: rightKind}
		}
	}
	return &comparison{op: c.op, left: left, right: right}, nil
}

// Bound returns true iff every column reference in this Expression has been resolved
func (c *comparison) Bound() bool {
	return c.left.Bound() && c.right.Bound()
}

// Evaluate produces the value of this Expression for the given Batch row
func (c *comparison) Evaluate(b dataset.Batch, row int) (interface{}, error) {
	leftVal, err := c.left.Evaluate(b, row)
	if err != nil {
		return nil, err
	}
	rightVal, err := c.right.Evaluate(b, row)
	if err != nil {
		return nil, err
	}
	return compare(c.op, leftVal, rightVal)
}

// ToString produces a string representation of this Expression
func (c *comparison) ToString() string {
	return fmt.Sprintf("(%s %s %s)", c.left.ToString(), c.op, c.right.ToString())
}

// andExpr is an Expression which is true iff all of its operands are true
type andExpr struct {
	operands []dataset.Expression
}

// And produces an Expression which is true iff all of the given Expressions are true
func And(operands ...dataset.Expression) dataset.Expression {
	return &andExpr{operands: operands}
}

// Fields returns the names of all columns referenced by this Expression
func (a *andExpr) Fields() []string {
	return mergeFields(a.operands...)
}

// Bind resolves every operand against a Schema
func (a *andExpr) Bind(schema dataset.Schema) (dataset.Expression, error) {
	bound, err := bindAll(a.operands, schema)
	if err != nil {
		return nil, err
	}
	return &andExpr{operands: bound}, nil
}

// Bound returns true iff every column reference in this Expression has been resolved
func (a *andExpr) Bound() bool {
	return allBound(a.operands)
}

// Evaluate produces the value of this Expression for the given Batch row, short-circuiting on the first false operand
func (a *andExpr) Evaluate(b dataset.Batch, row int) (interface{}, error) {
	for _, operand := range a.operands {
		val, err := evaluateBool(operand, b, row)
		if err != nil {
			return nil, err
		}
		if !val {
			return false, nil
		}
	}
	return true, nil
}

// ToString produces a string representation of this Expression
func (a *andExpr) ToString() string {
	return joinOperands(a.operands, "&&")
}

// orExpr is an Expression which is true iff any of its operands is true
type orExpr struct {
	operands []dataset.Expression
}

// Or produces an Expression which is true iff any of the given Expressions is true
func Or(operands ...dataset.Expression) dataset.Expression {
	return &orExpr{operands: operands}
}

// Fields returns the names of all columns referenced by this Expression
func (o *orExpr) Fields() []string {
	return mergeFields(o.operands...)
}

// Bind resolves every operand against a Schema
func (o *orExpr) Bind(schema dataset.Schema) (dataset.Expression, error) {
	bound, err := bindAll(o.operands, schema)
	if err != nil {
		return nil, err
	}
	return &orExpr{operands: bound}, nil
}

// Bound returns true iff every column reference in this Expression has been resolved
func (o *orExpr) Bound() bool {
	return allBound(o.operands)
}

// Evaluate produces the value of this Expression for the given Batch row, short-circuiting on the first true operand
func (o *orExpr) Evaluate(b dataset.Batch, row int) (interface{}, error) {
	for _, operand := range o.operands {
		val, err := evaluateBool(operand, b, row)
		if err != nil {
			return nil, err
		}
		if val {
			return true, nil
		}
	}
	return false, nil
}

// ToString produces a string representation of this Expression
func (o *orExpr) ToString() string {
	return joinOperands(o.operands, "||")
}

// notExpr is an Expression which negates its operand
type notExpr struct {
	operand dataset.Expression
}

// Not produces an Expression which is true iff the given Expression is false
func Not(operand dataset.Expression) dataset.Expression {
	return &notExpr{operand: operand}
}

// Fields returns the names of all columns referenced by this Expression
func (n *notExpr) Fields() []string {
	return n.operand.Fields()
}

// Bind resolves the operand against a Schema
func (n *notExpr) Bind(schema dataset.Schema) (dataset.Expression, error) {
	bound, err := n.operand.Bind(schema)
	if err != nil {
		return nil, err
	}
	return &notExpr{operand: bound}, nil
}

// Bound returns true iff every column reference in this Expression has been resolved
func (n *notExpr) Bound() bool {
	return n.operand.Bound()
}

// Evaluate produces the value of this Expression for the given Batch row
func (n *notExpr) Evaluate(b dataset.Batch, row int) (interface{}, error) {
	val, err := evaluateBool(n.operand, b, row)
	if err != nil {
		return nil, err
	}
	return !val, nil
}

// ToString produces a string representation of this Expression
func (n *notExpr) ToString() string {
	return fmt.Sprintf("(!%s)", n.operand.ToString())
}

const (
	kindInt64   = "int64"
	kindFloat64 = "float64"
	kindString  = "string"
	kindBool    = "bool"
	kindBytes   = "bytes"
)

// staticKind determines the kind of value an Expression produces, where
// that is knowable without evaluating it. Returns "" when unknown.
func staticKind(e dataset.Expression) string {
	switch t := e.(type) {
	case *literal:
		return kindOfValue(t.value)
	case *columnRef:
		if t.colType == nil {
			return ""
		}
		return kindOfType(t.colType)
	case *comparison, *andExpr, *orExpr, *notExpr:
		return kindBool
	default:
		return ""
	}
}

func kindOfValue(v interface{}) string {
	switch v.(type) {
	case int64:
		return kindInt64
	case float64:
		return kindFloat64
	case string:
		return kindString
	case bool:
		return kindBool
	case []byte:
		return kindBytes
	default:
		return ""
	}
}

func kindOfType(colType dataset.ColumnType) string {
	switch colType.(type) {
	case *dataset.Int64ColumnType:
		return kindInt64
	case *dataset.Float64ColumnType:
		return kindFloat64
	case *dataset.VarStringColumnType:
		return kindString
	case *dataset.BoolColumnType:
		return kindBool
	case *dataset.VarBytesColumnType:
		return kindBytes
	default:
		return ""
	}
}

// compare applies a comparison operator to two evaluated operand values
func compare(op compareOp, left interface{}, right interface{}) (bool, error) {
	switch l := left.(type) {
	case int64:
		r, ok := right.(int64)
		if !ok {
			return false, errors.TypeMismatchError{Left: kindOfValue(left), Right: kindOfValue(right)}
		}
		return compareOrdered(op, l < r, l == r)
	case float64:
		r, ok := right.(float64)
		if !ok {
			return false, errors.TypeMismatchError{Left: kindOfValue(left), Right: kindOfValue(right)}
		}
		return compareOrdered(op, l < r, l == r)
	case string:
		r, ok := right.(string)
		if !ok {
			return false, errors.TypeMismatchError{Left: kindOfValue(left), Right: kindOfValue(right)}
		}
		return compareOrdered(op, l < r, l == r)
	case bool:
		r, ok := right.(bool)
		if !ok || (op != opEq && op != opNeq) {
			return false, errors.TypeMismatchError{Left: kindOfValue(left), Right: kindOfValue(right)}
		}
		if op == opEq {
			return l == r, nil
		}
		return l != r, nil
	default:
		return false, errors.TypeMismatchError{Left: kindOfValue(left), Right: kindOfValue(right)}
	}
}

func compareOrdered(op compareOp, less bool, equal bool) (bool, error) {
	switch op {
	case opEq:
		return equal, nil
	case opNeq:
		return !equal, nil
	case opLt:
		return less, nil
	case opLte:
		return less || equal, nil
	case opGt:
		return !less && !equal, nil
	default:
		return !less, nil
	}
}

// evaluateBool evaluates an operand which must produce a boolean value
func evaluateBool(e dataset.Expression, b dataset.Batch, row int) (bool, error) {
	val, err := e.Evaluate(b, row)
	if err != nil {
		return false, err
	}
	boolVal, ok := val.(bool)
	if !ok {
		return false, errors.NotBooleanError{Value: fmt.Sprintf("%v", val)}
	}
	return boolVal, nil
}

// mergeFields deduplicates the referenced columns of several Expressions, preserving first-reference order
func mergeFields(exprs ...dataset.Expression) []string {
	var fields []string
	seen := make(map[string]bool)
	for _, e := range exprs {
		for _, name := range e.Fields() {
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}
	return fields
}

func bindAll(exprs []dataset.Expression, schema dataset.Schema) ([]dataset.Expression, error) {
	bound := make([]dataset.Expression, len(exprs))
	for i, e := range exprs {
		b, err := e.Bind(schema)
		if err != nil {
			return nil, err
		}
		bound[i] = b
	}
	return bound, nil
}

func allBound(exprs []dataset.Expression) bool {
	for _, e := range exprs {
		if !e.Bound() {
			return false
		}
	}
	return true
}

func joinOperands(operands []dataset.Expression, op string) string {
	parts := make([]string, len(operands))
	for i, operand := range operands {
		parts[i] = operand.ToString()
	}
	return "(" + strings.Join(parts, " "+op+" ") + ")"
}
