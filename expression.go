package dataset

// Expression is a predicate tree over column references and literal
// values. An Expression must be bound against a Schema before it can be
// evaluated; binding validates that every referenced column resolves to
// exactly one column of that Schema and fixes the resolved column types.
// A bound Expression carries its own resolution and never re-resolves,
// so it remains evaluable against Batches whose schema is a superset of
// the columns it references, independent of any projection applied to
// the scan's output schema.
type Expression interface {
	Fields() []string                                  // names of all referenced columns, deduplicated, in first-reference order
	Bind(schema Schema) (bound Expression, err error)  // resolve column references against schema; the receiver is left untouched
	Bound() bool                                       // true iff every column reference in this tree has been resolved
	Evaluate(b Batch, row int) (value interface{}, err error)
	ToString() string
}
