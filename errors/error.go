package errors

import (
	"fmt"
)

// InvalidError occurs when caller-supplied scan configuration is structurally wrong
type InvalidError struct{ Msg string }

// Error returns a textual representation of this InvalidError
func (e InvalidError) Error() string {
	return fmt.Sprintf("Invalid: %s", e.Msg)
}

// FieldResolutionError occurs when a column name does not resolve against a Schema
type FieldResolutionError struct{ Name string }

// Error returns a textual representation of this FieldResolutionError
func (e FieldResolutionError) Error() string {
	return fmt.Sprintf("Column %s does not resolve against the schema", e.Name)
}

// TypeMismatchError occurs when an expression compares operands with incompatible types
type TypeMismatchError struct{ Left, Right string }

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Cannot compare %s with %s", e.Left, e.Right)
}

// UnboundExpressionError occurs when an expression is evaluated before being bound against a Schema
type UnboundExpressionError struct{}

// Error returns a textual representation of this UnboundExpressionError
func (e UnboundExpressionError) Error() string {
	return "Expression is not bound against a schema"
}

// NotBooleanError occurs when a filter expression does not evaluate to a boolean value
type NotBooleanError struct{ Value string }

// Error returns a textual representation of this NotBooleanError
func (e NotBooleanError) Error() string {
	return fmt.Sprintf("Filter expression evaluated to non-boolean value %s", e.Value)
}

// IncompatibleBatchError occurs when a Batch's schema does not conform to a Table's schema
type IncompatibleBatchError struct {
	Position int
	Reason   error
}

// Error returns a textual representation of this IncompatibleBatchError
func (e IncompatibleBatchError) Error() string {
	return fmt.Sprintf("Batch %d does not conform to the table schema: %v", e.Position, e.Reason)
}

// ChecksumMismatchError occurs when a compressed batch payload fails checksum verification
type ChecksumMismatchError struct{ Position int }

// Error returns a textual representation of this ChecksumMismatchError
func (e ChecksumMismatchError) Error() string {
	return fmt.Sprintf("Compressed batch %d failed checksum verification", e.Position)
}

// NoMoreFragmentsError occurs when there are no more Fragments in a FragmentIterator
type NoMoreFragmentsError struct{}

// Error returns a textual representation of this NoMoreFragmentsError
func (e NoMoreFragmentsError) Error() string {
	return "No more fragments"
}

// NoMoreScanTasksError occurs when there are no more ScanTasks in a ScanTaskIterator
type NoMoreScanTasksError struct{}

// Error returns a textual representation of this NoMoreScanTasksError
func (e NoMoreScanTasksError) Error() string {
	return "No more scan tasks"
}

// NoMoreBatchesError occurs when there are no more Batches in a BatchIterator
type NoMoreBatchesError struct{}

// Error returns a textual representation of this NoMoreBatchesError
func (e NoMoreBatchesError) Error() string {
	return "No more batches"
}
