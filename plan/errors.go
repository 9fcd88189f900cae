package plan

import (
	"fmt"

	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// ERROR TAXONOMY — typed validation failures
// ============================================================================
// Every error names the offending column or value so the caller can render
// a specific, actionable message (and the user can correct the request or
// hand-edit the plan). All are detected before any row is processed.
// ============================================================================

// UnknownColumnError: a filter, output list, group key, aggregate, or sort
// references a column the profile does not contain.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// TypeMismatchError: an operator or aggregate is incompatible with the
// column's inferred type (e.g. a range filter on a categorical column).
type TypeMismatchError struct {
	Column string
	Op     string // operator or aggregate name
	Type   profile.ColumnType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %q is not valid for column %q of type %s", e.Op, e.Column, e.Type)
}

// ValueParseError: a literal cannot be parsed to the column's type
// (e.g. a non-ISO date string against a date column).
type ValueParseError struct {
	Column string
	Value  string
	Type   profile.ColumnType
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("value %q cannot be parsed as %s for column %q", e.Value, e.Type, e.Column)
}

// DuplicateColumnError: an output column name is declared twice, or a
// derived column (a normalize "as", an aggregate "as") collides with a
// column that already exists.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate output column %q", e.Column)
}

// UnsupportedAggregateError: an aggregate function the engine does not know.
type UnsupportedAggregateError struct {
	Func string
}

func (e *UnsupportedAggregateError) Error() string {
	return fmt.Sprintf("unsupported aggregate function %q", e.Func)
}
