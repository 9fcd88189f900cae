package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// ============================================================================
// DATASET — In-memory columnar table
// ============================================================================
// A Dataset is an ordered collection of named columns, each an ordered
// sequence of scalar values. Every column has the same length.
//
// The engine treats a Dataset as read-only: plan execution produces a new
// derived Dataset, never an in-place mutation.
// ============================================================================

// Kind discriminates the scalar types a cell can hold.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
)

// Value is a single tagged scalar cell.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Date time.Time
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// String wraps a string cell.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number wraps a numeric cell.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// Date wraps a date cell, truncated to calendar day.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{Kind: KindDate, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// IsNull reports whether the cell is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Display renders the cell for filtering, UI, and export.
// Null renders as the empty string.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Column is a named, ordered sequence of values.
type Column struct {
	Name   string
	Values []Value
}

// Dataset is an ordered set of equal-length columns.
type Dataset struct {
	cols  []Column
	index map[string]int
}

// New builds a Dataset from columns, enforcing equal lengths and unique names.
func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{index: make(map[string]int, len(cols))}
	rows := -1
	for _, c := range cols {
		if _, dup := ds.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", c.Name)
		}
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name, len(c.Values), rows)
		}
		ds.index[c.Name] = len(ds.cols)
		ds.cols = append(ds.cols, c)
	}
	return ds, nil
}

// RowCount returns the number of rows (0 for an empty dataset).
func (d *Dataset) RowCount() int {
	if len(d.cols) == 0 {
		return 0
	}
	return len(d.cols[0].Values)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.cols) }

// ColumnNames returns column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i, c := range d.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.cols[i], true
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Value returns the cell at (row, column name). Missing column or
// out-of-range row yields null.
func (d *Dataset) Value(row int, name string) Value {
	i, ok := d.index[name]
	if !ok {
		return Null()
	}
	if row < 0 || row >= len(d.cols[i].Values) {
		return Null()
	}
	return d.cols[i].Values[row]
}

// Select builds a new Dataset containing the given rows (in order) projected
// onto the given columns (in declared order). The source is not modified.
// Unknown columns are an error; callers validate names up front.
func (d *Dataset) Select(rows []int, names []string) (*Dataset, error) {
	out := make([]Column, 0, len(names))
	for _, name := range names {
		i, ok := d.index[name]
		if !ok {
			return nil, fmt.Errorf("select: unknown column %q", name)
		}
		src := d.cols[i].Values
		vals := make([]Value, 0, len(rows))
		for _, r := range rows {
			if r < 0 || r >= len(src) {
				vals = append(vals, Null())
				continue
			}
			vals = append(vals, src[r])
		}
		out = append(out, Column{Name: name, Values: vals})
	}
	return New(out...)
}

// WithColumn returns a new Dataset sharing this dataset's columns plus one
// derived column appended. The receiver is not modified.
func (d *Dataset) WithColumn(col Column) (*Dataset, error) {
	if len(d.cols) > 0 && len(col.Values) != d.RowCount() {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), d.RowCount())
	}
	cols := make([]Column, 0, len(d.cols)+1)
	cols = append(cols, d.cols...)
	cols = append(cols, col)
	return New(cols...)
}
