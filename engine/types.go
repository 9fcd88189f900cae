package engine

import "github.com/Dteebaba/Survey-Agent/dataset"

// ============================================================================
// ENGINE TYPES — Execution output
// ============================================================================

// Sheet is one named output table.
type Sheet struct {
	Name string
	Data *dataset.Dataset
}

// Warning is informational, not an error. Zero matching rows is a valid
// result; the warning lets the UI say so explicitly.
type Warning struct {
	Sheet   string
	Message string
}

// ExecutionResult maps output-sheet names to derived datasets. Sheets keep
// plan declaration order so exports are deterministic. The result is owned
// solely by the caller; the engine retains nothing between invocations.
type ExecutionResult struct {
	Sheets   []Sheet
	Warnings []Warning
}

// Sheet returns the named output table.
func (r *ExecutionResult) Sheet(name string) (*dataset.Dataset, bool) {
	for _, s := range r.Sheets {
		if s.Name == name {
			return s.Data, true
		}
	}
	return nil, false
}

// SheetNames returns output names in declaration order.
func (r *ExecutionResult) SheetNames() []string {
	names := make([]string, len(r.Sheets))
	for i, s := range r.Sheets {
		names[i] = s.Name
	}
	return names
}

// TotalRows sums row counts across all sheets.
func (r *ExecutionResult) TotalRows() int {
	total := 0
	for _, s := range r.Sheets {
		total += s.Data.RowCount()
	}
	return total
}
