package engine

import (
	"fmt"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/plan"
)

// ============================================================================
// EXECUTOR — ValidatedPlan × Dataset → ExecutionResult
// ============================================================================
// Execution is deterministic and purely local: no I/O, no model calls, and
// the source dataset is never mutated. Each compiled group yields exactly
// one sheet; a group that matches nothing still yields a sheet with the
// declared columns and zero rows, plus a warning.
// ============================================================================

// Execute runs a validated plan against a dataset.
func Execute(vp *plan.ValidatedPlan, ds *dataset.Dataset) (*ExecutionResult, error) {
	working := ds
	for _, n := range vp.Normalize {
		var err error
		working, err = dataset.NormalizeColumn(working, n.Column, n.As, n.Patterns, n.Fallback)
		if err != nil {
			return nil, fmt.Errorf("normalize %q: %w", n.Column, err)
		}
	}

	result := &ExecutionResult{}
	for _, g := range vp.Groups {
		sheet, err := executeGroup(&g, working)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", g.Name, err)
		}
		if sheet.Data.RowCount() == 0 {
			result.Warnings = append(result.Warnings, Warning{
				Sheet:   g.Name,
				Message: "no rows matched the filters",
			})
		}
		result.Sheets = append(result.Sheets, sheet)
	}
	return result, nil
}

func executeGroup(g *plan.CompiledGroup, ds *dataset.Dataset) (Sheet, error) {
	rows := filterRows(ds, g.Predicates)

	var out *dataset.Dataset
	var err error
	if g.GroupBy != "" {
		out, err = executeGrouped(g, ds, rows)
	} else if g.Sort == nil {
		out, err = ds.Select(limitRows(rows, g.Limit), g.Columns)
	} else {
		out, err = ds.Select(rows, g.Columns)
	}
	if err != nil {
		return Sheet{}, err
	}

	// The limit applies to the sorted order, so sorting comes first.
	if g.Sort != nil {
		out, err = sortSheet(out, g.Sort)
		if err != nil {
			return Sheet{}, err
		}
		out, err = head(out, g.Limit)
		if err != nil {
			return Sheet{}, err
		}
	}
	return Sheet{Name: g.Name, Data: out}, nil
}

// executeGrouped builds one row per distinct group key, in the order keys
// first appear in the filtered rows.
func executeGrouped(g *plan.CompiledGroup, ds *dataset.Dataset, rows []int) (*dataset.Dataset, error) {
	buckets := groupRows(ds, rows, g.GroupBy)

	cols := make([]dataset.Column, 0, 1+len(g.Aggregates))
	cols = append(cols, dataset.Column{Name: g.GroupBy, Values: make([]dataset.Value, 0, len(buckets))})
	for _, a := range g.Aggregates {
		cols = append(cols, dataset.Column{Name: a.As, Values: make([]dataset.Value, 0, len(buckets))})
	}

	for _, b := range buckets {
		cols[0].Values = append(cols[0].Values, b.key)
		for i, a := range g.Aggregates {
			cols[i+1].Values = append(cols[i+1].Values, aggregate(ds, b.rows, a))
		}
	}

	out, err := dataset.New(cols...)
	if err != nil {
		return nil, err
	}
	if g.Sort == nil {
		return head(out, g.Limit)
	}
	return out, nil
}

// head keeps the first limit rows; zero means no cap.
func head(ds *dataset.Dataset, limit int) (*dataset.Dataset, error) {
	if limit <= 0 || ds.RowCount() <= limit {
		return ds, nil
	}
	idx := make([]int, limit)
	for i := range idx {
		idx[i] = i
	}
	return ds.Select(idx, ds.ColumnNames())
}
