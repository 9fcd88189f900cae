package engine

import (
	"strings"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// FILTERS — Row-wise predicate evaluation
// ============================================================================
// Single pass: a row survives if it matches ALL predicates (AND-combined;
// there is no OR). Returns row indices into the source dataset — no data
// copy until projection.
//
// Null policy: a null cell satisfies no predicate except is_null. Cells that
// failed type coercion at load (stray strings in a date or numeric column)
// behave the same way under typed operators.
// ============================================================================

// filterRows returns the indices of rows matching every predicate, in
// source order.
func filterRows(ds *dataset.Dataset, preds []plan.Predicate) []int {
	n := ds.RowCount()
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for _, p := range preds {
			if !matches(p, ds.Value(i, p.Column)) {
				pass = false
				break
			}
		}
		if pass {
			rows = append(rows, i)
		}
	}
	return rows
}

// matches evaluates one compiled predicate against one cell.
func matches(p plan.Predicate, v dataset.Value) bool {
	if p.Op == plan.OpIsNull {
		return v.IsNull()
	}
	if v.IsNull() {
		return false
	}

	switch p.Op {
	case plan.OpEquals:
		return matchEquals(p, v)
	case plan.OpRange:
		return matchRange(p, v)
	case plan.OpIn:
		return matchIn(p, v)
	case plan.OpContains:
		return strings.Contains(strings.ToLower(v.Display()), p.Str)
	default:
		return false
	}
}

func matchEquals(p plan.Predicate, v dataset.Value) bool {
	switch p.ColType {
	case profile.TypeDate:
		return v.Kind == dataset.KindDate && v.Date.Equal(p.Date)
	case profile.TypeNumeric:
		return v.Kind == dataset.KindNumber && v.Num == p.Num
	default:
		return strings.EqualFold(v.Display(), p.Str)
	}
}

func matchRange(p plan.Predicate, v dataset.Value) bool {
	switch p.ColType {
	case profile.TypeDate:
		if v.Kind != dataset.KindDate {
			return false
		}
		if p.HasMin && v.Date.Before(p.DateMin) {
			return false
		}
		if p.HasMax && v.Date.After(p.DateMax) {
			return false
		}
		return true
	case profile.TypeNumeric:
		if v.Kind != dataset.KindNumber {
			return false
		}
		if p.HasMin && v.Num < p.NumMin {
			return false
		}
		if p.HasMax && v.Num > p.NumMax {
			return false
		}
		return true
	}
	return false
}

func matchIn(p plan.Predicate, v dataset.Value) bool {
	if p.NumSet != nil {
		return v.Kind == dataset.KindNumber && p.NumSet[v.Num]
	}
	return p.StrSet[strings.ToLower(v.Display())]
}
