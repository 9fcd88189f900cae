package engine

import (
	"sort"
	"strings"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// AGGREGATORS — Grouping, aggregation, and sorting
// ============================================================================
// Grouping buckets filtered rows by the group key's display value: one
// output row per distinct key, in first-occurrence order. Aggregates skip
// cells that are null or failed type coercion; count counts non-null cells
// (or rows, when no column is named).
// ============================================================================

type bucket struct {
	key  dataset.Value
	rows []int
}

// groupRows buckets rows by the key column, first-occurrence order.
// All null/unparseable key cells share one bucket keyed by the empty string.
func groupRows(ds *dataset.Dataset, rows []int, key string) []bucket {
	order := make([]string, 0)
	byKey := make(map[string]*bucket)

	for _, r := range rows {
		v := ds.Value(r, key)
		k := v.Display()
		b, ok := byKey[k]
		if !ok {
			b = &bucket{key: v}
			byKey[k] = b
			order = append(order, k)
		}
		b.rows = append(b.rows, r)
	}

	out := make([]bucket, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

// aggregate computes one aggregate over one bucket.
func aggregate(ds *dataset.Dataset, rows []int, agg plan.CompiledAggregate) dataset.Value {
	if agg.Func == plan.AggCount {
		if agg.Column == "" {
			return dataset.Number(float64(len(rows)))
		}
		n := 0
		for _, r := range rows {
			if !ds.Value(r, agg.Column).IsNull() {
				n++
			}
		}
		return dataset.Number(float64(n))
	}

	if agg.ColType == profile.TypeDate {
		return aggregateDate(ds, rows, agg)
	}
	return aggregateNumeric(ds, rows, agg)
}

func aggregateNumeric(ds *dataset.Dataset, rows []int, agg plan.CompiledAggregate) dataset.Value {
	var sum float64
	var min, max float64
	n := 0
	for _, r := range rows {
		v := ds.Value(r, agg.Column)
		if v.Kind != dataset.KindNumber {
			continue
		}
		if n == 0 {
			min, max = v.Num, v.Num
		} else {
			if v.Num < min {
				min = v.Num
			}
			if v.Num > max {
				max = v.Num
			}
		}
		sum += v.Num
		n++
	}
	if n == 0 {
		return dataset.Null()
	}

	switch agg.Func {
	case plan.AggSum:
		return dataset.Number(sum)
	case plan.AggMean:
		return dataset.Number(sum / float64(n))
	case plan.AggMin:
		return dataset.Number(min)
	case plan.AggMax:
		return dataset.Number(max)
	}
	return dataset.Null()
}

func aggregateDate(ds *dataset.Dataset, rows []int, agg plan.CompiledAggregate) dataset.Value {
	var min, max dataset.Value
	for _, r := range rows {
		v := ds.Value(r, agg.Column)
		if v.Kind != dataset.KindDate {
			continue
		}
		if min.IsNull() || v.Date.Before(min.Date) {
			min = v
		}
		if max.IsNull() || v.Date.After(max.Date) {
			max = v
		}
	}
	switch agg.Func {
	case plan.AggMin:
		return min
	case plan.AggMax:
		return max
	}
	return dataset.Null()
}

// ============================================================================
// SORTING
// ============================================================================

// sortSheet stably reorders a derived dataset by one of its columns.
// Nulls sort last regardless of direction.
func sortSheet(ds *dataset.Dataset, s *plan.Sort) (*dataset.Dataset, error) {
	n := ds.RowCount()
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a := ds.Value(rows[i], s.Column)
		b := ds.Value(rows[j], s.Column)
		if a.IsNull() || b.IsNull() {
			return !a.IsNull() && b.IsNull()
		}
		less := valueLess(a, b)
		if s.Descending {
			return valueLess(b, a)
		}
		return less
	})

	return ds.Select(rows, ds.ColumnNames())
}

// valueLess orders numbers numerically, dates chronologically, and
// everything else case-insensitively by display form.
func valueLess(a, b dataset.Value) bool {
	if a.Kind == dataset.KindNumber && b.Kind == dataset.KindNumber {
		return a.Num < b.Num
	}
	if a.Kind == dataset.KindDate && b.Kind == dataset.KindDate {
		return a.Date.Before(b.Date)
	}
	return strings.ToLower(a.Display()) < strings.ToLower(b.Display())
}

// limitRows caps a row-index slice.
func limitRows(rows []int, limit int) []int {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
