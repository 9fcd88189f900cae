package profile

import (
	"sort"

	"github.com/Dteebaba/Survey-Agent/dataset"
)

// ============================================================================
// PROFILE — Per-column metadata for a loaded dataset
// ============================================================================
// Classification pipeline per column:
//   1. Cell kinds → base type (date, numeric, string)
//   2. Cardinality → string role (identifier, free-text, categorical)
//   3. Bounded distinct samples for the planner prompt
//
// A Profile is built once per dataset and is immutable afterward. The plan
// validator checks column references and literal types against it; the
// translator uses it to build prompts. It never reaches the AI as raw data —
// only names, types, and sample values.
// ============================================================================

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeDate        ColumnType = "date"
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeIdentifier  ColumnType = "identifier"
	TypeFreeText    ColumnType = "free_text"
)

// ColumnProfile describes one column.
type ColumnProfile struct {
	Name          string     `json:"name"`
	Type          ColumnType `json:"type"`
	Samples       []string   `json:"samples"`
	NullCount     int        `json:"nullCount"`
	DistinctCount int        `json:"distinctCount"`
}

// Profile summarizes a whole dataset.
type Profile struct {
	RowCount    int             `json:"rowCount"`
	ColumnCount int             `json:"columnCount"`
	Columns     []ColumnProfile `json:"columns"`

	index map[string]int
}

// Options controls profile construction.
type Options struct {
	SampleSize int // max distinct sample values per column (0 = default 10)
}

// Build derives a Profile from a dataset.
func Build(ds *dataset.Dataset, opts ...Options) *Profile {
	opt := Options{SampleSize: 10}
	if len(opts) > 0 && opts[0].SampleSize > 0 {
		opt = opts[0]
	}

	names := ds.ColumnNames()
	p := &Profile{
		RowCount:    ds.RowCount(),
		ColumnCount: len(names),
		Columns:     make([]ColumnProfile, 0, len(names)),
		index:       make(map[string]int, len(names)),
	}

	for _, name := range names {
		col, _ := ds.Column(name)
		p.index[name] = len(p.Columns)
		p.Columns = append(p.Columns, analyzeColumn(col, opt.SampleSize))
	}
	return p
}

// Column returns the profile for the named column.
func (p *Profile) Column(name string) (ColumnProfile, bool) {
	i, ok := p.index[name]
	if !ok {
		return ColumnProfile{}, false
	}
	return p.Columns[i], true
}

// ColumnNames returns the profiled column names in dataset order.
func (p *Profile) ColumnNames() []string {
	names := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		names[i] = c.Name
	}
	return names
}

// WithColumn returns a copy of the profile extended by one column.
// Used when a plan derives a normalized column before filtering.
func (p *Profile) WithColumn(cp ColumnProfile) *Profile {
	out := &Profile{
		RowCount:    p.RowCount,
		ColumnCount: p.ColumnCount + 1,
		Columns:     make([]ColumnProfile, 0, len(p.Columns)+1),
		index:       make(map[string]int, len(p.Columns)+1),
	}
	for _, c := range p.Columns {
		out.index[c.Name] = len(out.Columns)
		out.Columns = append(out.Columns, c)
	}
	out.index[cp.Name] = len(out.Columns)
	out.Columns = append(out.Columns, cp)
	return out
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

func analyzeColumn(col dataset.Column, sampleSize int) ColumnProfile {
	cp := ColumnProfile{Name: col.Name}

	total := len(col.Values)
	counts := map[dataset.Kind]int{}
	distinct := make(map[string]bool)

	for _, v := range col.Values {
		counts[v.Kind]++
		if v.IsNull() {
			cp.NullCount++
			continue
		}
		distinct[v.Display()] = true
	}
	cp.DistinctCount = len(distinct)

	nonNull := total - cp.NullCount
	cp.Type = classify(counts, nonNull, cp.DistinctCount)
	cp.Samples = collectSamples(distinct, sampleSize)
	return cp
}

// classify maps cell kinds and cardinality to a semantic type.
// Thresholds follow the loader's 80% coercion rule: a column coerced to
// date/number is typed that way even with stray string cells.
func classify(counts map[dataset.Kind]int, nonNull, distinct int) ColumnType {
	if nonNull == 0 {
		return TypeCategorical
	}
	if counts[dataset.KindDate] > 0 && counts[dataset.KindDate] >= counts[dataset.KindString] {
		return TypeDate
	}
	if counts[dataset.KindNumber] > 0 && counts[dataset.KindNumber] >= counts[dataset.KindString] {
		return TypeNumeric
	}

	// String column: cardinality decides the role.
	if distinct == nonNull && nonNull > 10 {
		return TypeIdentifier
	}
	if distinct > nonNull/2 && distinct > 50 {
		return TypeFreeText
	}
	return TypeCategorical
}

// collectSamples picks up to max representative values, sorted for
// deterministic output.
func collectSamples(distinct map[string]bool, max int) []string {
	samples := make([]string, 0, len(distinct))
	for v := range distinct {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if len(samples) > max {
		samples = samples[:max]
	}
	return samples
}
