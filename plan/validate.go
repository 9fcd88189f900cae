package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// ============================================================================
// VALIDATOR — Plan × Profile → ValidatedPlan
// ============================================================================
// Validation is mandatory and total: every column reference, operator/type
// pairing, and literal is checked before any row is processed, and literals
// are parsed exactly once here. The executor only ever sees the compiled
// form, so execution cannot fail on data content.
//
// Validate is a pure function over its inputs.
// ============================================================================

// DefaultSheetName names the default output when the plan declares none.
const DefaultSheetName = "Filtered"

// ValidatedPlan is the compiled, immutable form of a Plan.
type ValidatedPlan struct {
	Normalize   []CompiledNormalize
	Groups      []CompiledGroup
	Explanation string
}

// CompiledNormalize is a checked normalization step with presets resolved.
type CompiledNormalize struct {
	Column   string
	As       string
	Patterns map[string][]string
	Fallback string
}

// CompiledGroup is one output sheet with parsed predicates.
type CompiledGroup struct {
	Name       string
	Predicates []Predicate
	Columns    []string // output columns in declared order (non-grouped)
	GroupBy    string
	Aggregates []CompiledAggregate
	Sort       *Sort
	Limit      int
}

// CompiledAggregate carries the resolved output name and column type.
type CompiledAggregate struct {
	Column  string
	Func    AggFunc
	As      string
	ColType profile.ColumnType
}

// Predicate is a compiled filter with literals parsed to the column's type.
type Predicate struct {
	Column  string
	Op      Op
	ColType profile.ColumnType

	Str    string          // equals/contains on string columns, lowercased
	StrSet map[string]bool // in on string columns, lowercased

	Num    float64
	NumSet map[float64]bool
	HasMin bool
	HasMax bool
	NumMin float64
	NumMax float64

	Date    time.Time
	DateMin time.Time
	DateMax time.Time
}

// Validate checks every reference and literal in the plan against the
// profile. The returned ValidatedPlan is the only form the engine accepts.
func Validate(p *Plan, prof *profile.Profile) (*ValidatedPlan, error) {
	vp := &ValidatedPlan{Explanation: p.Explanation}

	// Normalization steps extend the visible column set before anything
	// else is checked, so filters and outputs may reference derived columns.
	for _, n := range p.Normalize {
		cn, extended, err := compileNormalize(n, prof)
		if err != nil {
			return nil, err
		}
		vp.Normalize = append(vp.Normalize, cn)
		prof = extended
	}

	sheetName := strings.TrimSpace(p.SheetName)
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	// The top-level filters/columns are the main sheet; declared groups add
	// further sheets.
	main := Group{Name: sheetName, Filters: p.Filters, Columns: p.Columns, Limit: p.Limit}
	groups := append([]Group{main}, p.Groups...)

	seen := make(map[string]bool, len(groups))
	for i, g := range groups {
		cg, err := compileGroup(g, prof)
		if err != nil {
			return nil, err
		}
		if cg.Name == "" {
			cg.Name = fmt.Sprintf("Sheet_%d", i+1)
		}
		for base, n := cg.Name, 2; seen[cg.Name]; n++ {
			cg.Name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[cg.Name] = true
		vp.Groups = append(vp.Groups, cg)
	}
	return vp, nil
}

// ============================================================================
// NORMALIZATION COMPILATION
// ============================================================================

func compileNormalize(n Normalize, prof *profile.Profile) (CompiledNormalize, *profile.Profile, error) {
	if _, ok := prof.Column(n.Column); !ok {
		return CompiledNormalize{}, nil, &UnknownColumnError{Column: n.Column}
	}

	var base map[string][]string
	switch n.Preset {
	case "":
		base = map[string][]string{}
	case "set_aside":
		base = dataset.SetAsidePatterns()
	case "opportunity_type":
		base = dataset.OpportunityTypePatterns()
	default:
		return CompiledNormalize{}, nil, fmt.Errorf("unknown normalization preset %q", n.Preset)
	}

	cn := CompiledNormalize{
		Column:   n.Column,
		As:       strings.TrimSpace(n.As),
		Patterns: dataset.MergePatterns(base, n.Patterns),
		Fallback: n.Fallback,
	}
	if cn.As == "" {
		cn.As = "Normalized_" + n.Column
	}
	if _, exists := prof.Column(cn.As); exists {
		return CompiledNormalize{}, nil, &DuplicateColumnError{Column: cn.As}
	}
	if len(cn.Patterns) == 0 {
		return CompiledNormalize{}, nil, fmt.Errorf("normalization of column %q has no patterns", n.Column)
	}

	extended := prof.WithColumn(profile.ColumnProfile{
		Name: cn.As,
		Type: profile.TypeCategorical,
	})
	return cn, extended, nil
}

// ============================================================================
// GROUP COMPILATION
// ============================================================================

func compileGroup(g Group, prof *profile.Profile) (CompiledGroup, error) {
	cg := CompiledGroup{Name: strings.TrimSpace(g.Name), Limit: g.Limit}
	if cg.Limit < 0 {
		cg.Limit = 0
	}

	for _, f := range g.Filters {
		pred, err := compileFilter(f, prof)
		if err != nil {
			return CompiledGroup{}, err
		}
		cg.Predicates = append(cg.Predicates, pred)
	}

	if g.GroupBy != "" {
		return compileGrouped(cg, g, prof)
	}

	// Non-grouped: declared columns, or every column when none declared.
	cols := g.Columns
	if len(cols) == 0 {
		cols = prof.ColumnNames()
	}
	declared := make(map[string]bool, len(cols))
	for _, name := range cols {
		if _, ok := prof.Column(name); !ok {
			return CompiledGroup{}, &UnknownColumnError{Column: name}
		}
		if declared[name] {
			return CompiledGroup{}, &DuplicateColumnError{Column: name}
		}
		declared[name] = true
	}
	cg.Columns = cols

	if g.Sort != nil {
		if !contains(cg.Columns, g.Sort.Column) {
			return CompiledGroup{}, &UnknownColumnError{Column: g.Sort.Column}
		}
		s := *g.Sort
		cg.Sort = &s
	}
	return cg, nil
}

// compileGrouped resolves aggregates. Grouped output columns are the group
// key followed by one column per aggregate; a declared column list is not
// consulted.
func compileGrouped(cg CompiledGroup, g Group, prof *profile.Profile) (CompiledGroup, error) {
	if _, ok := prof.Column(g.GroupBy); !ok {
		return CompiledGroup{}, &UnknownColumnError{Column: g.GroupBy}
	}
	cg.GroupBy = g.GroupBy

	aggs := g.Aggregates
	if len(aggs) == 0 {
		aggs = []Aggregate{{Func: AggCount, As: "count"}}
	}

	// Grouped output columns must be unique: the key plus each aggregate's
	// output name.
	cg.Columns = []string{g.GroupBy}
	declared := map[string]bool{g.GroupBy: true}
	for _, a := range aggs {
		ca, err := compileAggregate(a, prof)
		if err != nil {
			return CompiledGroup{}, err
		}
		if declared[ca.As] {
			return CompiledGroup{}, &DuplicateColumnError{Column: ca.As}
		}
		declared[ca.As] = true
		cg.Aggregates = append(cg.Aggregates, ca)
		cg.Columns = append(cg.Columns, ca.As)
	}

	if g.Sort != nil {
		if !contains(cg.Columns, g.Sort.Column) {
			return CompiledGroup{}, &UnknownColumnError{Column: g.Sort.Column}
		}
		s := *g.Sort
		cg.Sort = &s
	}
	return cg, nil
}

func compileAggregate(a Aggregate, prof *profile.Profile) (CompiledAggregate, error) {
	ca := CompiledAggregate{Column: a.Column, Func: a.Func, As: strings.TrimSpace(a.As)}

	// count with no column counts rows in the group.
	if a.Func == AggCount && a.Column == "" {
		if ca.As == "" {
			ca.As = "count"
		}
		return ca, nil
	}

	cp, ok := prof.Column(a.Column)
	if !ok {
		return CompiledAggregate{}, &UnknownColumnError{Column: a.Column}
	}
	ca.ColType = cp.Type

	switch a.Func {
	case AggCount:
		// any column
	case AggSum, AggMean:
		if cp.Type != profile.TypeNumeric {
			return CompiledAggregate{}, &TypeMismatchError{Column: a.Column, Op: string(a.Func), Type: cp.Type}
		}
	case AggMin, AggMax:
		if cp.Type != profile.TypeNumeric && cp.Type != profile.TypeDate {
			return CompiledAggregate{}, &TypeMismatchError{Column: a.Column, Op: string(a.Func), Type: cp.Type}
		}
	default:
		return CompiledAggregate{}, &UnsupportedAggregateError{Func: string(a.Func)}
	}

	if ca.As == "" {
		ca.As = fmt.Sprintf("%s_%s", a.Func, a.Column)
	}
	return ca, nil
}

// ============================================================================
// FILTER COMPILATION
// ============================================================================

func compileFilter(f Filter, prof *profile.Profile) (Predicate, error) {
	cp, ok := prof.Column(f.Column)
	if !ok {
		return Predicate{}, &UnknownColumnError{Column: f.Column}
	}

	pred := Predicate{Column: f.Column, Op: f.Op, ColType: cp.Type}

	switch f.Op {
	case OpIsNull:
		return pred, nil

	case OpEquals:
		return compileEquals(pred, f, cp)

	case OpRange:
		return compileRange(pred, f, cp)

	case OpIn:
		return compileIn(pred, f, cp)

	case OpContains:
		if cp.Type == profile.TypeNumeric || cp.Type == profile.TypeDate {
			return Predicate{}, &TypeMismatchError{Column: f.Column, Op: string(f.Op), Type: cp.Type}
		}
		if strings.TrimSpace(f.Value) == "" {
			return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Value, Type: cp.Type}
		}
		pred.Str = strings.ToLower(f.Value)
		return pred, nil

	default:
		// Unrecognized operators are compatible with no column type.
		return Predicate{}, &TypeMismatchError{Column: f.Column, Op: string(f.Op), Type: cp.Type}
	}
}

func compileEquals(pred Predicate, f Filter, cp profile.ColumnProfile) (Predicate, error) {
	switch cp.Type {
	case profile.TypeDate:
		t, ok := dataset.ParseDate(f.Value)
		if !ok {
			return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Value, Type: cp.Type}
		}
		pred.Date = day(t)
	case profile.TypeNumeric:
		n, ok := dataset.ParseNumber(f.Value)
		if !ok {
			return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Value, Type: cp.Type}
		}
		pred.Num = n
	default:
		pred.Str = strings.ToLower(f.Value)
	}
	return pred, nil
}

func compileRange(pred Predicate, f Filter, cp profile.ColumnProfile) (Predicate, error) {
	if f.Min == "" && f.Max == "" {
		return Predicate{}, &ValueParseError{Column: f.Column, Value: "", Type: cp.Type}
	}

	switch cp.Type {
	case profile.TypeDate:
		if f.Min != "" {
			t, ok := dataset.ParseDate(f.Min)
			if !ok {
				return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Min, Type: cp.Type}
			}
			pred.HasMin = true
			pred.DateMin = day(t)
		}
		if f.Max != "" {
			t, ok := dataset.ParseDate(f.Max)
			if !ok {
				return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Max, Type: cp.Type}
			}
			pred.HasMax = true
			pred.DateMax = day(t)
		}
	case profile.TypeNumeric:
		if f.Min != "" {
			n, ok := dataset.ParseNumber(f.Min)
			if !ok {
				return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Min, Type: cp.Type}
			}
			pred.HasMin = true
			pred.NumMin = n
		}
		if f.Max != "" {
			n, ok := dataset.ParseNumber(f.Max)
			if !ok {
				return Predicate{}, &ValueParseError{Column: f.Column, Value: f.Max, Type: cp.Type}
			}
			pred.HasMax = true
			pred.NumMax = n
		}
	default:
		return Predicate{}, &TypeMismatchError{Column: f.Column, Op: string(f.Op), Type: cp.Type}
	}
	return pred, nil
}

func compileIn(pred Predicate, f Filter, cp profile.ColumnProfile) (Predicate, error) {
	if len(f.Values) == 0 {
		return Predicate{}, &ValueParseError{Column: f.Column, Value: "", Type: cp.Type}
	}

	switch cp.Type {
	case profile.TypeDate:
		return Predicate{}, &TypeMismatchError{Column: f.Column, Op: string(f.Op), Type: cp.Type}
	case profile.TypeNumeric:
		pred.NumSet = make(map[float64]bool, len(f.Values))
		for _, v := range f.Values {
			n, ok := dataset.ParseNumber(v)
			if !ok {
				return Predicate{}, &ValueParseError{Column: f.Column, Value: v, Type: cp.Type}
			}
			pred.NumSet[n] = true
		}
	default:
		pred.StrSet = make(map[string]bool, len(f.Values))
		for _, v := range f.Values {
			pred.StrSet[strings.ToLower(v)] = true
		}
	}
	return pred, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
