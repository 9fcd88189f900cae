package plan

// ============================================================================
// PLAN — Declarative filter/select/aggregate specification
// ============================================================================
// The translator (AI boundary) produces a Plan as JSON; the validator checks
// it against a dataset profile; only a ValidatedPlan reaches the engine.
//
// Operators and aggregates are tagged kinds, never free-form expressions —
// nothing in a plan is dynamically evaluated.
// ============================================================================

// Op is a filter operator kind.
type Op string

const (
	OpEquals   Op = "equals"   // case-insensitive for string columns
	OpRange    Op = "range"    // inclusive bounds; date or numeric columns
	OpIn       Op = "in"       // set membership over enumerated values
	OpContains Op = "contains" // case-insensitive substring
	OpIsNull   Op = "is_null"  // the only operator null cells satisfy
)

// Filter is one predicate. Predicates within a group are AND-combined;
// there is no OR (documented limitation, not a bug).
type Filter struct {
	Column string   `json:"column"`
	Op     Op       `json:"op"`
	Value  string   `json:"value,omitempty"`  // equals, contains
	Values []string `json:"values,omitempty"` // in
	Min    string   `json:"min,omitempty"`    // range, inclusive
	Max    string   `json:"max,omitempty"`    // range, inclusive
}

// AggFunc is an aggregate function kind.
type AggFunc string

const (
	AggCount AggFunc = "count"
	AggSum   AggFunc = "sum"
	AggMean  AggFunc = "mean"
	AggMin   AggFunc = "min"
	AggMax   AggFunc = "max"
)

// Aggregate applies one function to one column per group-key value.
type Aggregate struct {
	Column string  `json:"column"`
	Func   AggFunc `json:"func"`
	As     string  `json:"as,omitempty"` // output column name; default "func_column"
}

// Sort orders a group's output rows by one output column.
type Sort struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending,omitempty"`
}

// Group is a named subset specification producing one output sheet.
type Group struct {
	Name       string      `json:"name"`
	Filters    []Filter    `json:"filters,omitempty"`
	Columns    []string    `json:"columns,omitempty"`
	GroupBy    string      `json:"groupBy,omitempty"`
	Aggregates []Aggregate `json:"aggregates,omitempty"`
	Sort       *Sort       `json:"sort,omitempty"`
	Limit      int         `json:"limit,omitempty"` // 0 = all rows
}

// Normalize derives a bucket column before filtering, so filters and output
// columns can reference it. Patterns merge over built-in fallbacks when the
// preset names one ("set_aside", "opportunity_type").
type Normalize struct {
	Column   string              `json:"column"`
	As       string              `json:"as"`
	Preset   string              `json:"preset,omitempty"`
	Patterns map[string][]string `json:"patterns,omitempty"`
	Fallback string              `json:"fallback,omitempty"`
}

// Plan is the complete specification produced by the external reasoning step.
// Top-level Filters/Columns describe the default output; Groups add further
// named sheets, each with its own filters and columns.
type Plan struct {
	Filters     []Filter    `json:"filters"`
	Columns     []string    `json:"columns"`
	Groups      []Group     `json:"groups,omitempty"`
	Normalize   []Normalize `json:"normalize,omitempty"`
	SheetName   string      `json:"sheetName,omitempty"`
	Limit       int         `json:"limit,omitempty"`
	Explanation string      `json:"explanation,omitempty"`
}
