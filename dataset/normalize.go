package dataset

import (
	"sort"
	"strings"
)

// ============================================================================
// NORMALIZATION — Derived bucket columns
// ============================================================================
// Federal notice exports spell the same code a dozen ways ("SDVOSB",
// "Service-Disabled Veteran-Owned...", "SDVOSBC"). NormalizeColumn derives a
// new column that maps each cell into a named bucket by case-insensitive
// substring match. AI-supplied patterns are merged over the built-in
// fallbacks, never replacing them.
// ============================================================================

// SetAsidePatterns returns the built-in set-aside bucket patterns.
func SetAsidePatterns() map[string][]string {
	return map[string][]string{
		"SDVOSB": {
			"sdvosb",
			"service-disabled veteran-owned",
			"service disabled veteran owned",
			"service-disabled veteran owned",
		},
		"WOSB": {
			"wosb",
			"women-owned small business",
			"women owned small business",
			"women owned sb",
			"women-owned sb",
		},
		"TOTAL SMALL BUSINESS SET ASIDE": {
			"total small business",
			"100% small business",
			"small business set-aside",
			"small business set aside",
			"total sb",
		},
		"VETERAN OWNED SMALL BUSINESS (VOSB)": {
			"vosb",
			"veteran owned small business",
			"veteran-owned small business",
			"veteran owned sb",
			"veteran-owned sb",
		},
		"EDWOSB": {
			"edwosb",
			"economically disadvantaged women-owned",
			"economically disadvantaged wosb",
		},
		"NO SET-ASIDE": {
			"no set-aside used",
			"no set aside used",
			"none",
			"unrestricted",
		},
	}
}

// OpportunityTypePatterns returns the built-in opportunity-type buckets.
func OpportunityTypePatterns() map[string][]string {
	return map[string][]string{
		"Solicitation": {
			"solicitation",
			"combined synopsis/solicitation",
			"combined synopsis / solicitation",
		},
		"Presolicitation": {
			"presolicitation",
		},
		"Sources Sought": {
			"sources sought",
			"rfi",
			"request for information",
		},
	}
}

// MergePatterns overlays extra patterns onto base. Buckets are added,
// pattern lists are appended. Neither input map is modified.
func MergePatterns(base, extra map[string][]string) map[string][]string {
	merged := make(map[string][]string, len(base)+len(extra))
	for bucket, pats := range base {
		merged[bucket] = append([]string(nil), pats...)
	}
	for bucket, pats := range extra {
		key := strings.TrimSpace(bucket)
		if key == "" || len(pats) == 0 {
			continue
		}
		merged[key] = append(merged[key], pats...)
	}
	return merged
}

// NormalizeColumn derives a bucket column named `as` from `source`.
// Null cells stay null; cells matching no pattern take the fallback bucket
// (or null when fallback is empty). Returns a new Dataset; the receiver's
// columns are shared, not copied, and never modified.
func NormalizeColumn(ds *Dataset, source, as string, patterns map[string][]string, fallback string) (*Dataset, error) {
	col, ok := ds.Column(source)
	if !ok {
		return nil, &UnknownSourceError{Column: source}
	}

	derived := make([]Value, len(col.Values))
	for i, v := range col.Values {
		if v.IsNull() {
			derived[i] = Null()
			continue
		}
		bucket := classify(v.Display(), patterns)
		if bucket == "" {
			bucket = fallback
		}
		if bucket == "" {
			derived[i] = Null()
		} else {
			derived[i] = String(bucket)
		}
	}
	return ds.WithColumn(Column{Name: as, Values: derived})
}

// UnknownSourceError reports a normalization source column that does not exist.
type UnknownSourceError struct {
	Column string
}

func (e *UnknownSourceError) Error() string {
	return "unknown normalization source column \"" + e.Column + "\""
}

// classify checks buckets in sorted name order so ties resolve the same
// way on every run.
func classify(value string, patterns map[string][]string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	buckets := make([]string, 0, len(patterns))
	for b := range patterns {
		buckets = append(buckets, b)
	}
	sort.Strings(buckets)
	for _, bucket := range buckets {
		for _, p := range patterns[bucket] {
			if p != "" && strings.Contains(v, strings.ToLower(p)) {
				return bucket
			}
		}
	}
	return ""
}
