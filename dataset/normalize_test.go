package dataset

import (
	"errors"
	"testing"
)

// ============================================================================
// NORMALIZATION TESTS
// ============================================================================

func setAsideColumn(t *testing.T, values ...Value) *Dataset {
	t.Helper()
	ds, err := New(Column{Name: "TypeOfSetAside", Values: values})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return ds
}

func TestNormalizeSetAsideBuckets(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"SDVOSB", "SDVOSB"},
		{"Service-Disabled Veteran-Owned Small Business (SDVOSB) Set-Aside", "SDVOSB"},
		{"Women-Owned Small Business (WOSB) Program Set-Aside", "WOSB"},
		{"Total Small Business Set-Aside (FAR 19.5)", "TOTAL SMALL BUSINESS SET ASIDE"},
		{"Veteran-Owned Small Business (VOSB)", "VETERAN OWNED SMALL BUSINESS (VOSB)"},
		{"EDWOSB Set-Aside", "EDWOSB"},
		{"No Set-Aside Used", "NO SET-ASIDE"},
	}

	for _, tt := range tests {
		ds := setAsideColumn(t, String(tt.raw))
		out, err := NormalizeColumn(ds, "TypeOfSetAside", "Bucket", SetAsidePatterns(), "")
		if err != nil {
			t.Fatalf("NormalizeColumn(%q) failed: %v", tt.raw, err)
		}
		if got := out.Value(0, "Bucket").Display(); got != tt.want {
			t.Errorf("bucket for %q = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeFallbackAndNull(t *testing.T) {
	ds := setAsideColumn(t, String("something unrecognizable"), Null())

	out, err := NormalizeColumn(ds, "TypeOfSetAside", "Bucket", SetAsidePatterns(), "Other")
	if err != nil {
		t.Fatalf("NormalizeColumn failed: %v", err)
	}
	if got := out.Value(0, "Bucket").Display(); got != "Other" {
		t.Errorf("unmatched cell = %q, want fallback Other", got)
	}
	if !out.Value(1, "Bucket").IsNull() {
		t.Error("null source cell should stay null")
	}

	// Empty fallback: unmatched cells become null
	out, err = NormalizeColumn(ds, "TypeOfSetAside", "Bucket", SetAsidePatterns(), "")
	if err != nil {
		t.Fatalf("NormalizeColumn failed: %v", err)
	}
	if !out.Value(0, "Bucket").IsNull() {
		t.Error("unmatched cell with empty fallback should be null")
	}
}

func TestNormalizeDoesNotMutateSource(t *testing.T) {
	ds := setAsideColumn(t, String("SDVOSB"))
	out, err := NormalizeColumn(ds, "TypeOfSetAside", "Bucket", SetAsidePatterns(), "")
	if err != nil {
		t.Fatalf("NormalizeColumn failed: %v", err)
	}
	if ds.ColumnCount() != 1 {
		t.Errorf("source grew to %d columns", ds.ColumnCount())
	}
	if out.ColumnCount() != 2 {
		t.Errorf("derived has %d columns, want 2", out.ColumnCount())
	}
}

func TestNormalizeUnknownSource(t *testing.T) {
	ds := setAsideColumn(t, String("SDVOSB"))
	_, err := NormalizeColumn(ds, "Missing", "Bucket", SetAsidePatterns(), "")
	var use *UnknownSourceError
	if !errors.As(err, &use) {
		t.Fatalf("err = %v, want UnknownSourceError", err)
	}
}

func TestMergePatterns(t *testing.T) {
	base := SetAsidePatterns()
	merged := MergePatterns(base, map[string][]string{
		"SDVOSB":  {"sdvosbc"},
		"HUBZone": {"hubzone"},
		"ignored": {},
		"  ":      {"x"},
	})

	if len(merged["SDVOSB"]) != len(base["SDVOSB"])+1 {
		t.Errorf("SDVOSB patterns = %d, want %d", len(merged["SDVOSB"]), len(base["SDVOSB"])+1)
	}
	if _, ok := merged["HUBZone"]; !ok {
		t.Error("new HUBZone bucket missing")
	}
	if _, ok := merged["ignored"]; ok {
		t.Error("empty pattern list should be skipped")
	}
	if len(base["SDVOSB"]) == len(merged["SDVOSB"]) {
		t.Error("merge should not alias base")
	}

	ds := setAsideColumn(t, String("SDVOSBC"))
	out, err := NormalizeColumn(ds, "TypeOfSetAside", "Bucket", merged, "")
	if err != nil {
		t.Fatalf("NormalizeColumn failed: %v", err)
	}
	if got := out.Value(0, "Bucket").Display(); got != "SDVOSB" {
		t.Errorf("merged pattern bucket = %q, want SDVOSB", got)
	}
}

func TestOpportunityTypeBuckets(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Combined Synopsis/Solicitation", "Solicitation"},
		{"Presolicitation", "Presolicitation"},
		{"Sources Sought", "Sources Sought"},
		{"Request for Information (RFI)", "Sources Sought"},
	}
	for _, tt := range tests {
		if got := classify(tt.raw, OpportunityTypePatterns()); got != tt.want {
			t.Errorf("classify(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
