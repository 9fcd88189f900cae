package dataset

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// ============================================================================
// LOADER TESTS
// ============================================================================

// Sample federal notices CSV export
var noticesCSV = `NoticeId,Title,Type,TypeOfSetAside,PostedDate,Award
N-001,Generator maintenance,Solicitation,SDVOSB,2024-02-03,"$12,500.00"
N-002,IT support services,Presolicitation,WOSB,2024-02-10,8000
N-003,Roof repair,Solicitation,SDVOSB,2024-03-01,
N-004,Janitorial services,Sources Sought,NONE,2024-01-15,4200.50
N-005,Fleet vehicles,Solicitation,SDVOSB,2024-02-12,99000
`

func TestParseCSVTypes(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(noticesCSV))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if ds.RowCount() != 5 {
		t.Fatalf("RowCount = %d, want 5", ds.RowCount())
	}
	if ds.ColumnCount() != 6 {
		t.Fatalf("ColumnCount = %d, want 6", ds.ColumnCount())
	}

	// PostedDate should coerce to dates
	v := ds.Value(0, "PostedDate")
	if v.Kind != KindDate {
		t.Errorf("PostedDate kind = %v, want KindDate", v.Kind)
	}
	want := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	if !v.Date.Equal(want) {
		t.Errorf("PostedDate = %v, want %v", v.Date, want)
	}

	// Award should coerce to numbers, stripping $ and commas
	v = ds.Value(0, "Award")
	if v.Kind != KindNumber || v.Num != 12500 {
		t.Errorf("Award = %+v, want number 12500", v)
	}

	// Empty Award cell becomes null
	if !ds.Value(2, "Award").IsNull() {
		t.Error("empty Award cell should be null")
	}

	// Title stays a string column
	if v := ds.Value(1, "Title"); v.Kind != KindString || v.Str != "IT support services" {
		t.Errorf("Title = %+v, want string", v)
	}
}

func TestCoercionThreshold(t *testing.T) {
	// 4 of 5 non-empty cells parse as numbers: column coerces to numeric,
	// the stray cell keeps its raw string form.
	csv := "Amount\n100\n200\n300\n400\npending\n"
	ds, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if v := ds.Value(0, "Amount"); v.Kind != KindNumber {
		t.Errorf("row 0 kind = %v, want KindNumber", v.Kind)
	}
	if v := ds.Value(4, "Amount"); v.Kind != KindString || v.Str != "pending" {
		t.Errorf("row 4 = %+v, want string \"pending\"", v)
	}

	// 2 of 4 parse as numbers: below threshold, everything stays a string.
	csv = "Code\n100\n200\nA-1\nB-2\n"
	ds, err = ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if v := ds.Value(0, "Code"); v.Kind != KindString {
		t.Errorf("mixed column row 0 kind = %v, want KindString", v.Kind)
	}
}

func TestNullLikeCells(t *testing.T) {
	csv := "Status\nopen\nN/A\nnull\n\nna\n"
	ds, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	for _, row := range []int{1, 2, 3, 4} {
		if !ds.Value(row, "Status").IsNull() {
			t.Errorf("row %d should be null", row)
		}
	}
	if ds.Value(0, "Status").IsNull() {
		t.Error("row 0 should not be null")
	}
}

func TestCleanHeaders(t *testing.T) {
	csv := "Name,,Name,Amount\na,b,c,1\n"
	ds, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	got := ds.ColumnNames()
	want := []string{"Name", "Column_2", "Name_2", "Amount"}
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRaggedRows(t *testing.T) {
	csv := "A,B,C\n1,2\nx,y,z,extra\n"
	ds, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	// Short rows pad with null, long rows drop the extras
	if !ds.Value(0, "C").IsNull() {
		t.Error("missing cell should be null")
	}
	if ds.ColumnCount() != 3 {
		t.Errorf("ColumnCount = %d, want 3", ds.ColumnCount())
	}
}

func TestParseFileUnsupported(t *testing.T) {
	_, err := ParseFile("notes.txt", []byte("hello"))
	var ufe *UnsupportedFileError
	if !errors.As(err, &ufe) {
		t.Fatalf("err = %v, want UnsupportedFileError", err)
	}
	if ufe.Name != "notes.txt" {
		t.Errorf("Name = %q, want notes.txt", ufe.Name)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234", 1234, true},
		{"1,234.56", 1234.56, true},
		{"$99", 99, true},
		{"$1,000", 1000, true},
		{"-42.5", -42.5, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseNumber(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-02-03", true},
		{"2024-02-03T10:30:00Z", true},
		{"01/02/2006", true},
		{"Jan 2, 2006", true},
		{"not a date", false},
		{"20240203", false},
	}
	for _, tt := range tests {
		if _, ok := ParseDate(tt.in); ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}
