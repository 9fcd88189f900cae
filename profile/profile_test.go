package profile

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Dteebaba/Survey-Agent/dataset"
)

// ============================================================================
// PROFILE TESTS
// ============================================================================

func col(name string, values ...dataset.Value) dataset.Column {
	return dataset.Column{Name: name, Values: values}
}

func buildDataset(t *testing.T, cols ...dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(cols...)
	if err != nil {
		t.Fatalf("dataset.New failed: %v", err)
	}
	return ds
}

func TestClassifyBaseTypes(t *testing.T) {
	day := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	ds := buildDataset(t,
		col("PostedDate", dataset.Date(day), dataset.Date(day), dataset.Null()),
		col("Award", dataset.Number(100), dataset.Number(200), dataset.Number(300)),
		col("Type", dataset.String("Solicitation"), dataset.String("Presolicitation"), dataset.String("Solicitation")),
	)

	p := Build(ds)
	tests := []struct {
		column string
		want   ColumnType
	}{
		{"PostedDate", TypeDate},
		{"Award", TypeNumeric},
		{"Type", TypeCategorical},
	}
	for _, tt := range tests {
		cp, ok := p.Column(tt.column)
		if !ok {
			t.Fatalf("column %q missing from profile", tt.column)
		}
		if cp.Type != tt.want {
			t.Errorf("%s type = %s, want %s", tt.column, cp.Type, tt.want)
		}
	}
}

func TestClassifyTypedColumnWithStrayStrings(t *testing.T) {
	// A coerced numeric column can carry stray string cells; the majority
	// kind decides the type.
	values := []dataset.Value{
		dataset.Number(1), dataset.Number(2), dataset.Number(3),
		dataset.Number(4), dataset.String("pending"),
	}
	p := Build(buildDataset(t, col("Amount", values...)))
	if cp, _ := p.Column("Amount"); cp.Type != TypeNumeric {
		t.Errorf("Amount type = %s, want numeric", cp.Type)
	}
}

func TestClassifyIdentifier(t *testing.T) {
	// All-distinct string column with enough rows reads as an identifier.
	values := make([]dataset.Value, 20)
	for i := range values {
		values[i] = dataset.String(fmt.Sprintf("N-%03d", i))
	}
	p := Build(buildDataset(t, col("NoticeId", values...)))
	if cp, _ := p.Column("NoticeId"); cp.Type != TypeIdentifier {
		t.Errorf("NoticeId type = %s, want identifier", cp.Type)
	}
}

func TestClassifyFreeText(t *testing.T) {
	// High-cardinality but repeating strings read as free text.
	values := make([]dataset.Value, 100)
	for i := range values {
		values[i] = dataset.String(fmt.Sprintf("Repair notice number %d", i%60))
	}
	p := Build(buildDataset(t, col("Title", values...)))
	if cp, _ := p.Column("Title"); cp.Type != TypeFreeText {
		t.Errorf("Title type = %s, want free_text", cp.Type)
	}
}

func TestNullAndDistinctCounts(t *testing.T) {
	ds := buildDataset(t, col("SetAside",
		dataset.String("SDVOSB"), dataset.String("SDVOSB"),
		dataset.String("WOSB"), dataset.Null(), dataset.Null(),
	))
	p := Build(ds)
	cp, _ := p.Column("SetAside")

	if cp.NullCount != 2 {
		t.Errorf("NullCount = %d, want 2", cp.NullCount)
	}
	if cp.DistinctCount != 2 {
		t.Errorf("DistinctCount = %d, want 2", cp.DistinctCount)
	}
	if p.RowCount != 5 || p.ColumnCount != 1 {
		t.Errorf("counts = %d/%d, want 5/1", p.RowCount, p.ColumnCount)
	}
}

func TestSamplesBoundedAndSorted(t *testing.T) {
	values := make([]dataset.Value, 30)
	for i := range values {
		values[i] = dataset.String(fmt.Sprintf("val-%02d", i))
	}
	p := Build(buildDataset(t, col("C", values...)), Options{SampleSize: 5})
	cp, _ := p.Column("C")

	if len(cp.Samples) != 5 {
		t.Fatalf("samples = %d, want 5", len(cp.Samples))
	}
	if !strings.HasPrefix(cp.Samples[0], "val-00") {
		t.Errorf("samples not sorted: %v", cp.Samples)
	}
}

func TestWithColumn(t *testing.T) {
	p := Build(buildDataset(t, col("A", dataset.String("x"))))
	ext := p.WithColumn(ColumnProfile{Name: "B", Type: TypeCategorical})

	if _, ok := ext.Column("B"); !ok {
		t.Fatal("extended profile missing B")
	}
	if _, ok := p.Column("B"); ok {
		t.Fatal("original profile gained B")
	}
	if ext.ColumnCount != 2 {
		t.Errorf("ColumnCount = %d, want 2", ext.ColumnCount)
	}
}
