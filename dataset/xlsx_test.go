package dataset

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"NoticeId", "Title", "PostedDate", "Award"},
		{"N-001", "Generator maintenance", "2024-02-03", 12500},
		{"N-002", "IT support services", "2024-02-10", 8000},
	}
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	ds, err := ParseFile("notices.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if ds.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", ds.RowCount())
	}
	if v := ds.Value(0, "NoticeId"); v.Str != "N-001" {
		t.Errorf("NoticeId = %+v, want N-001", v)
	}
	if v := ds.Value(0, "PostedDate"); v.Kind != KindDate {
		t.Errorf("PostedDate kind = %v, want KindDate", v.Kind)
	}
	if v := ds.Value(1, "Award"); v.Kind != KindNumber || v.Num != 8000 {
		t.Errorf("Award = %+v, want number 8000", v)
	}
}
