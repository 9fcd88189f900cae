package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/engine"
)

// ============================================================================
// XLSX SERIALIZER — ExecutionResult → multi-sheet workbook
// ============================================================================
// One worksheet per result sheet, in result order; the first result sheet
// replaces the workbook's default sheet. Worksheet names are capped at 31
// characters (the xlsx format limit) and deduplicated after truncation.
// ============================================================================

const maxSheetName = 31

// WriteXLSX serializes an execution result as an xlsx workbook.
// Sheets with zero rows still get a worksheet with the header row.
func WriteXLSX(w io.Writer, result *engine.ExecutionResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	names := sheetNames(result)
	for i, sheet := range result.Sheets {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
		}
		if err := writeSheet(f, name, sheet.Data); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sheetNames truncates and deduplicates worksheet names up front, so two
// long names that collide after truncation stay distinct.
func sheetNames(result *engine.ExecutionResult) []string {
	names := make([]string, 0, len(result.Sheets))
	seen := make(map[string]bool, len(result.Sheets))
	for i, sheet := range result.Sheets {
		name := sheet.Name
		if name == "" {
			name = fmt.Sprintf("Sheet_%d", i+1)
		}
		if len(name) > maxSheetName {
			name = name[:maxSheetName]
		}
		for n := 2; seen[name]; n++ {
			suffix := fmt.Sprintf("_%d", n)
			base := name
			if len(base)+len(suffix) > maxSheetName {
				base = base[:maxSheetName-len(suffix)]
			}
			name = base + suffix
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func writeSheet(f *excelize.File, name string, ds *dataset.Dataset) error {
	cols := ds.ColumnNames()

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}

	for r := 0; r < ds.RowCount(); r++ {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = cellValue(ds.Value(r, c))
		}
		if err := setRow(f, name, r+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// cellValue maps a dataset cell to an excelize-native value. Numbers stay
// numeric so spreadsheet formulas work on exported data; dates export as
// "yyyy-mm-dd" text; nulls become empty cells.
func cellValue(v dataset.Value) any {
	switch v.Kind {
	case dataset.KindNumber:
		return v.Num
	case dataset.KindNull:
		return nil
	default:
		return v.Display()
	}
}
