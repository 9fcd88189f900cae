package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Dteebaba/Survey-Agent/dataset"
)

// WriteCSV serializes one dataset as CSV with a header row. Display
// formatting matches the xlsx export: dates as "yyyy-mm-dd", nulls empty.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	cols := ds.ColumnNames()

	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(cols))
	for r := 0; r < ds.RowCount(); r++ {
		for i, c := range cols {
			record[i] = ds.Value(r, c).Display()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
