package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// LOADERS — CSV and XLSX into a typed Dataset
// ============================================================================
// Parsing is two-pass: read the raw grid, then coerce each column to the
// dominant cell type (80%+ of non-empty cells must parse as number or date).
// Cells that fail to parse in a typed column keep their raw string form, so
// no data is silently dropped; predicates simply never match them.
// ============================================================================

// UnsupportedFileError reports a file extension the loader cannot handle.
type UnsupportedFileError struct {
	Name string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file type %q: upload CSV or XLSX", e.Name)
}

// ParseFile dispatches on the file extension.
func ParseFile(name string, data []byte) (*Dataset, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return ParseCSV(bytes.NewReader(data))
	case ".xlsx":
		return ParseXLSX(bytes.NewReader(data))
	default:
		return nil, &UnsupportedFileError{Name: name}
	}
}

// ParseCSV reads CSV data into a typed Dataset. The first row is the header;
// blank header cells become "Column_N".
func ParseCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}
	return fromGrid(rows[0], rows[1:])
}

// fromGrid builds a Dataset from a header row and raw string rows.
func fromGrid(header []string, rows [][]string) (*Dataset, error) {
	names := cleanHeaders(header)

	cols := make([]Column, len(names))
	for i, name := range names {
		raw := make([]string, len(rows))
		for r, row := range rows {
			if i < len(row) {
				raw[r] = strings.TrimSpace(row[i])
			}
		}
		cols[i] = Column{Name: name, Values: coerceColumn(raw)}
	}
	return New(cols...)
}

// cleanHeaders trims headers, fills blanks, and deduplicates.
func cleanHeaders(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		}
		seen[h] = 1
		names[i] = h
	}
	return names
}

// coerceColumn converts raw strings into typed values based on the column's
// dominant type. Empty and null-like cells become null.
func coerceColumn(raw []string) []Value {
	numCount, dateCount, nonEmpty := 0, 0, 0
	for _, s := range raw {
		if isNullLike(s) {
			continue
		}
		nonEmpty++
		if _, ok := ParseNumber(s); ok {
			numCount++
		}
		if _, ok := ParseDate(s); ok {
			dateCount++
		}
	}

	threshold := int(float64(nonEmpty) * 0.8)
	asDate := nonEmpty > 0 && dateCount >= threshold
	asNumber := !asDate && nonEmpty > 0 && numCount >= threshold

	vals := make([]Value, len(raw))
	for i, s := range raw {
		switch {
		case isNullLike(s):
			vals[i] = Null()
		case asDate:
			if t, ok := ParseDate(s); ok {
				vals[i] = Date(t)
			} else {
				vals[i] = String(s)
			}
		case asNumber:
			if f, ok := ParseNumber(s); ok {
				vals[i] = Number(f)
			} else {
				vals[i] = String(s)
			}
		default:
			vals[i] = String(s)
		}
	}
	return vals
}

func isNullLike(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "n/a", "na":
		return true
	}
	return false
}

// ParseNumber handles "1,234.56", "$99", and plain floats.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate tries the supported date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
