package core

// ingest.go turns uploaded bytes into a Table.
//
// Ingestion handles the messy reality of user-exported CSV files: UTF-8 BOMs,
// invalid byte sequences, and exports that wrap every row in an extra layer
// of quotes. Failures here are hard errors reported to the caller; they are
// never converted into row-level validation errors.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ingestion failures. These abort before the validation pipeline runs.
var (
	ErrEmptyFile = errors.New("empty file")
	ErrNoHeader  = errors.New("missing header row")
)

// ParseTable parses raw CSV bytes into a Table. The first record is the
// header. When the raw text parses but its header lacks required columns, a
// second attempt with whole-row wrapping quotes stripped is tried; the first
// candidate whose header covers the required columns wins, falling back to
// the first successful parse so the schema stage can report what is missing.
func ParseTable(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	data = stripBOM(data)
	data = sanitizeUTF8(data)

	text := string(data)
	attempts := []string{text}
	if sanitized := stripWrappedQuotes(text); sanitized != text {
		attempts = append(attempts, sanitized)
	}

	var fallback *Table
	var lastErr error

	for _, candidate := range attempts {
		records, err := parseCSV([]byte(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		t, err := tableFromRecords(records)
		if err != nil {
			lastErr = err
			continue
		}
		if hasRequiredColumns(t) {
			return t, nil
		}
		if fallback == nil {
			fallback = t
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	if lastErr != nil {
		if errors.Is(lastErr, ErrNoHeader) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("invalid csv: %w", lastErr)
	}
	return nil, ErrNoHeader
}

// tableFromRecords builds a Table from parsed CSV records. Fully empty rows
// are dropped; cells beyond the header width are ignored and short rows leave
// their trailing cells missing.
func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = cleanHeader(h)
	}

	t := &Table{Columns: columns}
	for _, record := range records[1:] {
		if isEmptyRow(record) {
			continue
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func hasRequiredColumns(t *Table) bool {
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			return false
		}
	}
	return true
}

// parseCSV parses bytes with lenient settings: rows may differ in field
// count (short rows become missing cells) and stray quotes are tolerated.
func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// stripWrappedQuotes removes one layer of quotes from lines that are wrapped
// entirely in double quotes, an artifact of some spreadsheet CSV exports
// where every row arrives as a single quoted string.
func stripWrappedQuotes(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, "\uFEFF")
		trimmed := strings.TrimSuffix(line, "\r")
		if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
			lines[i] = trimmed[1 : len(trimmed)-1]
		} else {
			lines[i] = line
		}
	}
	return strings.Join(lines, "\n")
}

// cleanHeader normalizes a header cell: trims whitespace, strips an Excel
// formula prefix (="value"), and removes surrounding quotes.
func cleanHeader(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so downstream string handling never sees broken encoding.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// stripBOM removes a leading UTF-8 byte order mark.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
