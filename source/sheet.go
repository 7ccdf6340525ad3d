package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Sheet is a decoded CSV table: a header and its data rows.
type Sheet struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// skipLines drops the first n lines of text.
func skipLines(text []byte, n int) []byte {
	for ; n > 0 && len(text) > 0; n-- {
		i := bytes.IndexByte(text, '\n')
		if i < 0 {
			return nil
		}
		text = text[i+1:]
	}
	return text
}

// cleanHeader normalizes a column name: surrounding blanks, embedded line
// breaks and their escaped "\n" spelling are removed.
func cleanHeader(h string) string {
	h = strings.ReplaceAll(h, `\n`, "")
	h = strings.ReplaceAll(h, "\r", "")
	h = strings.ReplaceAll(h, "\n", "")
	return strings.TrimSpace(h)
}

// ParseSheet parses text as CSV after skipping its first skip lines. The
// first remaining record is the header. Rows may have any number of cells.
func ParseSheet(text []byte, skip int) (*Sheet, error) {
	r := csv.NewReader(bytes.NewReader(skipLines(text, skip)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	s := &Sheet{Header: make([]string, len(header)), index: make(map[string]int, len(header))}
	for i, h := range header {
		h = cleanHeader(h)
		s.Header[i] = h
		if _, ok := s.index[h]; !ok {
			s.index[h] = i
		}
	}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read row %d: %w", len(s.Rows)+1, err)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// Has reports whether the sheet has the column.
func (s *Sheet) Has(col string) bool {
	_, ok := s.index[col]
	return ok
}

// Missing returns the columns the sheet lacks, in the given order.
func (s *Sheet) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !s.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Require returns a *MissingColumnsError when one of cols is absent.
func (s *Sheet) Require(cols ...string) error {
	if missing := s.Missing(cols...); len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Cell returns the trimmed value of col in row, or "" when absent.
func (s *Sheet) Cell(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
