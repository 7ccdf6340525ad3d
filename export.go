package mda

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanagawa000/ManagementDataAnalysis/date"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no record to export")

func recordRow(r Record) []string {
	return []string{r.Date.String(), r.DeptCode, r.DeptName, r.AccountCode, r.AccountName, r.Amount.String()}
}

func taggedRow(t Tagged) []string {
	return append(recordRow(t.Record), t.Class1, t.Class2, t.Class3, t.Location)
}

// writeCSV writes header and rows as comma separated UTF-8 with a byte
// order mark, the encoding spreadsheets open without asking.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return bw.Close()
}

// WriteCSV writes the final extract.
func WriteCSV(w io.Writer, records []Tagged) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = recordRow(r.Record)
	}
	return writeCSV(w, Columns, rows)
}

// WriteTaggedCSV writes records with their classification and location tags.
func WriteTaggedCSV(w io.Writer, records []Tagged) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = taggedRow(r)
	}
	return writeCSV(w, TaggedColumns, rows)
}

// SaveCSV writes the final extract to path. It refuses to write an empty
// extract and returns ErrNoRecords instead.
func SaveCSV(path string, records []Tagged) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	return createFile(path, func(w io.Writer) error { return WriteCSV(w, records) })
}

// SaveTaggedCSV writes a tagged snapshot to path.
func SaveTaggedCSV(path string, records []Tagged) error {
	return createFile(path, func(w io.Writer) error { return WriteTaggedCSV(w, records) })
}

func createFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return f.Close()
}

// ReadCSV reads an extract written by WriteCSV (or WriteTaggedCSV).
// A leading byte order mark is optional.
func ReadCSV(r io.Reader) ([]Tagged, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read extract header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("extract has no %q column", col)
		}
	}
	get := func(row []string, col string) string {
		if i, ok := index[col]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	var records []Tagged
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read extract line %d: %w", line, err)
		}
		var on date.Date
		if s := get(row, ColDate); s != "" {
			if on, err = date.Parse(s); err != nil {
				return nil, fmt.Errorf("extract line %d: %w", line, err)
			}
		}
		records = append(records, Tagged{
			Record: Record{
				Date:        on,
				DeptCode:    get(row, ColDeptCode),
				DeptName:    get(row, ColDeptName),
				AccountCode: get(row, ColAccountCode),
				AccountName: get(row, ColAccountName),
				Amount:      ParseAmount(get(row, ColAmount)),
			},
			Class1:   get(row, ColClass1),
			Class2:   get(row, ColClass2),
			Class3:   get(row, ColClass3),
			Location: get(row, ColLocation),
		})
	}
	return records, nil
}
