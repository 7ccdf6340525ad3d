package source

import (
	"strings"

	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageNotes = "notes-payable"

const (
	notesDeptCode = "依頼部門コード"
	notesDeptName = "依頼部門名"
	notesAmount   = "手形金額"

	// NotesPayableAccount is where the notes payable are booked.
	NotesPayableAccount     = "BS2003"
	NotesPayableAccountName = "★支払手形"
)

// ParseNotesPayable normalizes the notes-payable listing into records dated
// with the closing period.
//
// Missing columns are tolerated: each one is reported and treated as empty.
// Without the department column no record can be produced.
func ParseNotesPayable(text []byte, period date.Date) ([]mda.Record, mda.Diagnostics, error) {
	var ds mda.Diagnostics
	sheet, err := ParseSheet(text, 0)
	if err != nil {
		return nil, ds, err
	}
	cols := []string{notesDeptCode, notesDeptName, notesAmount}
	missing := sheet.Missing(cols...)
	switch {
	case len(missing) == len(cols):
		ds.Warnf(stageNotes, "none of the columns %s found", strings.Join(cols, ", "))
		return nil, ds, nil
	case len(missing) > 0:
		ds.Warnf(stageNotes, "columns %s not found, using the available ones", strings.Join(missing, ", "))
	}
	if !sheet.Has(notesDeptCode) {
		ds.Warnf(stageNotes, "no department column, %d rows dropped", len(sheet.Rows))
		return nil, ds, nil
	}

	var records []mda.Record
	for _, row := range sheet.Rows {
		dept := sheet.Cell(row, notesDeptCode)
		if dept == "" {
			continue
		}
		records = append(records, mda.Record{
			Date:        period,
			DeptCode:    dept,
			DeptName:    sheet.Cell(row, notesDeptName),
			AccountCode: NotesPayableAccount,
			AccountName: NotesPayableAccountName,
			Amount:      mda.ParseAmount(sheet.Cell(row, notesAmount)),
		})
	}
	return records, ds, nil
}
