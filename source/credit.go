package source

import (
	"bufio"
	"bytes"
	"strings"

	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageCredit = "credit-balance"

const (
	creditMetaLines = 13 // metadata block above the header
	creditDateLine  = 5  // 1-based line of the reporting date
	creditDateCell  = 2  // 1-based cell of the reporting date
)

const (
	creditDeptCode = "計上部門コード"
	creditDeptName = "計上部門名"
	creditAmount   = "受取手形"

	// NotesReceivableAccount is where the credit balance is booked.
	NotesReceivableAccount     = "BS1013"
	NotesReceivableAccountName = "★受取手形"
)

// metaCell returns the raw cell at 1-based (line, cell) of text, quotes and
// blanks trimmed.
func metaCell(text []byte, line, cell int) (string, bool) {
	s := bufio.NewScanner(bytes.NewReader(text))
	for n := 1; s.Scan(); n++ {
		if n != line {
			continue
		}
		cells := strings.Split(strings.TrimSpace(s.Text()), ",")
		if len(cells) < cell {
			return "", false
		}
		return strings.Trim(strings.TrimSpace(cells[cell-1]), `"`), true
	}
	return "", false
}

// ParseCreditBalance normalizes the credit balance export. The reporting
// date is read from the metadata block; the notes receivable of each
// department become records of the receivable account. It also returns the
// reporting month, zero when the metadata has no valid date.
func ParseCreditBalance(text []byte) ([]mda.Record, date.Date, mda.Diagnostics, error) {
	var ds mda.Diagnostics

	var on date.Date
	if raw, ok := metaCell(text, creditDateLine, creditDateCell); !ok {
		ds.Warnf(stageCredit, "no reporting date at line %d cell %d", creditDateLine, creditDateCell)
	} else if d, err := date.Parse(raw); err != nil {
		ds.Warnf(stageCredit, "reporting date %q is not a date", raw)
	} else {
		on = d.StartOfMonth()
		ds.Infof(stageCredit, "reporting date %s", d)
	}

	sheet, err := ParseSheet(text, creditMetaLines)
	if err != nil {
		return nil, on, ds, err
	}
	if err := sheet.Require(creditDeptCode, creditDeptName, creditAmount); err != nil {
		return nil, on, ds, err
	}
	var records []mda.Record
	for _, row := range sheet.Rows {
		dept := sheet.Cell(row, creditDeptCode)
		if dept == "" {
			continue
		}
		records = append(records, mda.Record{
			Date:        on,
			DeptCode:    dept,
			DeptName:    sheet.Cell(row, creditDeptName),
			AccountCode: NotesReceivableAccount,
			AccountName: NotesReceivableAccountName,
			Amount:      mda.ParseAmount(sheet.Cell(row, creditAmount)),
		})
	}
	return records, on, ds, nil
}
