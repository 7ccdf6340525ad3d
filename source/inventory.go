package source

import (
	"bytes"
	"encoding/csv"
	"strings"

	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageInventory = "inventory"

const (
	inventoryDateLabel = "基準日:"
	inventoryDeptCode  = "部署コード"
	inventoryDeptName  = "部署名"
	inventoryAmount    = "在庫金額"
)

// inventoryDeptNames overrides the listing's department names.
var inventoryDeptNames = map[string]string{
	"H101210": "原料部_輸",
	"H101310": "海外部",
}

// referenceDate reads the "基準日:YYYY/MM/DD" cell of the first line.
func referenceDate(text []byte) (date.Date, bool) {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	cells, err := csv.NewReader(bytes.NewReader(line)).Read()
	if err != nil || len(cells) == 0 || !strings.Contains(cells[0], inventoryDateLabel) {
		return date.Date{}, false
	}
	on, err := date.Parse(strings.TrimSpace(strings.Replace(cells[0], inventoryDateLabel, "", 1)))
	if err != nil {
		return date.Date{}, false
	}
	return on.StartOfMonth(), true
}

// ParseInventory normalizes the inventory listing into merchandise records,
// one per department. It also returns the reference month of the listing,
// zero when the first line has none.
func ParseInventory(text []byte) ([]mda.Record, date.Date, mda.Diagnostics, error) {
	var ds mda.Diagnostics
	on, ok := referenceDate(text)
	if !ok {
		ds.Warnf(stageInventory, "no reference date on the first line")
	}

	sheet, err := ParseSheet(text, 1)
	if err != nil {
		return nil, on, ds, err
	}
	if err := sheet.Require(inventoryDeptCode, inventoryDeptName, inventoryAmount); err != nil {
		return nil, on, ds, err
	}
	var records []mda.Record
	for _, row := range sheet.Rows {
		dept := sheet.Cell(row, inventoryDeptCode)
		if dept == "" {
			continue
		}
		name := sheet.Cell(row, inventoryDeptName)
		if override, ok := inventoryDeptNames[dept]; ok {
			name = override
		}
		records = append(records, mda.Record{
			Date:        on,
			DeptCode:    dept,
			DeptName:    name,
			AccountCode: MerchandiseAccount,
			AccountName: MerchandiseAccountName,
			Amount:      mda.CleanAmount(sheet.Cell(row, inventoryAmount)),
		})
	}
	return records, on, ds, nil
}
