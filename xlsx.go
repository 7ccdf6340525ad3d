package mda

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the extract in the workbook copy.
const SheetName = "extract"

// SaveXLSX writes the final extract as a single-sheet workbook. Amounts are
// stored as numbers so that spreadsheet formulas work on them.
func SaveXLSX(path string, records []Tagged) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("cannot name sheet: %w", err)
	}
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for i, r := range records {
		amount, _ := r.Amount.Float64()
		row := []any{r.Date.String(), r.DeptCode, r.DeptName, r.AccountCode, r.AccountName, amount}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", path, err)
	}
	return nil
}
