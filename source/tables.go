package source

import (
	mda "github.com/yanagawa000/ManagementDataAnalysis"
)

// ParseClassifications reads the account classification table.
func ParseClassifications(text []byte) ([]mda.Classification, error) {
	sheet, err := ParseSheet(text, 0)
	if err != nil {
		return nil, err
	}
	if err := sheet.Require(mda.ColAccountCode, mda.ColClass1, mda.ColClass2, mda.ColClass3); err != nil {
		return nil, err
	}
	classes := make([]mda.Classification, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		code := sheet.Cell(row, mda.ColAccountCode)
		if code == "" {
			continue
		}
		classes = append(classes, mda.Classification{
			AccountCode: code,
			Class1:      sheet.Cell(row, mda.ColClass1),
			Class2:      sheet.Cell(row, mda.ColClass2),
			Class3:      sheet.Cell(row, mda.ColClass3),
		})
	}
	return classes, nil
}

// ParseLocations reads the department location table. The department name
// column is optional.
func ParseLocations(text []byte) ([]mda.Location, error) {
	sheet, err := ParseSheet(text, 0)
	if err != nil {
		return nil, err
	}
	if err := sheet.Require(mda.ColDeptCode, mda.ColLocation); err != nil {
		return nil, err
	}
	locations := make([]mda.Location, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		code := sheet.Cell(row, mda.ColDeptCode)
		if code == "" {
			continue
		}
		locations = append(locations, mda.Location{
			DeptCode: code,
			DeptName: sheet.Cell(row, mda.ColDeptName),
			Location: sheet.Cell(row, mda.ColLocation),
		})
	}
	return locations, nil
}

// ParseRatioWeights reads the wide allocation ratio table, a header of
// department codes over a row of weights, into weights.
func ParseRatioWeights(text []byte) ([]mda.Weight, error) {
	sheet, err := ParseSheet(text, 0)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrEmpty
	}
	return mda.Melt(sheet.Header, sheet.Rows), nil
}
