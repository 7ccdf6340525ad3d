package mda

import (
	"github.com/shopspring/decimal"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

// Column names of the canonical extract, in output order.
const (
	ColDate        = "日付"
	ColDeptCode    = "部門コード"
	ColDeptName    = "部門名"
	ColAccountCode = "勘定科目コード"
	ColAccountName = "勘定科目名"
	ColAmount      = "金額"
	ColClass1      = "分類1"
	ColClass2      = "分類2"
	ColClass3      = "分類3"
	ColLocation    = "場所"
)

// Columns is the header of the final extract.
var Columns = []string{ColDate, ColDeptCode, ColDeptName, ColAccountCode, ColAccountName, ColAmount}

// TaggedColumns is the header of the debug snapshots, the extract columns
// followed by the classification and location tags.
var TaggedColumns = append(append([]string{}, Columns...), ColClass1, ColClass2, ColClass3, ColLocation)

// Record is the canonical long-format row produced by every source.
//
// Date is the first day of the closing month, or the zero Date when the
// source did not carry one. DeptCode is never empty.
type Record struct {
	Date        date.Date
	DeptCode    string
	DeptName    string
	AccountCode string
	AccountName string
	Amount      decimal.Decimal
}

// Tagged is a Record with its classification and location attached.
// Missing tags are empty strings.
type Tagged struct {
	Record
	Class1   string
	Class2   string
	Class3   string
	Location string
}

// Records returns the plain records of tagged rows.
func Records(tagged []Tagged) []Record {
	records := make([]Record, len(tagged))
	for i, t := range tagged {
		records[i] = t.Record
	}
	return records
}

// Total sums the amounts of the records.
func Total(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
