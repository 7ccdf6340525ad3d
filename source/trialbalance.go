package source

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageTrialBalance = "trial-balance"

// trialBalanceSkip is the number of title lines above the header.
const trialBalanceSkip = 9

const (
	tbAccountPrefix = "BS"
	tbOpening       = "前残"
	// MerchandiseAccount is the merchandise account, whose trial-balance
	// total feeds the inventory valuation.
	MerchandiseAccount = "BS1043"
)

// tbReplaced are the accounts provided by dedicated exports, removed from
// the trial balance to avoid counting them twice.
var tbReplaced = []string{"BS1043", "BS1098", "BS2003", "BS1013", "BS1015", "BS2004"}

// TrialBalance is the normalized trial-balance transition export.
type TrialBalance struct {
	Records     []mda.Record                  // every month, replaced accounts removed
	Merchandise map[date.Date]decimal.Decimal // merchandise total per month
}

// Period returns the records of the closing period.
func (tb *TrialBalance) Period(on date.Date) []mda.Record {
	var out []mda.Record
	for _, r := range tb.Records {
		if r.Date == on {
			out = append(out, r)
		}
	}
	return out
}

// MerchandiseTotal returns the merchandise total of the period.
func (tb *TrialBalance) MerchandiseTotal(on date.Date) (decimal.Decimal, bool) {
	v, ok := tb.Merchandise[on]
	return v, ok
}

// ParseTrialBalance normalizes the balance-sheet transition export: one
// column per month after the department and account columns. Only
// balance-sheet accounts are kept and the opening-balance column is
// dropped.
func ParseTrialBalance(text []byte) (*TrialBalance, mda.Diagnostics, error) {
	var ds mda.Diagnostics
	sheet, err := ParseSheet(text, trialBalanceSkip)
	if err != nil {
		return nil, ds, err
	}
	if err := sheet.Require(mda.ColDeptCode, mda.ColAccountCode); err != nil {
		return nil, ds, err
	}

	var rows [][]string
	for _, row := range sheet.Rows {
		if strings.HasPrefix(sheet.Cell(row, mda.ColAccountCode), tbAccountPrefix) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ds, errors.Join(ErrEmpty, errors.New("no balance-sheet account"))
	}

	ids := []string{mda.ColDeptCode, mda.ColDeptName, mda.ColAccountCode, mda.ColAccountName}
	var months []string
	for _, h := range sheet.Header {
		if !slices.Contains(ids, h) && h != "" {
			months = append(months, h)
		}
	}
	if len(months) == 0 {
		return nil, ds, errors.Join(ErrEmpty, errors.New("no month column"))
	}

	tb := &TrialBalance{Merchandise: make(map[date.Date]decimal.Decimal)}
	removed := 0
	for _, col := range months {
		if col == tbOpening {
			continue
		}
		on, err := date.ParseMonthColumn(col)
		if err != nil {
			ds.Warnf(stageTrialBalance, "column %q ignored: %v", col, err)
			continue
		}
		for _, row := range rows {
			amount := mda.ParseAmount(sheet.Cell(row, col))
			account := sheet.Cell(row, mda.ColAccountCode)
			if account == MerchandiseAccount {
				tb.Merchandise[on] = tb.Merchandise[on].Add(amount)
			}
			if slices.Contains(tbReplaced, account) {
				removed++
				continue
			}
			dept := sheet.Cell(row, mda.ColDeptCode)
			if dept == "" {
				continue
			}
			tb.Records = append(tb.Records, mda.Record{
				Date:        on,
				DeptCode:    dept,
				DeptName:    sheet.Cell(row, mda.ColDeptName),
				AccountCode: account,
				AccountName: sheet.Cell(row, mda.ColAccountName),
				Amount:      amount,
			})
		}
	}
	ds.Infof(stageTrialBalance, "%d records, %d replaced-account records removed", len(tb.Records), removed)
	return tb, ds, nil
}
