package source

import (
	"cmp"
	"slices"
	"strconv"

	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageLedger = "ledger"

const (
	ledgerKind        = "データ区分"
	ledgerDate        = "計上日"
	ledgerRow         = "行"
	ledgerAccountName = "勘定科目"
	ledgerDebit       = "借方金額"
	ledgerBalance     = "残高"
)

var ledgerColumns = []string{
	ledgerKind, ledgerDate, ledgerRow, mda.ColDeptCode, mda.ColDeptName,
	mda.ColAccountCode, ledgerAccountName, ledgerDebit, ledgerBalance,
}

// Ledger accounts extracted from the general ledger.
const (
	ImportTaxLedgerCode   = "109801"
	MerchandiseLedgerCode = "491701"
)

// Accounts and department the ledger records are booked to.
const (
	ImportTaxAccount     = "BS1098"
	ImportTaxAccountName = "★輸入消費税"
	ImportTaxDeptCode    = "H101210"
	ImportTaxDeptName    = "原料部_輸"

	MerchandiseAccountName = "★商品"
)

// Ledger holds the two records extracted from the general ledger. Either may
// be nil when the ledger has no usable entry for its account.
type Ledger struct {
	ImportTax   *mda.Record // balance of the import consumption tax account
	Merchandise *mda.Record // negated debit of the merchandise account
}

// Records returns the non-nil records.
func (l *Ledger) Records() []mda.Record {
	var out []mda.Record
	for _, r := range []*mda.Record{l.ImportTax, l.Merchandise} {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

type ledgerEntry struct {
	on  date.Date
	row int
	raw []string
}

// latest returns the entry with the latest date then the largest row
// number. Entries whose date or row number does not parse are ignored; ties
// keep the first entry in input order.
func latest(sheet *Sheet, rows [][]string) (ledgerEntry, bool) {
	var entries []ledgerEntry
	for _, row := range rows {
		on, err := date.Parse(sheet.Cell(row, ledgerDate))
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(sheet.Cell(row, ledgerRow))
		if err != nil {
			continue
		}
		entries = append(entries, ledgerEntry{on: on, row: n, raw: row})
	}
	if len(entries) == 0 {
		return ledgerEntry{}, false
	}
	slices.SortStableFunc(entries, func(a, b ledgerEntry) int {
		if c := b.on.Compare(a.on); c != 0 {
			return c
		}
		return cmp.Compare(b.row, a.row)
	})
	return entries[0], true
}

// ParseLedger extracts the latest entry of the import consumption tax and of
// the merchandise accounts from the general ledger export.
func ParseLedger(text []byte) (*Ledger, mda.Diagnostics, error) {
	var ds mda.Diagnostics
	sheet, err := ParseSheet(text, 0)
	if err != nil {
		return nil, ds, err
	}
	if err := sheet.Require(ledgerColumns...); err != nil {
		return nil, ds, err
	}

	byAccount := make(map[string][][]string)
	for _, row := range sheet.Rows {
		code := sheet.Cell(row, mda.ColAccountCode)
		byAccount[code] = append(byAccount[code], row)
	}

	l := new(Ledger)
	if e, ok := latest(sheet, byAccount[ImportTaxLedgerCode]); ok {
		l.ImportTax = &mda.Record{
			Date:        e.on.StartOfMonth(),
			DeptCode:    ImportTaxDeptCode,
			DeptName:    ImportTaxDeptName,
			AccountCode: ImportTaxAccount,
			AccountName: ImportTaxAccountName,
			Amount:      mda.ParseAmount(sheet.Cell(e.raw, ledgerBalance)),
		}
	} else {
		ds.Infof(stageLedger, "no usable entry for account %s", ImportTaxLedgerCode)
	}

	if e, ok := latest(sheet, byAccount[MerchandiseLedgerCode]); ok {
		dept := sheet.Cell(e.raw, mda.ColDeptCode)
		if dept == "" {
			ds.Warnf(stageLedger, "latest entry of account %s has no department, ignored", MerchandiseLedgerCode)
		} else {
			l.Merchandise = &mda.Record{
				Date:        e.on.StartOfMonth(),
				DeptCode:    dept,
				DeptName:    sheet.Cell(e.raw, mda.ColDeptName),
				AccountCode: MerchandiseAccount,
				AccountName: MerchandiseAccountName,
				Amount:      mda.ParseAmount(sheet.Cell(e.raw, ledgerDebit)).Neg(),
			}
		}
	} else {
		ds.Infof(stageLedger, "no usable entry for account %s", MerchandiseLedgerCode)
	}
	return l, ds, nil
}
