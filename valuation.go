package mda

import (
	"github.com/shopspring/decimal"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageValuation = "valuation"

// ValuationInput gathers the figures the inventory valuation is derived from.
type ValuationInput struct {
	Period          date.Date        // closing period
	MerchandiseBook *decimal.Decimal // trial-balance merchandise total of the period, nil if unknown
	LedgerImport    *Record          // ledger merchandise record, nil if missing
	Inventory       []Record         // inventory listing
	InventoryDate   date.Date        // reference month of the listing, may be zero
}

// Valuation derives the inventory valuation record: the merchandise balance
// of the trial balance, minus the ledger merchandise record, minus the
// inventory listing total. It returns nil when one of the three figures is
// missing.
func Valuation(cfg ValuationConfig, in ValuationInput) (*Record, Diagnostics) {
	var ds Diagnostics
	switch {
	case in.MerchandiseBook == nil:
		ds.Infof(stageValuation, "skipped: no trial balance total")
		return nil, ds
	case in.LedgerImport == nil:
		ds.Infof(stageValuation, "skipped: no ledger merchandise record")
		return nil, ds
	case len(in.Inventory) == 0:
		ds.Infof(stageValuation, "skipped: empty inventory listing")
		return nil, ds
	}

	inventory := Total(in.Inventory)
	value := in.MerchandiseBook.Sub(in.LedgerImport.Amount).Sub(inventory)
	ds.Infof(stageValuation, "book %s - ledger %s - inventory %s = %s", in.MerchandiseBook, in.LedgerImport.Amount, inventory, value)

	on := in.InventoryDate
	if on.IsZero() {
		on = in.Period
	}
	return &Record{
		Date:        on,
		DeptCode:    cfg.DeptCode,
		DeptName:    cfg.DeptName,
		AccountCode: cfg.AccountCode,
		AccountName: cfg.AccountName,
		Amount:      value,
	}, ds
}
