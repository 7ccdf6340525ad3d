package mda

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageAllocation = "allocation"

// NetSubtotal returns the asset-side sum minus the liability-side sum of
// the pair over the records.
func NetSubtotal(records []Tagged, pair ClassPair) decimal.Decimal {
	asset, liability := decimal.Zero, decimal.Zero
	for _, r := range records {
		switch r.Class2 {
		case pair.Asset:
			asset = asset.Add(r.Amount)
		case pair.Liability:
			liability = liability.Add(r.Amount)
		}
	}
	return asset.Sub(liability)
}

// Allocator distributes common balances to departments.
type Allocator struct {
	cfg AllocationConfig
}

// NewAllocator creates an allocator for the configuration.
func NewAllocator(cfg AllocationConfig) *Allocator {
	return &Allocator{cfg: cfg}
}

// Allocate emits the allocated records of the store-common and
// location-common partitions.
//
// Store-common balances are split with the global ratio of every row of the
// ratio table. Location-common balances are split per anchor department with
// the group ratio of the ratio-table rows sharing the anchor's prefix. A
// pair whose net subtotal is zero emits nothing. Each pair is computed
// independently: a failure is reported and the remaining pairs and anchors
// still run. An empty result is valid.
func (a *Allocator) Allocate(storeCommon, locationCommon []Tagged, ratios *RatioTable, on date.Date) ([]Tagged, Diagnostics) {
	var ds Diagnostics
	var out []Tagged

	if len(storeCommon) == 0 || ratios.Len() == 0 {
		ds.Infof(stageAllocation, "store-common allocation skipped: no store-common record or no ratio table")
	} else {
		for _, pair := range a.cfg.Pairs {
			guard(&ds, fmt.Sprintf("store-common %s", pair.Name), func() error {
				net := NetSubtotal(storeCommon, pair)
				ds.Infof(stageAllocation, "store-common %s net subtotal: %s", pair.Name, net)
				rows, err := distribute(net, ratios.Rows, globalRatio, pair.Class1, pair.StoreClass2, on)
				out = append(out, rows...)
				return err
			})
		}
	}

	if len(locationCommon) == 0 || ratios.Len() == 0 {
		ds.Infof(stageAllocation, "location-common allocation skipped: no location-common record or no ratio table")
		return out, ds
	}
	for _, anchor := range a.cfg.Anchors {
		records := byDept(locationCommon, anchor)
		if len(records) == 0 {
			ds.Infof(stageAllocation, "anchor %s has no location-common record, skipped", anchor)
			continue
		}
		prefix := a.cfg.Prefix(anchor)
		targets := ratios.WithPrefix(prefix)
		if len(targets) == 0 {
			ds.Warnf(stageAllocation, "no department of the ratio table starts with %q, anchor %s skipped", prefix, anchor)
			continue
		}
		for _, pair := range a.cfg.Pairs {
			guard(&ds, fmt.Sprintf("location-common %s %s", anchor, pair.Name), func() error {
				net := NetSubtotal(records, pair)
				ds.Infof(stageAllocation, "location-common %s %s net subtotal: %s", anchor, pair.Name, net)
				rows, err := distribute(net, targets, groupRatio, pair.Class1, pair.LocationClass2, on)
				out = append(out, rows...)
				return err
			})
		}
	}
	return out, ds
}

func globalRatio(r RatioRow) decimal.Decimal { return r.Global }
func groupRatio(r RatioRow) decimal.Decimal  { return r.GroupRatio }

// distribute emits one record per ratio row with amount net*ratio. Nothing
// is emitted for a zero net subtotal.
func distribute(net decimal.Decimal, rows []RatioRow, ratio func(RatioRow) decimal.Decimal, class1, class2 string, on date.Date) ([]Tagged, error) {
	if net.IsZero() {
		return nil, nil
	}
	out := make([]Tagged, 0, len(rows))
	for _, r := range rows {
		if r.DeptCode == "" {
			return nil, fmt.Errorf("ratio row without department code")
		}
		out = append(out, Tagged{
			Record: Record{
				Date:     on,
				DeptCode: r.DeptCode,
				Amount:   net.Mul(ratio(r)),
			},
			Class1: class1,
			Class2: class2,
		})
	}
	return out, nil
}

// byDept returns the records of one department.
func byDept(records []Tagged, dept string) []Tagged {
	var out []Tagged
	for _, r := range records {
		if r.DeptCode == dept {
			out = append(out, r)
		}
	}
	return out
}

// guard runs one unit of allocation work, turning an error or a panic into
// an Error diagnostic so that the next unit still runs.
func guard(ds *Diagnostics, unit string, work func() error) {
	defer func() {
		if r := recover(); r != nil {
			ds.Errorf(stageAllocation, "%s failed: %v", unit, r)
		}
	}()
	if err := work(); err != nil {
		ds.Errorf(stageAllocation, "%s failed: %v", unit, err)
	}
}
