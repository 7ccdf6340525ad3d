package mda

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const (
	wcAsset     = "運転資本(資産)"
	wcLiability = "運転資本(負債)"
	faAsset     = "固定資産(資産)"
	faLiability = "固定資産(負債)"
)

func TestNetSubtotal(t *testing.T) {
	pair := DefaultConfig().Allocation.Pairs[0]
	records := []Tagged{
		tagged("H100100", wcAsset, "", "1000"),
		tagged("H100100", wcAsset, "", "250.5"),
		tagged("H100100", wcLiability, "", "200"),
		tagged("H100100", faAsset, "", "99999"),
	}
	if got, want := NetSubtotal(records, pair), D("1050.5"); !got.Equal(want) {
		t.Errorf("NetSubtotal() = %s, want %s", got, want)
	}
}

// amounts returns dept:amount strings of the allocated records of one class2.
func amounts(records []Tagged, class2 string) map[string]decimal.Decimal {
	got := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Class2 == class2 {
			got[r.DeptCode] = r.Amount
		}
	}
	return got
}

func TestAllocate(t *testing.T) {
	cfg := DefaultConfig().Allocation
	store := cfg.StoreCommon
	location := cfg.LocationCommon

	testCases := []struct {
		name           string
		storeCommon    []Tagged
		locationCommon []Tagged
		weights        []Weight
		want           map[string]map[string]string // class2 -> dept -> amount
		rows           int
		diagnostic     string
	}{
		{
			name: "store-common working capital",
			storeCommon: []Tagged{
				tagged("H100000", wcAsset, store, "1000"),
				tagged("H100000", wcLiability, store, "200"),
			},
			weights: weights("H102200", 60, "S202100", 40),
			want: map[string]map[string]string{
				"運転資本_全店共通": {"H102200": "480", "S202100": "320"},
			},
			rows: 2,
		},
		{
			name: "location-common fixed asset",
			locationCommon: []Tagged{
				tagged("H100100", faAsset, location, "5000"),
				tagged("H100100", faLiability, location, "1000"),
			},
			weights: weights("H102200", 70, "H101100", 30, "S202100", 100),
			want: map[string]map[string]string{
				"固定資産_場所共通": {"H102200": "2800", "H101100": "1200"},
			},
			rows: 2,
		},
		{
			name: "anchor absent",
			locationCommon: []Tagged{
				tagged("S200100", wcAsset, location, "900"),
			},
			weights: weights("H102200", 50, "S202100", 10, "S201100", 40),
			want: map[string]map[string]string{
				"運転資本_場所共通": {"S202100": "180", "S201100": "720"},
			},
			rows:       2,
			diagnostic: "anchor H100100 has no location-common record",
		},
		{
			name: "zero subtotal",
			storeCommon: []Tagged{
				tagged("H100000", wcAsset, store, "500"),
				tagged("H100000", wcLiability, store, "500"),
				tagged("H100000", faAsset, store, "100"),
			},
			weights: weights("H102200", 60, "S202100", 40),
			want: map[string]map[string]string{
				"固定資産_全店共通": {"H102200": "60", "S202100": "40"},
			},
			rows: 2,
		},
		{
			name: "no target for the anchor prefix",
			locationCommon: []Tagged{
				tagged("O500100", faAsset, location, "700"),
			},
			weights:    weights("H102200", 1),
			rows:       0,
			diagnostic: `starts with "O50"`,
		},
		{
			name: "negative net",
			storeCommon: []Tagged{
				tagged("H100000", wcLiability, store, "1000"),
			},
			weights: weights("H102200", 3, "S202100", 1),
			want: map[string]map[string]string{
				"運転資本_全店共通": {"H102200": "-750", "S202100": "-250"},
			},
			rows: 2,
		},
		{
			name:    "nothing to allocate",
			weights: weights("H102200", 1),
			rows:    0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ratios, _ := NewRatioTable(tc.weights, cfg, aug24)
			got, ds := NewAllocator(cfg).Allocate(tc.storeCommon, tc.locationCommon, ratios, aug24)
			if len(got) != tc.rows {
				t.Fatalf("got %d allocated rows, want %d: %+v", len(got), tc.rows, got)
			}
			for class2, depts := range tc.want {
				byDept := amounts(got, class2)
				if len(byDept) != len(depts) {
					t.Errorf("%s: got %d departments, want %d", class2, len(byDept), len(depts))
				}
				for dept, want := range depts {
					if a, ok := byDept[dept]; !ok || !a.Equal(D(want)) {
						t.Errorf("%s %s = %s, want %s", class2, dept, a, want)
					}
				}
			}
			for _, r := range got {
				if r.Date != aug24 || r.AccountCode != "" || r.AccountName != "" || r.Class1 == "" {
					t.Errorf("malformed allocated record %+v", r)
				}
			}
			if tc.diagnostic != "" && !containsMessage(ds, tc.diagnostic) {
				t.Errorf("no diagnostic containing %q in %v", tc.diagnostic, ds)
			}
			if errs := ds.Filter(Error); len(errs) > 0 {
				t.Errorf("unexpected errors: %v", errs)
			}
		})
	}
}

func containsMessage(ds Diagnostics, substr string) bool {
	for _, d := range ds {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func TestAllocateIdempotent(t *testing.T) {
	cfg := DefaultConfig().Allocation
	store := []Tagged{
		tagged("H100000", wcAsset, cfg.StoreCommon, "1234.56"),
		tagged("H100000", faLiability, cfg.StoreCommon, "78.9"),
	}
	location := []Tagged{
		tagged("H100100", wcAsset, cfg.LocationCommon, "333"),
		tagged("F600100", faAsset, cfg.LocationCommon, "1000"),
	}
	ratios, _ := NewRatioTable(weights("H102200", 7, "H101100", 3, "F602100", 11, "F601100", 13, "S202100", 1), cfg, aug24)

	a := NewAllocator(cfg)
	first, _ := a.Allocate(store, location, ratios, aug24)
	second, _ := a.Allocate(store, location, ratios, aug24)
	if len(first) == 0 {
		t.Fatal("nothing allocated")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs differ:\n%+v\n%+v", first, second)
	}
}

func TestAllocateTotals(t *testing.T) {
	// Allocated rows of a pair add up to its net subtotal.
	cfg := DefaultConfig().Allocation
	store := []Tagged{
		tagged("H100000", wcAsset, cfg.StoreCommon, "1000"),
		tagged("H100000", wcLiability, cfg.StoreCommon, "1"),
	}
	ratios, _ := NewRatioTable(weights("H102200", 1, "S202100", 1, "O502100", 1, "F602100", 1), cfg, aug24)
	got, _ := NewAllocator(cfg).Allocate(store, nil, ratios, aug24)
	if total := Total(Records(got)); !total.Equal(D("999")) {
		t.Errorf("allocated total = %s, want 999", total)
	}
}

func TestGuard(t *testing.T) {
	var ds Diagnostics
	ran := 0
	guard(&ds, "first", func() error { panic("boom") })
	guard(&ds, "second", func() error { return errors.New("bad ratio") })
	guard(&ds, "third", func() error { ran++; return nil })

	if ran != 1 {
		t.Error("work after a failure did not run")
	}
	errs := ds.Filter(Error)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), ds)
	}
	if !strings.Contains(errs[0].Message, "first failed: boom") || !strings.Contains(errs[1].Message, "second failed: bad ratio") {
		t.Errorf("unexpected messages: %v", errs)
	}
}

func TestDistributeRejectsUnnamedDepartment(t *testing.T) {
	rows := []RatioRow{{DeptCode: "H102200", Global: D("1")}, {Global: D("0")}}
	if _, err := distribute(D("10"), rows, globalRatio, "c1", "c2", aug24); err == nil {
		t.Error("distribute() accepted a ratio row without department")
	}
	if got, err := distribute(decimal.Zero, rows, globalRatio, "c1", "c2", aug24); err != nil || got != nil {
		t.Errorf("distribute() of zero = %v, %v; want nothing", got, err)
	}
}
