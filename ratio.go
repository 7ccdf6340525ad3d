package mda

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

const stageRatio = "ratio"

// Weight is one department's raw allocation weight, the long form of the
// wide ratio table.
type Weight struct {
	DeptCode string
	Raw      decimal.Decimal
}

// Melt reshapes a wide table, one column per department, into weights.
// Every data row contributes one weight per column, column by column.
// Cells that are not numbers weigh zero, and unnamed columns are ignored.
func Melt(header []string, rows [][]string) []Weight {
	weights := make([]Weight, 0, len(header)*len(rows))
	for c, col := range header {
		code := strings.TrimSpace(col)
		if code == "" {
			continue
		}
		for _, row := range rows {
			var cell string
			if c < len(row) {
				cell = row[c]
			}
			weights = append(weights, Weight{DeptCode: code, Raw: ParseAmount(cell)})
		}
	}
	return weights
}

// RatioRow is a department of the ratio table with both of its ratios.
type RatioRow struct {
	DeptCode   string
	Weight     decimal.Decimal
	Date       date.Date
	Global     decimal.Decimal // share of the total weight
	Group      string          // location group name
	GroupRatio decimal.Decimal // share of the group's global ratio
}

// RatioTable is the preprocessed allocation ratio table.
type RatioTable struct {
	Rows []RatioRow
}

// NewRatioTable computes the global and group ratios of the weights.
//
// Departments outside every location group are removed before any ratio is
// computed. A zero total weight yields zero global ratios, and a group whose
// ratios sum to zero yields zero group ratios; both are reported but not
// fatal. It returns nil when no weight belongs to a location group.
func NewRatioTable(weights []Weight, cfg AllocationConfig, on date.Date) (*RatioTable, Diagnostics) {
	var ds Diagnostics

	rows := make([]RatioRow, 0, len(weights))
	dropped := 0
	for _, w := range weights {
		group, ok := cfg.GroupOf(w.DeptCode)
		if !ok {
			dropped++
			continue
		}
		rows = append(rows, RatioRow{DeptCode: w.DeptCode, Weight: w.Raw, Date: on, Group: group})
	}
	if dropped > 0 {
		ds.Infof(stageRatio, "%d departments outside the location groups were excluded", dropped)
	}
	if len(rows) == 0 {
		ds.Warnf(stageRatio, "no department of the ratio table belongs to a location group")
		return nil, ds
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Weight)
	}
	if total.IsZero() {
		ds.Warnf(stageRatio, "total weight is 0, ratios cannot be computed and are set to 0")
		for i := range rows {
			rows[i].Global = decimal.Zero
		}
	} else {
		for i := range rows {
			rows[i].Global = rows[i].Weight.Div(total)
		}
	}

	groupSum := make(map[string]decimal.Decimal)
	for _, r := range rows {
		groupSum[r.Group] = groupSum[r.Group].Add(r.Global)
	}
	for i := range rows {
		sum := groupSum[rows[i].Group]
		if sum.IsZero() {
			rows[i].GroupRatio = decimal.Zero
			continue
		}
		rows[i].GroupRatio = rows[i].Global.Div(sum)
	}
	for _, g := range cfg.Groups {
		if sum, ok := groupSum[g.Name]; ok && sum.IsZero() && !total.IsZero() {
			ds.Warnf(stageRatio, "group %q has a zero weight, its group ratios are set to 0", g.Name)
		}
	}
	return &RatioTable{Rows: rows}, ds
}

// Len returns the number of departments in the table.
func (t *RatioTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// WithPrefix returns the rows whose department code starts with prefix.
func (t *RatioTable) WithPrefix(prefix string) []RatioRow {
	if t == nil {
		return nil
	}
	var rows []RatioRow
	for _, r := range t.Rows {
		if strings.HasPrefix(r.DeptCode, prefix) {
			rows = append(rows, r)
		}
	}
	return rows
}

// GlobalSum returns the sum of the global ratios.
func (t *RatioTable) GlobalSum() decimal.Decimal {
	sum := decimal.Zero
	if t == nil {
		return sum
	}
	for _, r := range t.Rows {
		sum = sum.Add(r.Global)
	}
	return sum
}

// GroupSums returns the sum of the group ratios per location group.
func (t *RatioTable) GroupSums() map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	if t == nil {
		return sums
	}
	for _, r := range t.Rows {
		sums[r.Group] = sums[r.Group].Add(r.GroupRatio)
	}
	return sums
}
