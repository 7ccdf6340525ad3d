package mda

import (
	"github.com/shopspring/decimal"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

// aug24 is the closing period used by most tests.
var aug24 = date.New(2024, 8, 1)

// D is a helper for tests to create a decimal from a literal.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// tagged is a helper for tests to create a tagged record of the closing period.
func tagged(dept, class2, location string, amount string) Tagged {
	return Tagged{
		Record:   Record{Date: aug24, DeptCode: dept, Amount: D(amount)},
		Class2:   class2,
		Location: location,
	}
}

// weights is a helper for tests to create ratio weights from dept/weight pairs.
func weights(pairs ...any) []Weight {
	var ws []Weight
	for i := 0; i+1 < len(pairs); i += 2 {
		ws = append(ws, Weight{DeptCode: pairs[i].(string), Raw: decimal.NewFromInt(int64(pairs[i+1].(int)))})
	}
	return ws
}
