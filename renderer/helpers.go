package renderer

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Yen formats an amount in yen, rounded to the unit, e.g. "¥1,200".
func Yen(amount decimal.Decimal) string {
	return money.New(amount.Round(0).IntPart(), money.JPY).Display()
}

// Ratio formats a ratio as a percentage with two decimals, e.g. "12.50%".
func Ratio(r decimal.Decimal) string {
	return r.Shift(2).StringFixed(2) + "%"
}

// cell escapes a value for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
