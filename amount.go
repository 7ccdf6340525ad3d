package mda

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts an exported amount cell into a decimal.
// Thousands separators and surrounding blanks are ignored; anything that is
// still not a number coerces to zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// CleanAmount is a stricter ParseAmount for free-form cells such as "¥ 1,200円":
// every character but digits, '.' and '-' is removed before parsing.
func CleanAmount(s string) decimal.Decimal {
	return ParseAmount(nonNumeric.ReplaceAllString(s, ""))
}
