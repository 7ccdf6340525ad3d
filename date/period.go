package date

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PeriodFormat is the user facing format of a closing period.
const PeriodFormat = "2006/01"

var periodPattern = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})$`)

// ParsePeriod parses a closing period written "YYYY/MM" and returns the first
// day of that month.
func ParsePeriod(p string) (Date, error) {
	m := periodPattern.FindStringSubmatch(strings.TrimSpace(p))
	if m == nil {
		return Date{}, fmt.Errorf("invalid period %q want format YYYY/MM", p)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("invalid period %q: month %d out of range", p, month)
	}
	return New(year, time.Month(month), 1), nil
}

// Period formats d as a closing period "YYYY/MM".
func (d Date) Period() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(PeriodFormat)
}

var monthColumnPattern = regexp.MustCompile(`^(\d{4})年(\d{1,2})月度?$`)

// ParseMonthColumn parses the month header of a transition table, e.g.
// "2024年08月度", into the first day of that month.
func ParseMonthColumn(col string) (Date, error) {
	m := monthColumnPattern.FindStringSubmatch(strings.TrimSpace(col))
	if m == nil {
		return Date{}, fmt.Errorf("invalid month column %q want format like %q", col, "2024年08月度")
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("invalid month column %q: month %d out of range", col, month)
	}
	return New(year, time.Month(month), 1), nil
}
