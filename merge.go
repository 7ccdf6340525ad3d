package mda

import (
	"cmp"
	"slices"
)

// Merge concatenates the normal records and the allocated records, then
// attaches department names and locations from the location table once and
// sorts the result.
//
// The location of normal records is recomputed from the table, like the one
// of allocated records, so both carry the same metadata.
func Merge(normal, allocated []Tagged, locations []Location) []Tagged {
	merged := make([]Tagged, 0, len(normal)+len(allocated))
	for _, r := range normal {
		r.Location = ""
		merged = append(merged, r)
	}
	merged = append(merged, allocated...)
	attachLocations(merged, locations)
	Sort(merged)
	return merged
}

// Sort sorts records by date then department code. Missing dates and empty
// department codes sort last; ties keep their input order.
func Sort(records []Tagged) {
	slices.SortStableFunc(records, func(a, b Tagged) int {
		if c := compareMissingLast(a.Date.IsZero(), b.Date.IsZero()); c != 0 {
			return c
		}
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := compareMissingLast(a.DeptCode == "", b.DeptCode == ""); c != 0 {
			return c
		}
		return cmp.Compare(a.DeptCode, b.DeptCode)
	})
}

// compareMissingLast orders present values before missing ones.
func compareMissingLast(aMissing, bMissing bool) int {
	switch {
	case aMissing == bMissing:
		return 0
	case aMissing:
		return 1
	default:
		return -1
	}
}
