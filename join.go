package mda

import "strings"

const stageJoin = "join"

// Classification is one row of the account classification table.
type Classification struct {
	AccountCode string
	Class1      string
	Class2      string
	Class3      string
}

// Location is one row of the department location table.
type Location struct {
	DeptCode string
	DeptName string
	Location string
}

// normalizeCode is the string normalization applied to both sides of a join.
func normalizeCode(code string) string { return strings.TrimSpace(code) }

// classIndex indexes classifications by account code, first row wins.
func classIndex(classes []Classification, ds *Diagnostics) map[string]Classification {
	index := make(map[string]Classification, len(classes))
	for _, c := range classes {
		key := normalizeCode(c.AccountCode)
		if _, ok := index[key]; ok {
			ds.Warnf(stageJoin, "duplicate classification for account %q, keeping the first one", key)
			continue
		}
		index[key] = c
	}
	return index
}

// locationIndex indexes locations by department code, first row wins.
func locationIndex(locations []Location, ds *Diagnostics) map[string]Location {
	index := make(map[string]Location, len(locations))
	for _, l := range locations {
		key := normalizeCode(l.DeptCode)
		if _, ok := index[key]; ok {
			ds.Warnf(stageJoin, "duplicate location for department %q, keeping the first one", key)
			continue
		}
		index[key] = l
	}
	return index
}

// Tag attaches class1/2/3 (by account code) and the location (by department
// code) to every record. Unmatched records keep empty tags: not every account
// or department is classified, so unmatched rows are only counted in an Info
// diagnostic.
func Tag(records []Record, classes []Classification, locations []Location) ([]Tagged, Diagnostics) {
	var ds Diagnostics
	ci := classIndex(classes, &ds)
	li := locationIndex(locations, &ds)

	tagged := make([]Tagged, len(records))
	var noClass, noLocation int
	for i, r := range records {
		t := Tagged{Record: r}
		if c, ok := ci[normalizeCode(r.AccountCode)]; ok {
			t.Class1, t.Class2, t.Class3 = c.Class1, c.Class2, c.Class3
		} else {
			noClass++
		}
		if l, ok := li[normalizeCode(r.DeptCode)]; ok {
			t.Location = l.Location
		} else {
			noLocation++
		}
		tagged[i] = t
	}
	if noClass > 0 {
		ds.Infof(stageJoin, "%d of %d records have no classification", noClass, len(records))
	}
	if noLocation > 0 {
		ds.Infof(stageJoin, "%d of %d records have no location", noLocation, len(records))
	}
	return tagged, ds
}

// attachLocations sets department name and location from the location table.
// A department absent from the table keeps the name given by its source.
func attachLocations(tagged []Tagged, locations []Location) {
	var ds Diagnostics
	li := locationIndex(locations, &ds)
	for i := range tagged {
		l, ok := li[normalizeCode(tagged[i].DeptCode)]
		if !ok {
			continue
		}
		if l.DeptName != "" {
			tagged[i].DeptName = l.DeptName
		}
		tagged[i].Location = l.Location
	}
}
