package mda

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yanagawa000/ManagementDataAnalysis/date"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

// Config holds every fixed table of the extract: input file names, partition
// labels, location groups, allocation anchors and classification literals.
type Config struct {
	Files      Files            `yaml:"files"`
	Allocation AllocationConfig `yaml:"allocation"`
	Valuation  ValuationConfig  `yaml:"valuation"`
}

// Files are the input file names. Source files are relative to the data
// directory, the two static tables to the tables directory.
type Files struct {
	TrialBalance   string `yaml:"trial_balance"`
	CreditBalance  string `yaml:"credit_balance"`
	Ledger         string `yaml:"ledger"`
	Inventory      string `yaml:"inventory"`
	NotesPayable   string `yaml:"notes_payable"`
	Ratio          string `yaml:"ratio"`
	Classification string `yaml:"classification"`
	Location       string `yaml:"location"`
}

// LocationGroup is a physical location and the departments sharing its
// location-common balances.
type LocationGroup struct {
	Name        string   `yaml:"name"`
	Departments []string `yaml:"departments"`
}

// ClassPair is an asset/liability pair of class2 tags whose net subtotal is
// allocated, and the literals stamped on the allocated rows.
type ClassPair struct {
	Name           string `yaml:"name"`
	Asset          string `yaml:"asset"`
	Liability      string `yaml:"liability"`
	Class1         string `yaml:"class1"`
	StoreClass2    string `yaml:"store_class2"`
	LocationClass2 string `yaml:"location_class2"`
}

// AllocationConfig configures the partitioning and the allocation engine.
type AllocationConfig struct {
	StoreCommon    string          `yaml:"store_common"`
	LocationCommon string          `yaml:"location_common"`
	PrefixLength   int             `yaml:"prefix_length"`
	Anchors        []string        `yaml:"anchors"`
	Groups         []LocationGroup `yaml:"groups"`
	Pairs          []ClassPair     `yaml:"pairs"`
}

// ValuationConfig is where the inventory valuation record is booked.
type ValuationConfig struct {
	DeptCode    string `yaml:"dept_code"`
	DeptName    string `yaml:"dept_name"`
	AccountCode string `yaml:"account_code"`
	AccountName string `yaml:"account_name"`
}

// DefaultConfig returns the embedded configuration.
func DefaultConfig() Config {
	var c Config
	if err := yaml.Unmarshal(defaultConfig, &c); err != nil {
		panic("invalid embedded config.yaml: " + err.Error())
	}
	return c
}

// LoadConfig reads a YAML configuration file on top of the defaults: keys
// absent from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

// Validate checks the structural consistency of the configuration.
func (c Config) Validate() error {
	a := c.Allocation
	var errs []error
	if a.StoreCommon == "" || a.LocationCommon == "" {
		errs = append(errs, errors.New("allocation: store_common and location_common labels are required"))
	} else if a.StoreCommon == a.LocationCommon {
		errs = append(errs, fmt.Errorf("allocation: store_common and location_common are both %q", a.StoreCommon))
	}
	if a.PrefixLength <= 0 {
		errs = append(errs, fmt.Errorf("allocation: prefix_length must be positive, got %d", a.PrefixLength))
	}
	if len(a.Groups) == 0 {
		errs = append(errs, errors.New("allocation: at least one location group is required"))
	}
	seen := make(map[string]string)
	for _, g := range a.Groups {
		if len(g.Departments) == 0 {
			errs = append(errs, fmt.Errorf("allocation: group %q has no department", g.Name))
		}
		for _, d := range g.Departments {
			if other, ok := seen[d]; ok {
				errs = append(errs, fmt.Errorf("allocation: department %q is in both %q and %q", d, other, g.Name))
			}
			seen[d] = g.Name
		}
	}
	for _, anchor := range a.Anchors {
		prefix := a.Prefix(anchor)
		found := false
		for d := range seen {
			if strings.HasPrefix(d, prefix) {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("allocation: anchor %q matches no department of a location group", anchor))
		}
	}
	for _, p := range a.Pairs {
		if p.Asset == "" || p.Liability == "" {
			errs = append(errs, fmt.Errorf("allocation: pair %q needs asset and liability tags", p.Name))
		}
	}
	return errors.Join(errs...)
}

// GroupOf returns the location group of a department, if any.
func (a AllocationConfig) GroupOf(dept string) (string, bool) {
	for _, g := range a.Groups {
		for _, d := range g.Departments {
			if d == dept {
				return g.Name, true
			}
		}
	}
	return "", false
}

// Prefix returns the department family prefix of an anchor code.
func (a AllocationConfig) Prefix(dept string) string {
	if len(dept) <= a.PrefixLength {
		return dept
	}
	return dept[:a.PrefixLength]
}

// Resolve returns the path of a configured file name inside dir for the
// closing period. Glob patterns resolve to the last match in lexical order,
// which is the most recent export for the usual dated names. When nothing
// matches, the unresolved path is returned so that opening it reports the
// missing file.
func Resolve(dir, name string, period date.Date) string {
	name = strings.ReplaceAll(name, "{yyyymm}", period.Format("200601"))
	p := filepath.Join(dir, name)
	if !strings.ContainsAny(name, "*?[") {
		return p
	}
	matches, err := filepath.Glob(p)
	if err != nil || len(matches) == 0 {
		return p
	}
	sort.Strings(matches)
	return matches[len(matches)-1]
}
