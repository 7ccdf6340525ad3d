package renderer

import (
	"os"
	"time"

	"github.com/shopspring/decimal"
	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/pipeline"
)

// Now is the current time used in reports.
// Tests and documentation examples pin it with MDA_TESTING_NOW.
func Now() time.Time {
	if s := os.Getenv("MDA_TESTING_NOW"); s != "" {
		t, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// Report is the run report data for rendering.
type Report struct {
	RunID       string
	Period      string
	GeneratedAt string
	Sources     []SourceLine
	Partitions  PartitionSizes
	Allocations []AllocationLine
	Allocated   decimal.Decimal // total of the allocated records
	Rows        int             // rows of the final extract
	Outputs     []string
	Diagnostics []DiagnosticLine
}

// SourceLine is one input of the run.
type SourceLine struct {
	Name     string
	Path     string
	Encoding string
	Rows     int
	Status   string
}

// PartitionSizes counts the tagged records per allocation role.
type PartitionSizes struct {
	StoreCommon    int
	LocationCommon int
	Normal         int
}

// AllocationLine totals the allocated records of one class2 literal.
type AllocationLine struct {
	Class1 string
	Class2 string
	Rows   int
	Amount decimal.Decimal
}

// DiagnosticLine is one diagnostic of the run.
type DiagnosticLine struct {
	Level   string
	Stage   string
	Message string
}

// NewReport builds the report of a run. outputs are the files written, and
// minLevel filters the diagnostics shown.
func NewReport(res *pipeline.Result, outputs []string, minLevel mda.Level) *Report {
	r := &Report{
		RunID:       res.RunID,
		Period:      res.Period.Period(),
		GeneratedAt: Now().Format("2006-01-02 15:04:05"),
		Partitions: PartitionSizes{
			StoreCommon:    len(res.Partitions.StoreCommon),
			LocationCommon: len(res.Partitions.LocationCommon),
			Normal:         len(res.Partitions.Normal),
		},
		Rows:      len(res.Final),
		Outputs:   outputs,
		Allocated: decimal.Zero,
	}
	for _, s := range res.Sources {
		status := "ok"
		if !s.OK() {
			status = s.Err.Error()
		}
		r.Sources = append(r.Sources, SourceLine{
			Name:     s.Name,
			Path:     s.Path,
			Encoding: string(s.Encoding),
			Rows:     s.Rows,
			Status:   status,
		})
	}

	index := make(map[string]int)
	for _, a := range res.Allocated {
		i, ok := index[a.Class2]
		if !ok {
			i = len(r.Allocations)
			index[a.Class2] = i
			r.Allocations = append(r.Allocations, AllocationLine{Class1: a.Class1, Class2: a.Class2, Amount: decimal.Zero})
		}
		r.Allocations[i].Rows++
		r.Allocations[i].Amount = r.Allocations[i].Amount.Add(a.Amount)
		r.Allocated = r.Allocated.Add(a.Amount)
	}

	for _, d := range res.Diagnostics.Filter(minLevel) {
		r.Diagnostics = append(r.Diagnostics, DiagnosticLine{Level: d.Level.String(), Stage: d.Stage, Message: d.Message})
	}
	return r
}

// RatioTable is a ratio table for rendering.
type RatioTable struct {
	Period string
	Rows   []mda.RatioRow
	Global decimal.Decimal
}

// NewRatioTable prepares a ratio table for rendering.
func NewRatioTable(period string, t *mda.RatioTable) *RatioTable {
	rt := &RatioTable{Period: period, Global: t.GlobalSum()}
	if t != nil {
		rt.Rows = t.Rows
	}
	return rt
}
