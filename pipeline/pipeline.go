// Package pipeline runs the monthly extract end to end: it reads every
// export of the period, tags and partitions the records, allocates the
// common balances and merges the final table.
package pipeline

import (
	"errors"
	"io/fs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
	"github.com/yanagawa000/ManagementDataAnalysis/source"
)

// Input names, used as diagnostic stages and in the run report.
const (
	TrialBalance   = "trial-balance"
	CreditBalance  = "credit-balance"
	Ledger         = "ledger"
	Inventory      = "inventory"
	Valuation      = "valuation"
	NotesPayable   = "notes-payable"
	Ratio          = "ratio"
	Classification = "classification"
	Location       = "location"
)

// Options configures a run.
type Options struct {
	Period    date.Date // first day of the closing month
	DataDir   string    // directory of the period exports
	TablesDir string    // directory of the static tables
	Config    mda.Config
}

// Source is the outcome of reading one input.
type Source struct {
	Name     string
	Path     string
	Encoding source.Encoding
	Rows     int
	Err      error
}

// OK reports whether the input was read.
func (s Source) OK() bool { return s.Err == nil }

// Result is everything a run produced.
type Result struct {
	RunID       string
	Period      date.Date
	Sources     []Source
	Records     []mda.Record   // records of every source, before tagging
	Partitions  mda.Partitions // tagged records by allocation role
	Ratios      *mda.RatioTable
	Allocated   []mda.Tagged
	Final       []mda.Tagged
	Diagnostics mda.Diagnostics
}

// runner carries the state of one run.
type runner struct {
	opts Options
	res  *Result
}

// Run executes the pipeline. It does not fail: a missing or unreadable input
// only removes that input's contribution and is reported in the result's
// diagnostics.
func Run(opts Options) *Result {
	r := newRunner(opts)
	cfg := opts.Config
	ds := &r.res.Diagnostics

	var merchandiseBook *decimal.Decimal
	if text, ok := r.read(TrialBalance, cfg.Files.TrialBalance, false); ok {
		tb, tds, err := source.ParseTrialBalance(text)
		ds.Append(tds)
		if r.usable(TrialBalance, err) {
			records := tb.Period(opts.Period)
			if total, ok := tb.MerchandiseTotal(opts.Period); ok {
				merchandiseBook = &total
			}
			if len(records) == 0 {
				ds.Warnf(TrialBalance, "no record for period %s", opts.Period.Period())
			}
			r.add(TrialBalance, records)
		}
	}

	if text, ok := r.read(CreditBalance, cfg.Files.CreditBalance, false); ok {
		records, _, cds, err := source.ParseCreditBalance(text)
		ds.Append(cds)
		if r.usable(CreditBalance, err) {
			r.add(CreditBalance, records)
		}
	}

	var ledgerMerchandise *mda.Record
	if text, ok := r.read(Ledger, cfg.Files.Ledger, false); ok {
		l, lds, err := source.ParseLedger(text)
		ds.Append(lds)
		if r.usable(Ledger, err) {
			ledgerMerchandise = l.Merchandise
			r.add(Ledger, l.Records())
		}
	}

	var inventory []mda.Record
	var inventoryDate date.Date
	if text, ok := r.read(Inventory, cfg.Files.Inventory, false); ok {
		records, on, ids, err := source.ParseInventory(text)
		ds.Append(ids)
		if r.usable(Inventory, err) {
			inventory, inventoryDate = records, on
			r.add(Inventory, records)
		}
	}

	valuation, vds := mda.Valuation(cfg.Valuation, mda.ValuationInput{
		Period:          opts.Period,
		MerchandiseBook: merchandiseBook,
		LedgerImport:    ledgerMerchandise,
		Inventory:       inventory,
		InventoryDate:   inventoryDate,
	})
	ds.Append(vds)
	if valuation != nil {
		r.res.Sources = append(r.res.Sources, Source{Name: Valuation})
		r.add(Valuation, []mda.Record{*valuation})
	}

	if text, ok := r.read(NotesPayable, cfg.Files.NotesPayable, false); ok {
		records, nds, err := source.ParseNotesPayable(text, opts.Period)
		ds.Append(nds)
		if r.usable(NotesPayable, err) {
			r.add(NotesPayable, records)
		}
	}

	var classes []mda.Classification
	if text, ok := r.read(Classification, cfg.Files.Classification, true); ok {
		var err error
		classes, err = source.ParseClassifications(text)
		if r.usable(Classification, err) {
			r.count(Classification, len(classes))
		}
	}
	var locations []mda.Location
	if text, ok := r.read(Location, cfg.Files.Location, true); ok {
		var err error
		locations, err = source.ParseLocations(text)
		if r.usable(Location, err) {
			r.count(Location, len(locations))
		}
	}

	r.ratios()

	tagged, jds := mda.Tag(r.res.Records, classes, locations)
	ds.Append(jds)
	r.res.Partitions = mda.Split(tagged, cfg.Allocation)

	allocated, ads := mda.NewAllocator(cfg.Allocation).Allocate(
		r.res.Partitions.StoreCommon, r.res.Partitions.LocationCommon, r.res.Ratios, opts.Period)
	ds.Append(ads)
	r.res.Allocated = allocated

	r.res.Final = mda.Merge(r.res.Partitions.Normal, allocated, locations)
	if len(r.res.Final) == 0 {
		ds.Errorf("merge", "no source produced any record")
	}
	return r.res
}

// Ratios only reads and preprocesses the allocation ratio table.
func Ratios(opts Options) *Result {
	r := newRunner(opts)
	r.ratios()
	return r.res
}

func newRunner(opts Options) *runner {
	return &runner{
		opts: opts,
		res:  &Result{RunID: uuid.NewString(), Period: opts.Period},
	}
}

func (r *runner) ratios() {
	text, ok := r.read(Ratio, r.opts.Config.Files.Ratio, false)
	if !ok {
		return
	}
	weights, err := source.ParseRatioWeights(text)
	if !r.usable(Ratio, err) {
		return
	}
	ratios, ds := mda.NewRatioTable(weights, r.opts.Config.Allocation, r.opts.Period)
	r.res.Diagnostics.Append(ds)
	r.res.Ratios = ratios
	r.count(Ratio, ratios.Len())
}

// read resolves and reads one input file, recording its Source entry.
// Static tables are looked up in the tables directory.
func (r *runner) read(name, file string, static bool) ([]byte, bool) {
	dir := r.opts.DataDir
	if static {
		dir = r.opts.TablesDir
	}
	path := mda.Resolve(dir, file, r.opts.Period)
	r.res.Sources = append(r.res.Sources, Source{Name: name, Path: path})
	text, enc, err := source.ReadFile(path)
	if err != nil {
		r.usable(name, err)
		return nil, false
	}
	r.source(name).Encoding = enc
	return text, true
}

// usable records err against the input and reports whether the input is
// still usable (err is nil).
func (r *runner) usable(name string, err error) bool {
	if err == nil {
		return true
	}
	r.source(name).Err = err
	ds := &r.res.Diagnostics
	var missing *source.MissingColumnsError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ds.Warnf(name, "file not found, input skipped: %v", err)
	case errors.As(err, &missing):
		ds.Errorf(name, "%v, input skipped", err)
	case errors.Is(err, source.ErrEmpty):
		ds.Warnf(name, "%v, input skipped", err)
	default:
		ds.Errorf(name, "%v, input skipped", err)
	}
	return false
}

// add appends the records of an input.
func (r *runner) add(name string, records []mda.Record) {
	r.res.Records = append(r.res.Records, records...)
	r.count(name, len(records))
}

func (r *runner) count(name string, n int) {
	s := r.source(name)
	s.Rows += n
	r.res.Diagnostics.Infof(name, "%d rows", s.Rows)
}

// source returns the latest Source entry of that name.
func (r *runner) source(name string) *Source {
	for i := len(r.res.Sources) - 1; i >= 0; i-- {
		if r.res.Sources[i].Name == name {
			return &r.res.Sources[i]
		}
	}
	r.res.Sources = append(r.res.Sources, Source{Name: name})
	return &r.res.Sources[len(r.res.Sources)-1]
}
