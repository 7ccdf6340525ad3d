package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
	"github.com/yanagawa000/ManagementDataAnalysis/pipeline"
	"github.com/yanagawa000/ManagementDataAnalysis/renderer"
)

// runCmd holds the flags for the 'run' subcommand.
type runCmd struct {
	period   string
	dataDir  string
	tables   string
	output   string
	debugDir string
	xlsx     string
	quiet    bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "build the monthly balance sheet extract" }
func (*runCmd) Usage() string {
	return `mda run [-p <YYYY/MM>] [-data <dir>] [-tables <dir>] [-o <file>] [-debug <dir>] [-xlsx <file>]

  Read the exports of the closing period, allocate the common balances
  and write the merged extract. The period is asked for when -p is omitted.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "closing period (YYYY/MM)")
	f.StringVar(&c.dataDir, "data", os.Getenv(EnvDataDir), "directory of the period exports. Defaults to \"<YYYY>年<M>月度データ\"")
	f.StringVar(&c.tables, "tables", envOr(EnvTables, "."), "directory of the classification and location tables")
	f.StringVar(&c.output, "o", envOr(EnvOutput, "combined_data.csv"), "extract file")
	f.StringVar(&c.debugDir, "debug", envOr(EnvDebugDir, "dbug"), "directory of the intermediate snapshots, empty to disable")
	f.StringVar(&c.xlsx, "xlsx", "", "also write the extract as an Excel workbook")
	f.BoolVar(&c.quiet, "q", false, "do not print the run report")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger := newLogger()
	res := pipeline.Run(opts)
	written, err := res.Export(pipeline.ExportOptions{
		Output:   c.output,
		XLSX:     c.xlsx,
		DebugDir: c.debugDir,
		Now:      time.Now(),
	})
	logDiagnostics(logger, res.Diagnostics)
	if errors.Is(err, mda.ErrNoRecords) {
		fmt.Fprintf(os.Stderr, "Error: nothing to write for %s, see the diagnostics above\n", opts.Period.Period())
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.quiet {
		printMarkdown(renderer.RenderReport(renderer.NewReport(res, written, minLevel())))
	}
	return subcommands.ExitSuccess
}

// options validates the flags into pipeline options.
func (c *runCmd) options() (pipeline.Options, error) {
	var opts pipeline.Options
	cfg, err := loadConfig()
	if err != nil {
		return opts, err
	}

	period, err := periodFlag(c.period)
	if err != nil {
		return opts, err
	}
	dataDir := c.dataDir
	if dataDir == "" {
		dataDir = defaultDataDir(period)
	}
	return pipeline.Options{
		Period:    period,
		DataDir:   dataDir,
		TablesDir: c.tables,
		Config:    cfg,
	}, nil
}

// periodFlag parses the period flag, asking for it on stdin when empty.
func periodFlag(p string) (date.Date, error) {
	if p == "" {
		return askPeriod(os.Stdin, os.Stdout)
	}
	return date.ParsePeriod(p)
}

// defaultDataDir is the folder name the exports of a period are usually saved in.
func defaultDataDir(period date.Date) string {
	return fmt.Sprintf("%d年%d月度データ", period.Year(), int(period.Month()))
}
