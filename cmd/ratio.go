package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yanagawa000/ManagementDataAnalysis/pipeline"
	"github.com/yanagawa000/ManagementDataAnalysis/renderer"
)

// ratioCmd prints the preprocessed allocation ratio table.
type ratioCmd struct {
	period  string
	dataDir string
}

func (*ratioCmd) Name() string     { return "ratio" }
func (*ratioCmd) Synopsis() string { return "show the allocation ratios of a period" }
func (*ratioCmd) Usage() string {
	return `mda ratio [-p <YYYY/MM>] [-data <dir>]

  Show the global and group allocation ratios computed from the ratio table.
`
}

func (c *ratioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "closing period (YYYY/MM)")
	f.StringVar(&c.dataDir, "data", os.Getenv(EnvDataDir), "directory of the period exports. Defaults to \"<YYYY>年<M>月度データ\"")
}

func (c *ratioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	period, err := periodFlag(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	dataDir := c.dataDir
	if dataDir == "" {
		dataDir = defaultDataDir(period)
	}

	res := pipeline.Ratios(pipeline.Options{Period: period, DataDir: dataDir, Config: cfg})
	logDiagnostics(newLogger(), res.Diagnostics)
	if res.Ratios.Len() == 0 {
		fmt.Fprintf(os.Stderr, "Error: no allocation ratio for %s\n", period.Period())
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderRatioTable(renderer.NewRatioTable(period.Period(), res.Ratios)))
	return subcommands.ExitSuccess
}
