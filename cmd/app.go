// Package cmd implements the mda command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
	mda "github.com/yanagawa000/ManagementDataAnalysis"
)

// Environment variables providing flag defaults. They can be set in a .env file.
const (
	EnvDataDir  = "MDA_DATA_DIR"
	EnvTables   = "MDA_TABLES_DIR"
	EnvOutput   = "MDA_OUTPUT"
	EnvDebugDir = "MDA_DEBUG_DIR"
	EnvConfig   = "MDA_CONFIG"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "extract")
	c.Register(&ratioCmd{}, "extract")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv(EnvConfig), "YAML configuration file overriding the embedded defaults")
var verbose = flag.Bool("v", false, "also log informational diagnostics")

// envOr returns the environment variable, or def when unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// loadConfig loads the configuration selected by the -config flag.
func loadConfig() (mda.Config, error) {
	return mda.LoadConfig(*configFile)
}

// newLogger returns the diagnostics logger, writing to stderr.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "mda"})
	logger.SetLevel(log.WarnLevel)
	if *verbose {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// logDiagnostics forwards diagnostics to the logger, the stage being a structured key.
func logDiagnostics(logger *log.Logger, ds mda.Diagnostics) {
	for _, d := range ds {
		switch d.Level {
		case mda.Error:
			logger.Error(d.Message, "stage", d.Stage)
		case mda.Warn:
			logger.Warn(d.Message, "stage", d.Stage)
		default:
			logger.Info(d.Message, "stage", d.Stage)
		}
	}
}

// minLevel is the lowest diagnostic level reported to the user.
func minLevel() mda.Level {
	if *verbose {
		return mda.Info
	}
	return mda.Warn
}

// printMarkdown renders markdown to the terminal, or prints it raw when it
// cannot be rendered.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
