// Command mda builds the monthly balance sheet extract.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/yanagawa000/ManagementDataAnalysis/cmd"
	"github.com/yanagawa000/ManagementDataAnalysis/docs"
)

func main() {
	// A .env file is optional, it only provides flag defaults.
	_ = godotenv.Load()

	completion().Complete("mda")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	global := map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
		"v":      predict.Nothing,
	}
	topics, _ := docs.GetAllTopics()
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"run": {
				Flags: map[string]complete.Predictor{
					"p":      predict.Something,
					"data":   predict.Dirs("*"),
					"tables": predict.Dirs("*"),
					"o":      predict.Files("*.csv"),
					"debug":  predict.Dirs("*"),
					"xlsx":   predict.Files("*.xlsx"),
					"q":      predict.Nothing,
				},
			},
			"ratio": {
				Flags: map[string]complete.Predictor{
					"p":    predict.Something,
					"data": predict.Dirs("*"),
				},
			},
			"topic": {Args: predict.Set(topics)},
		},
	}
}
