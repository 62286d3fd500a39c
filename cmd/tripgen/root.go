package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-tripdata/cmd/tripgen/internal/bootstrap"
)

type globalFlags struct {
	envFile     string
	logProvider string
	logLevel    string
	logFormat   string
}

func (g *globalFlags) options(cmd *cobra.Command) bootstrap.Options {
	return bootstrap.Options{
		EnvFile:     g.envFile,
		LogProvider: g.logProvider,
		LogLevel:    g.logLevel,
		LogFormat:   g.logFormat,
		LogWriter:   cmd.ErrOrStderr(),
	}
}

func newRootCmd() *cobra.Command {
	globals := &globalFlags{}

	root := &cobra.Command{
		Use:   "tripgen",
		Short: "Generate structured trip data from an itinerary document",
		Long: `tripgen reads a markdown trip itinerary and a curated locations gazetteer,
and derives the day-by-day itinerary and trip metadata records consumed by the
trip site. The gazetteer is synchronized with the places the document mentions.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("tripgen {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&globals.envFile, "env-file", ".env", "Env file with TRIPGEN_* overrides (missing file is ignored)")
	flags.StringVar(&globals.logProvider, "log-provider", "", "Logging provider (console, gologger)")
	flags.StringVar(&globals.logLevel, "log-level", "", "Minimum log level (trace, debug, info, warn, error)")
	flags.StringVar(&globals.logFormat, "log-format", "", "go-logger output format (json, console, pretty)")

	root.AddCommand(newGenerateCmd(globals), newValidateCmd(globals))
	return root
}
