package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-tripdata/internal/commands/tripcmd"
	"github.com/goliatone/go-tripdata/internal/generator"
)

type generateFlags struct {
	document       string
	gazetteer      string
	out            string
	format         string
	year           string
	segment        string
	snapshotDriver string
	snapshotDSN    string
	noManifest     bool
	dryRun         bool
}

func newGenerateCmd(globals *globalFlags) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Derive itinerary and trip-meta records and sync the gazetteer",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeBuilder(globals.options(cmd))
			if err != nil {
				return err
			}
			if f.noManifest {
				rt.Config.Outputs.Manifest = false
			}

			cfg := rt.Config
			msg := tripcmd.GenerateCommand{
				Document:       pick(f.document, cfg.Inputs.Document),
				Gazetteer:      pick(f.gazetteer, cfg.Inputs.Gazetteer),
				OutputDir:      pick(f.out, cfg.Outputs.Dir),
				Format:         pick(f.format, cfg.Outputs.Format),
				FallbackYear:   f.year,
				DefaultSegment: f.segment,
				SnapshotDriver: pick(f.snapshotDriver, cfg.Snapshot.Driver),
				SnapshotDSN:    pick(f.snapshotDSN, cfg.Snapshot.DSN),
				DryRun:         f.dryRun,
			}

			out := cmd.OutOrStdout()
			handler := tripcmd.NewGenerateHandler(cfg, serviceFactory(rt), rt.Logger, func(result *generator.BuildResult) {
				printSummary(out, result)
			})
			return handler.Execute(cmd.Context(), msg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.document, "document", "", "Trip markdown document (default from config)")
	flags.StringVar(&f.gazetteer, "gazetteer", "", "Locations gazetteer JSON file (default from config)")
	flags.StringVarP(&f.out, "out", "o", "", "Output directory for generated files")
	flags.StringVar(&f.format, "format", "", "Output format (json, ts)")
	flags.StringVar(&f.year, "year", "", "Fallback year when the document does not state one")
	flags.StringVar(&f.segment, "segment", "", "Segment assigned before the first schedule base")
	flags.StringVar(&f.snapshotDriver, "snapshot-driver", "", "Write a relational snapshot (sqlite, postgres)")
	flags.StringVar(&f.snapshotDSN, "snapshot-dsn", "", "DSN for the snapshot database")
	flags.BoolVar(&f.noManifest, "no-manifest", false, "Skip writing the run manifest")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Build and validate everything without writing")
	return cmd
}

func pick(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
