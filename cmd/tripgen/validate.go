package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-tripdata/internal/commands/tripcmd"
	"github.com/goliatone/go-tripdata/internal/smoketest"
)

func newValidateCmd(globals *globalFlags) *cobra.Command {
	var dir, format string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Smoke test the generated files in an output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeBuilder(globals.options(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			handler := tripcmd.NewValidateHandler(rt.Logger, func(report *smoketest.Report) {
				smoketest.Render(out, report)
			})
			return handler.Execute(cmd.Context(), tripcmd.ValidateCommand{
				Dir:    pick(dir, rt.Config.Outputs.Dir),
				Format: format,
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory holding the generated files (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Format of the generated files (detected from the manifest when empty)")
	return cmd
}
