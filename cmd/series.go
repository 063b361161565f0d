package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightcast/app"
	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/pkg/export"
)

func newSeriesCmd(cfgPath *string) *cobra.Command {
	var (
		filters filterFlags
		source  sourceFlags
		format  string
	)
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the aggregated departures series the model is fitted on",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := filters.criteria()
			if err != nil {
				return err
			}
			if format != "csv" && format != "json" {
				return failure.Argument("unknown series format %q (want csv or json)", format)
			}
			cfg, gran, err := loadConfig(cmd, *cfgPath, &source)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()
			svc, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()
			pts, err := svc.Series(ctx, criteria, gran)
			if err != nil {
				return err
			}
			if format == "json" {
				return export.WriteJSON(cmd.OutOrStdout(), pts)
			}
			return export.WriteCSV(cmd.OutOrStdout(), pts)
		},
	}
	filters.bind(cmd)
	source.bind(cmd, false)
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	return cmd
}
