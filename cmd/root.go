package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightcast/app"
	"github.com/kilianp07/flightcast/config"
	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
	"github.com/kilianp07/flightcast/core/report"
	"github.com/kilianp07/flightcast/infra/logger"
)

type rootOptions struct {
	cfgPath string
	date    string
	output  string
	filters filterFlags
	source  sourceFlags
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "flightcast",
		Short:         "Predict international flight departures for a date",
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, o)
		},
	}
	cmd.PersistentFlags().StringVarP(&o.cfgPath, "config", "c", "", "configuration file (default "+config.DefaultPath+" if present)")
	cmd.Flags().StringVar(&o.date, "date", "", "date to predict (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.output, "output", "text", "output format: text or json")
	o.filters.bind(cmd)
	o.source.bind(cmd, true)
	cmd.SetFlagErrorFunc(flagError)
	cmd.AddCommand(newSeriesCmd(&o.cfgPath))
	return cmd
}

var rootCmd = newRootCmd()

// Execute runs the CLI and prints any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func runPredict(cmd *cobra.Command, o *rootOptions) error {
	date, err := parseDate(o.date)
	if err != nil {
		return err
	}
	criteria, err := o.filters.criteria()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(o.output)
	if err != nil {
		return err
	}
	cfg, gran, err := loadConfig(cmd, o.cfgPath, &o.source)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	res, err := svc.Predict(ctx, app.Request{Date: date, Criteria: criteria, Granularity: gran})
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), format, res)
}

// loadConfig reads the configuration, applies flag overrides and sets up
// logging on the command's stderr.
func loadConfig(cmd *cobra.Command, path string, src *sourceFlags) (*config.Config, model.Granularity, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, 0, err
	}
	if err := src.apply(cmd, cfg); err != nil {
		return nil, 0, err
	}
	gran, err := model.ParseGranularity(cfg.Model.Granularity)
	if err != nil {
		return nil, 0, failure.Argument("%v", err)
	}
	if err := logger.Setup(cfg.Logging.Level, cmd.ErrOrStderr()); err != nil {
		return nil, 0, failure.Argument("log level: %v", err)
	}
	return cfg, gran, nil
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return failure.Argument("unexpected arguments: %v", args)
	}
	return nil
}

func flagError(_ *cobra.Command, err error) error {
	return failure.Argument("%v", err)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
