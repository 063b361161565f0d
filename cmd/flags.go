package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/flightcast/config"
	"github.com/kilianp07/flightcast/core/factory"
	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
)

// filterFlags holds the equality filters shared by every command.
type filterFlags struct {
	origin       string
	destination  string
	airline      string
	carrierGroup string
	flightType   string
	scheduled    string
	charter      string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.origin, "origin", "", "origin airport code")
	fs.StringVar(&f.destination, "destination", "", "destination airport code")
	fs.StringVar(&f.airline, "airline", "", "airline carrier code")
	fs.StringVar(&f.carrierGroup, "carriergroup", "", "carrier group code")
	fs.StringVar(&f.flightType, "flight_type", "", "flight type")
	fs.StringVar(&f.scheduled, "scheduled", "", "scheduled flag (0 or 1)")
	fs.StringVar(&f.charter, "charter", "", "charter flag (0 or 1)")
}

func (f *filterFlags) criteria() (model.FilterCriteria, error) {
	c := model.FilterCriteria{
		Origin:       f.origin,
		Destination:  f.destination,
		Airline:      f.airline,
		CarrierGroup: f.carrierGroup,
		FlightType:   f.flightType,
	}
	var err error
	if c.Scheduled, err = parseFlag("scheduled", f.scheduled); err != nil {
		return model.FilterCriteria{}, err
	}
	if c.Charter, err = parseFlag("charter", f.charter); err != nil {
		return model.FilterCriteria{}, err
	}
	return c, nil
}

func parseFlag(name, v string) (*bool, error) {
	switch v {
	case "":
		return nil, nil
	case "0":
		return model.Bool(false), nil
	case "1":
		return model.Bool(true), nil
	}
	return nil, failure.Argument("--%s must be 0 or 1, got %q", name, v)
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, failure.Argument("--date is required (YYYY-MM-DD)")
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, failure.Argument("invalid --date %q: expected YYYY-MM-DD", v)
	}
	return t, nil
}

// sourceFlags override the data and model sections of the configuration.
type sourceFlags struct {
	data        string
	granularity string
	modelType   string
	interval    float64
	verbose     bool
}

func (s *sourceFlags) bind(cmd *cobra.Command, withModel bool) {
	fs := cmd.Flags()
	fs.StringVar(&s.data, "data", "", "departures file (.csv or .xlsx)")
	fs.StringVar(&s.granularity, "granularity", "", "aggregation bucket: day or month")
	fs.BoolVarP(&s.verbose, "verbose", "v", false, "debug logging on stderr")
	if withModel {
		fs.StringVar(&s.modelType, "model", "", "model family: linear or polynomial")
		fs.Float64Var(&s.interval, "interval", 0, "prediction range coverage in (0,1)")
	}
}

// apply merges the flags set on cmd into cfg.
func (s *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if s.data != "" {
		cfg.Data.Path = s.data
	}
	if s.granularity != "" {
		if _, err := model.ParseGranularity(s.granularity); err != nil {
			return failure.Argument("%v", err)
		}
		cfg.Model.Granularity = s.granularity
	}
	if s.modelType != "" && s.modelType != cfg.Model.Family.Type {
		cfg.Model.Family = factory.ModuleConfig{Type: s.modelType}
	}
	if fs.Changed("interval") {
		if s.interval <= 0 || s.interval >= 1 {
			return failure.Argument("--interval must be in (0,1), got %g", s.interval)
		}
		cfg.Model.IntervalWidth = s.interval
	}
	if s.verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}
