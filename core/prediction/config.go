package prediction

import (
	"fmt"

	"github.com/kilianp07/flightcast/core/factory"
	"github.com/kilianp07/flightcast/core/model"
)

// DefaultIntervalWidth is the coverage of the reported prediction range.
const DefaultIntervalWidth = 0.8

// Config defines model-related settings.
type Config struct {
	// Family selects the model by registry name, e.g. {"type": "polynomial", "conf": {"degree": 2}}.
	Family factory.ModuleConfig `json:"family"`
	// IntervalWidth is the two-sided coverage of the prediction range, in (0,1).
	IntervalWidth float64 `json:"interval_width"`
	// Granularity is "day" or "month".
	Granularity string `json:"granularity"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Family.Type == "" {
		c.Family.Type = "linear"
	}
	if c.IntervalWidth == 0 {
		c.IntervalWidth = DefaultIntervalWidth
	}
	if c.Granularity == "" {
		c.Granularity = model.Daily.String()
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.IntervalWidth <= 0 || c.IntervalWidth >= 1 {
		return fmt.Errorf("interval_width must be in (0,1), got %g", c.IntervalWidth)
	}
	if _, err := model.ParseGranularity(c.Granularity); err != nil {
		return err
	}
	return nil
}
