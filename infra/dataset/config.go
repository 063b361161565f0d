package dataset

import "fmt"

// DefaultPath is where the departures report is expected when nothing else
// is configured.
const DefaultPath = "data/International_Report_Departures.csv"

// Config defines where and how the departures table is read.
type Config struct {
	// Path is a .csv or .xlsx file.
	Path string `json:"path"`
	// Sheet selects the worksheet of an .xlsx file; the first sheet when empty.
	Sheet string `json:"sheet"`
	// DateLayouts are tried in order when parsing the date column.
	DateLayouts []string `json:"date_layouts"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if len(c.DateLayouts) == 0 {
		c.DateLayouts = []string{"01/02/2006", "2006-01-02", "1/2/2006"}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("data path is required")
	}
	if len(c.DateLayouts) == 0 {
		return fmt.Errorf("at least one date layout is required")
	}
	return nil
}
