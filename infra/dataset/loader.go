// Package dataset loads the departures report into flight records. CSV and
// spreadsheet inputs are both normalised into a gota DataFrame of string
// columns, so schema checks and row decoding share one path.
package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/frame"
	"github.com/kilianp07/flightcast/core/logger"
	"github.com/kilianp07/flightcast/core/model"
)

// Loader reads departures reports.
type Loader struct {
	cfg Config
	log logger.Logger
}

// NewLoader returns a Loader using cfg. Defaults are applied to a copy.
func NewLoader(cfg Config, log logger.Logger) *Loader {
	cfg.SetDefaults()
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Loader{cfg: cfg, log: log}
}

// Load reads the configured file. Every failure is a DataError.
func (l *Loader) Load() ([]model.FlightRecord, error) {
	path := l.cfg.Path
	var (
		df  dataframe.DataFrame
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		df, err = readCSVFile(path)
	case ".xlsx", ".xlsm":
		df, err = readXLSXFile(path, l.cfg.Sheet)
	default:
		return nil, failure.Data(nil, "unsupported data format %q for %s", ext, path)
	}
	if err != nil {
		return nil, err
	}
	recs, err := Decode(df, l.cfg.DateLayouts)
	if err != nil {
		return nil, failure.Data(err, "decode %s", path)
	}
	l.log.Infof("loaded %d records from %s", len(recs), path)
	return recs, nil
}

// LoadFrame reads the configured file and returns the validated records as a
// typed flight frame.
func (l *Loader) LoadFrame() (dataframe.DataFrame, error) {
	recs, err := l.Load()
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df := frame.FromRecords(recs)
	if df.Err != nil {
		return dataframe.DataFrame{}, failure.Data(df.Err, "build frame")
	}
	return df, nil
}

func readCSVFile(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, failure.Data(err, "open data file")
	}
	defer func() { _ = f.Close() }()
	df, err := frameFromCSV(f)
	if err != nil {
		return dataframe.DataFrame{}, failure.Data(err, "read %s", path)
	}
	return df, nil
}

func frameFromCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
	)
	return df, df.Err
}

func readXLSXFile(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, failure.Data(err, "open data file")
	}
	defer func() { _ = f.Close() }()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, failure.Data(nil, "%s has no worksheet", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, failure.Data(err, "read sheet %s", sheet)
	}
	if len(rows) < 1 {
		return dataframe.DataFrame{}, failure.Data(nil, "sheet %s is empty", sheet)
	}
	// GetRows trims trailing empty cells; gota needs rectangular input.
	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			rows[i] = append(row, make([]string, width-len(row))...)
		} else if len(row) > width {
			rows[i] = row[:width]
		}
	}
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, failure.Data(df.Err, "read sheet %s", sheet)
	}
	return df, nil
}

// CheckSchema returns an error naming the required columns absent from df.
func CheckSchema(df dataframe.DataFrame) error {
	have := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		have[n] = true
	}
	var missing []string
	for _, c := range Columns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}

// Decode converts the required columns of df into records. Row numbers in
// errors are 1-based data rows, not counting the header.
func Decode(df dataframe.DataFrame, layouts []string) ([]model.FlightRecord, error) {
	if err := CheckSchema(df); err != nil {
		return nil, err
	}
	cols := make([][]string, len(Columns))
	for i, c := range Columns {
		cols[i] = df.Col(c).Records()
	}
	n := df.Nrow()
	out := make([]model.FlightRecord, 0, n)
	for row := 0; row < n; row++ {
		cell := func(i int) string { return strings.TrimSpace(cols[i][row]) }
		date, err := parseDate(cell(0), layouts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", row+1, ColDate, err)
		}
		scheduled, err := parseFlag(cell(6))
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", row+1, ColScheduled, err)
		}
		charter, err := parseFlag(cell(7))
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", row+1, ColCharter, err)
		}
		total, err := parseCount(cell(8))
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", row+1, ColTotal, err)
		}
		out = append(out, model.FlightRecord{
			Date:         date,
			Origin:       cell(1),
			Destination:  cell(2),
			Airline:      cell(3),
			CarrierGroup: cell(4),
			FlightType:   cell(5),
			Scheduled:    scheduled,
			Charter:      charter,
			Total:        total,
		})
	}
	return out, nil
}

func parseDate(s string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q with layouts %v", s, layouts)
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("expected 0 or 1, got %q", s)
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("expected an integer count, got %q", s)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
