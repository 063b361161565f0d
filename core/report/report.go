// Package report renders prediction results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
)

// Format selects how a result is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", failure.Argument("unknown output format %q (want text or json)", s)
}

// Round2 rounds to two decimals, halves away from zero.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Text writes the two-line report.
func Text(w io.Writer, r model.PredictionResult) error {
	_, err := fmt.Fprintf(w, "Predicted Total Flights on closest date %s: %.2f\nPrediction Range: %.2f to %.2f\n",
		r.NearestDate.Format(time.DateOnly), Round2(r.Value), Round2(r.Lower), Round2(r.Upper))
	return err
}

type jsonResult struct {
	TargetDate    string  `json:"target_date"`
	NearestDate   string  `json:"nearest_date"`
	Predicted     float64 `json:"predicted_total"`
	Lower         float64 `json:"lower_bound"`
	Upper         float64 `json:"upper_bound"`
	Model         string  `json:"model"`
	Granularity   string  `json:"granularity"`
	IntervalWidth float64 `json:"interval_width"`
	Points        int     `json:"points"`
}

// JSON writes the result as an indented JSON object.
func JSON(w io.Writer, r model.PredictionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		TargetDate:    r.TargetDate.Format(time.DateOnly),
		NearestDate:   r.NearestDate.Format(time.DateOnly),
		Predicted:     Round2(r.Value),
		Lower:         Round2(r.Lower),
		Upper:         Round2(r.Upper),
		Model:         r.Model,
		Granularity:   r.Granularity.String(),
		IntervalWidth: r.IntervalWidth,
		Points:        r.Points,
	})
}

// Write renders r in the requested format.
func Write(w io.Writer, f Format, r model.PredictionResult) error {
	if f == FormatJSON {
		return JSON(w, r)
	}
	return Text(w, r)
}
