// Package export writes aggregated series for use outside the CLI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/flightcast/core/model"
)

type point struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// WriteJSON writes the series to w as a JSON array.
func WriteJSON(w io.Writer, s model.Series) error {
	out := make([]point, len(s))
	for i, p := range s {
		out[i] = point{Date: p.Date.Format(time.DateOnly), Total: p.Total}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

// WriteCSV writes the series to w in CSV format with a date,total header.
func WriteCSV(w io.Writer, s model.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "total"}); err != nil {
		return err
	}
	for _, p := range s {
		rec := []string{
			p.Date.Format(time.DateOnly),
			strconv.FormatFloat(p.Total, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
