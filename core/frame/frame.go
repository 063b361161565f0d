// Package frame holds validated flight records as a gota DataFrame with
// typed columns. Filtering and aggregation run on this form.
package frame

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kilianp07/flightcast/core/model"
)

// Column names of a flight frame.
const (
	ColDate         = "date"
	ColOrigin       = "origin"
	ColDestination  = "destination"
	ColAirline      = "airline"
	ColCarrierGroup = "carriergroup"
	ColFlightType   = "flight_type"
	ColScheduled    = "scheduled"
	ColCharter      = "charter"
	ColTotal        = "total"
)

// FromRecords builds a frame with one row per record. Dates are stored as
// YYYY-MM-DD strings, flags as 0/1 ints.
func FromRecords(records []model.FlightRecord) dataframe.DataFrame {
	n := len(records)
	var (
		dates, origins, dests, airlines = make([]string, n), make([]string, n), make([]string, n), make([]string, n)
		groups, types                   = make([]string, n), make([]string, n)
		scheduled, charter, totals      = make([]int, n), make([]int, n), make([]int, n)
	)
	for i, r := range records {
		dates[i] = r.Date.Format(time.DateOnly)
		origins[i] = r.Origin
		dests[i] = r.Destination
		airlines[i] = r.Airline
		groups[i] = r.CarrierGroup
		types[i] = r.FlightType
		scheduled[i] = flag(r.Scheduled)
		charter[i] = flag(r.Charter)
		totals[i] = r.Total
	}
	return dataframe.New(
		series.New(dates, series.String, ColDate),
		series.New(origins, series.String, ColOrigin),
		series.New(dests, series.String, ColDestination),
		series.New(airlines, series.String, ColAirline),
		series.New(groups, series.String, ColCarrierGroup),
		series.New(types, series.String, ColFlightType),
		series.New(scheduled, series.Int, ColScheduled),
		series.New(charter, series.Int, ColCharter),
		series.New(totals, series.Int, ColTotal),
	)
}

// Dates parses the date column of df.
func Dates(df dataframe.DataFrame) ([]time.Time, error) {
	recs := df.Col(ColDate).Records()
	out := make([]time.Time, len(recs))
	for i, s := range recs {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", i+1, ColDate, err)
		}
		out[i] = t
	}
	return out, nil
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
