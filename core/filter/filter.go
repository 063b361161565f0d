// Package filter selects the rows of a flight frame matching a set of
// equality constraints.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/frame"
	"github.com/kilianp07/flightcast/core/model"
)

// constraint is one active filter together with the message reported when it
// removes every remaining row.
type constraint struct {
	f     dataframe.F
	empty string
}

func eq(col string, v any) dataframe.F {
	return dataframe.F{Colname: col, Comparator: series.Eq, Comparando: v}
}

// constraints returns the active filters in the order they are applied.
func constraints(c model.FilterCriteria) []constraint {
	var out []constraint
	if c.Origin != "" {
		out = append(out, constraint{
			f:     eq(frame.ColOrigin, c.Origin),
			empty: "no flights found departing from the specified origin airport: " + c.Origin,
		})
	}
	if c.Destination != "" {
		out = append(out, constraint{
			f:     eq(frame.ColDestination, c.Destination),
			empty: "no flights found going to the specified destination airport: " + c.Destination,
		})
	}
	if c.Airline != "" {
		out = append(out, constraint{
			f:     eq(frame.ColAirline, c.Airline),
			empty: "no flights found for the specified airline: " + c.Airline,
		})
	}
	if c.CarrierGroup != "" {
		want := c.CarrierGroup
		out = append(out, constraint{
			f: dataframe.F{
				Colname:    frame.ColCarrierGroup,
				Comparator: series.CompFunc,
				Comparando: func(el series.Element) bool { return sameCode(el.String(), want) },
			},
			empty: "no flights found for the specified carrier group: " + want,
		})
	}
	if c.FlightType != "" {
		out = append(out, constraint{
			f:     eq(frame.ColFlightType, c.FlightType),
			empty: "no flights found for the specified flight type: " + c.FlightType,
		})
	}
	tags := c.Tags()
	if c.Scheduled != nil {
		out = append(out, constraint{
			f:     eq(frame.ColScheduled, flagValue(*c.Scheduled)),
			empty: "no flights found with scheduled = " + tags["scheduled"],
		})
	}
	if c.Charter != nil {
		out = append(out, constraint{
			f:     eq(frame.ColCharter, flagValue(*c.Charter)),
			empty: "no flights found with charter = " + tags["charter"],
		})
	}
	return out
}

// Apply returns the rows of df matching every constraint of c, in input
// order. Filters run one at a time; an empty result is a FilterError naming
// the first filter that left no rows.
func Apply(df dataframe.DataFrame, c model.FilterCriteria) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, failure.Filter("no flight records to filter")
	}
	if c.IsEmpty() {
		return df, nil
	}
	out := df
	for _, k := range constraints(c) {
		out = out.Filter(k.f)
		if out.Err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("filter %s: %w", k.f.Colname, out.Err)
		}
		if out.Nrow() == 0 {
			return dataframe.DataFrame{}, failure.Filter("%s", k.empty)
		}
	}
	return out, nil
}

func flagValue(b bool) int {
	if b {
		return 1
	}
	return 0
}

// sameCode compares numeric codes by value so "01" matches "1".
func sameCode(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return true
	}
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	return errA == nil && errB == nil && x == y
}
