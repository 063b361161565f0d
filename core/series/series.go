// Package series turns a filtered flight frame into a date-ordered series of
// summed counts.
package series

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kilianp07/flightcast/core/frame"
	"github.com/kilianp07/flightcast/core/model"
)

// Bucket returns the date a record dated t is grouped under.
func Bucket(t time.Time, g model.Granularity) time.Time {
	y, m, d := t.UTC().Date()
	if g == model.Monthly {
		// day 0 of the next month is the last day of this one
		return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// bucketCol holds the grouping date added to a frame before aggregation.
const bucketCol = "bucket"

// Aggregate sums the total column of df per bucket and returns the sums
// sorted by date.
func Aggregate(df dataframe.DataFrame, g model.Granularity) (model.Series, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	if df.Nrow() == 0 {
		return model.Series{}, nil
	}
	dates, err := frame.Dates(df)
	if err != nil {
		return nil, err
	}
	buckets := make([]string, len(dates))
	for i, d := range dates {
		buckets[i] = Bucket(d, g).Format(time.DateOnly)
	}
	grouped := df.Mutate(series.New(buckets, series.String, bucketCol)).
		GroupBy(bucketCol).
		Aggregation([]dataframe.AggregationType{dataframe.Aggregation_SUM}, []string{frame.ColTotal})
	if grouped.Err != nil {
		return nil, fmt.Errorf("aggregate: %w", grouped.Err)
	}
	grouped = grouped.Arrange(dataframe.Sort(bucketCol))
	if grouped.Err != nil {
		return nil, fmt.Errorf("aggregate: %w", grouped.Err)
	}
	sumCol, err := sumColumn(grouped)
	if err != nil {
		return nil, err
	}
	keys := grouped.Col(bucketCol).Records()
	sums := grouped.Col(sumCol).Float()
	out := make(model.Series, len(keys))
	for i, k := range keys {
		d, err := time.Parse(time.DateOnly, k)
		if err != nil {
			return nil, fmt.Errorf("aggregate: bucket %q: %w", k, err)
		}
		out[i] = model.SeriesPoint{Date: d, Total: sums[i]}
	}
	return out, nil
}

// sumColumn finds the aggregated total among the grouped columns; gota names
// it after the source column and the aggregation type.
func sumColumn(df dataframe.DataFrame) (string, error) {
	for _, n := range df.Names() {
		if n != bucketCol && strings.HasPrefix(n, frame.ColTotal) {
			return n, nil
		}
	}
	return "", fmt.Errorf("aggregate: no %s column in %v", frame.ColTotal, df.Names())
}

// Nearest returns the series date closest to target. Ties resolve to the
// earlier date. ok is false for an empty series.
func Nearest(s model.Series, target time.Time) (time.Time, bool) {
	if len(s) == 0 {
		return time.Time{}, false
	}
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(target) })
	switch {
	case i == len(s):
		return s[len(s)-1].Date, true
	case i == 0:
		return s[0].Date, true
	}
	before, after := s[i-1].Date, s[i].Date
	if after.Sub(target) < target.Sub(before) {
		return after, true
	}
	return before, true
}
