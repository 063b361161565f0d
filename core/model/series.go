package model

import (
	"fmt"
	"time"
)

// Granularity selects the bucket used when aggregating records by date.
type Granularity int

const (
	// Daily keeps one point per calendar day.
	Daily Granularity = iota
	// Monthly groups records on the last day of their month.
	Monthly
)

// String returns the configuration name of the granularity.
func (g Granularity) String() string {
	switch g {
	case Daily:
		return "day"
	case Monthly:
		return "month"
	default:
		return "unknown"
	}
}

// ParseGranularity converts a configuration name into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "", "day", "daily":
		return Daily, nil
	case "month", "monthly":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown granularity %q", s)
	}
}

// SeriesPoint is the summed flight count for one date.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// Series is sorted by ascending date with each date at most once.
type Series []SeriesPoint

// Dates returns the dates of the series in order.
func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// Values returns the totals of the series in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Total
	}
	return out
}
