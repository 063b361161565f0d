package prediction

import (
	"math"
	"time"
)

// unixEpochOrdinal is the ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

// Ordinal returns the proleptic Gregorian day number of t's UTC date, where
// 0001-01-01 is day 1.
func Ordinal(t time.Time) int64 {
	days := math.Floor(float64(t.UTC().Unix()) / 86400)
	return int64(days) + unixEpochOrdinal
}
