package metrics

import (
	"time"

	coremetrics "github.com/kilianp07/flightcast/core/metrics"
	"github.com/kilianp07/flightcast/core/model"
)

func sampleEvent() coremetrics.PredictionEvent {
	target := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	return coremetrics.PredictionEvent{
		RunID:          "run-1",
		Criteria:       model.FilterCriteria{Origin: "JFK", Charter: model.Bool(false)},
		RecordsLoaded:  10,
		RecordsMatched: 3,
		Result: model.PredictionResult{
			TargetDate:    target,
			NearestDate:   target.AddDate(0, 0, -1),
			Value:         160,
			Lower:         150.5,
			Upper:         169.5,
			Model:         "linear",
			IntervalWidth: 0.8,
			Points:        3,
			Granularity:   model.Daily,
		},
		Duration: 120 * time.Millisecond,
		Time:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}
