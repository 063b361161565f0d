package metrics

import (
	"context"
	"time"

	"github.com/kilianp07/flightcast/core/model"
)

// PredictionEvent describes one successful prediction run.
type PredictionEvent struct {
	RunID          string
	Criteria       model.FilterCriteria
	RecordsLoaded  int
	RecordsMatched int
	Result         model.PredictionResult
	Duration       time.Duration
	Time           time.Time
}

// MetricsSink records prediction runs for observability purposes. ctx is the
// run context; network sinks abort when it is cancelled.
type MetricsSink interface {
	RecordPrediction(ctx context.Context, ev PredictionEvent) error
}

// FailureEvent describes a run that ended with an error.
type FailureEvent struct {
	RunID    string
	Kind     string
	Message  string
	Criteria model.FilterCriteria
	Time     time.Time
}

// FailureRecorder is implemented by sinks able to record failed runs.
type FailureRecorder interface {
	RecordFailure(ctx context.Context, ev FailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(context.Context, PredictionEvent) error { return nil }
func (NopSink) RecordFailure(context.Context, FailureEvent) error       { return nil }
func (NopSink) Close() error                                           { return nil }
