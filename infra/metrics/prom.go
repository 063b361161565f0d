package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/flightcast/core/metrics"
)

// PromSink records run metrics in a Prometheus registry. A CLI run is too
// short to be scraped, so the registry is written to a node_exporter textfile
// when the sink is closed.
type PromSink struct {
	reg      *prometheus.Registry
	textfile string

	runs      *prometheus.CounterVec
	predicted *prometheus.GaugeVec
	records   *prometheus.GaugeVec
	points    prometheus.Gauge
	duration  prometheus.Histogram
	lastRun   prometheus.Gauge
}

// NewPromSink creates a sink with its own registry that is flushed to textfile
// on Close. An empty textfile keeps the metrics in memory only.
func NewPromSink(textfile string) (*PromSink, error) {
	return NewPromSinkWithRegistry(textfile, prometheus.NewRegistry())
}

// NewPromSinkWithRegistry registers metrics on the provided registry.
// A nil registry creates a fresh one.
func NewPromSinkWithRegistry(textfile string, reg *prometheus.Registry) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &PromSink{
		reg:      reg,
		textfile: textfile,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flightcast_runs_total",
			Help: "Prediction runs by outcome",
		}, []string{"outcome"}),
		predicted: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flightcast_predicted_flights",
			Help: "Predicted flight total and its range for the last run",
		}, []string{"bound", "model", "granularity"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "flightcast_records",
			Help: "Flight records seen by the last run per pipeline stage",
		}, []string{"stage"}),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flightcast_series_points",
			Help: "Number of aggregated dates the model was fitted on",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flightcast_run_duration_seconds",
			Help:    "Wall time of a prediction run",
			Buckets: prometheus.DefBuckets,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flightcast_last_run_timestamp_seconds",
			Help: "Unix time of the last prediction run",
		}),
	}
	collectors := []prometheus.Collector{s.runs, s.predicted, s.records, s.points, s.duration, s.lastRun}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RecordPrediction implements coremetrics.MetricsSink.
func (s *PromSink) RecordPrediction(_ context.Context, ev coremetrics.PredictionEvent) error {
	r := ev.Result
	gran := r.Granularity.String()
	s.runs.WithLabelValues("success").Inc()
	s.predicted.WithLabelValues("point", r.Model, gran).Set(r.Value)
	s.predicted.WithLabelValues("lower", r.Model, gran).Set(r.Lower)
	s.predicted.WithLabelValues("upper", r.Model, gran).Set(r.Upper)
	s.records.WithLabelValues("loaded").Set(float64(ev.RecordsLoaded))
	s.records.WithLabelValues("matched").Set(float64(ev.RecordsMatched))
	s.points.Set(float64(r.Points))
	s.duration.Observe(ev.Duration.Seconds())
	s.lastRun.Set(float64(ev.Time.Unix()))
	return nil
}

// RecordFailure implements coremetrics.FailureRecorder.
func (s *PromSink) RecordFailure(_ context.Context, ev coremetrics.FailureEvent) error {
	s.runs.WithLabelValues(ev.Kind).Inc()
	s.lastRun.Set(float64(ev.Time.Unix()))
	return nil
}

// Registry exposes the underlying registry.
func (s *PromSink) Registry() *prometheus.Registry { return s.reg }

// Close writes the registry to the configured textfile.
func (s *PromSink) Close() error {
	if s.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.textfile, s.reg)
}
