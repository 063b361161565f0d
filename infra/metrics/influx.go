package metrics

import (
	"context"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/flightcast/core/metrics"
	"github.com/kilianp07/flightcast/core/model"
	"github.com/kilianp07/flightcast/infra/logger"
)

// InfluxSink writes prediction runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Warnf("influx health check error: %v", err)
		} else {
			sink.log.Warnf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// PredictionPoint builds the line protocol point for a run. The point is
// stamped with the target date so forecasts line up with the history they
// extend.
func PredictionPoint(ev coremetrics.PredictionEvent) *write.Point {
	r := ev.Result
	p := write.NewPointWithMeasurement("flight_prediction").
		AddTag("model", r.Model).
		AddTag("granularity", r.Granularity.String()).
		AddTag("nearest_date", r.NearestDate.Format(time.DateOnly))
	addFilterTags(p, ev.Criteria)
	return p.AddField("predicted_total", round3(r.Value)).
		AddField("lower_bound", round3(r.Lower)).
		AddField("upper_bound", round3(r.Upper)).
		AddField("interval_width", r.IntervalWidth).
		AddField("points", r.Points).
		AddField("records_matched", ev.RecordsMatched).
		AddField("run_id", ev.RunID).
		SetTime(r.TargetDate)
}

// RecordPrediction writes the run as a flight_prediction point.
func (s *InfluxSink) RecordPrediction(ctx context.Context, ev coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, PredictionPoint(ev))
}

// RecordFailure writes a prediction_failure point.
func (s *InfluxSink) RecordFailure(ctx context.Context, ev coremetrics.FailureEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("prediction_failure").
		AddTag("kind", ev.Kind)
	addFilterTags(p, ev.Criteria)
	p = p.AddField("message", ev.Message).
		AddField("run_id", ev.RunID).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

// addFilterTags tags p with the active filters in key order.
func addFilterTags(p *write.Point, c model.FilterCriteria) {
	tags := c.Tags()
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p.AddTag(k, tags[k])
	}
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
