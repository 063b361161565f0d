package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightcast/config"
	"github.com/kilianp07/flightcast/core/factory"
	"github.com/kilianp07/flightcast/core/failure"
	coremetrics "github.com/kilianp07/flightcast/core/metrics"
	"github.com/kilianp07/flightcast/core/model"
	"github.com/kilianp07/flightcast/infra/logger"
)

const departures = "data_dte,Year,Month,usg_apt,fg_apt,carrier,carriergroup,type,Scheduled,Charter,Total\n" +
	"11/28/2024,2024,11,JFK,LHR,DL,1,Departures,1,0,60\n" +
	"11/28/2024,2024,11,JFK,CDG,AF,0,Departures,1,0,40\n" +
	"11/29/2024,2024,11,JFK,LHR,DL,1,Departures,1,0,120\n" +
	"11/30/2024,2024,11,JFK,LHR,DL,1,Departures,1,0,140\n" +
	"11/30/2024,2024,11,LAX,NRT,AA,1,Departures,0,1,9\n"

type recordingSink struct {
	predictions []coremetrics.PredictionEvent
	failures    []coremetrics.FailureEvent
	err         error
	closed      bool
}

func (r *recordingSink) RecordPrediction(_ context.Context, ev coremetrics.PredictionEvent) error {
	r.predictions = append(r.predictions, ev)
	return r.err
}

func (r *recordingSink) RecordFailure(_ context.Context, ev coremetrics.FailureEvent) error {
	r.failures = append(r.failures, ev)
	return r.err
}

func (r *recordingSink) Close() error {
	r.closed = true
	return nil
}

func newService(t *testing.T, sink coremetrics.MetricsSink) *Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "departures.csv")
	require.NoError(t, os.WriteFile(path, []byte(departures), 0o644))
	cfg := &config.Config{}
	cfg.Data.Path = path
	cfg.SetDefaults()
	return NewWithSink(cfg, sink, logger.NopLogger{})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPredictJFK(t *testing.T) {
	sink := &recordingSink{}
	svc := newService(t, sink)

	res, err := svc.Predict(context.Background(), Request{
		Date:     day(2024, 12, 1),
		Criteria: model.FilterCriteria{Origin: "JFK"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 160, res.Value, 1e-6)
	assert.Equal(t, day(2024, 11, 30), res.NearestDate)
	assert.LessOrEqual(t, res.Lower, res.Value)
	assert.GreaterOrEqual(t, res.Upper, res.Value)
	assert.Equal(t, model.Daily, res.Granularity)

	require.Len(t, sink.predictions, 1)
	ev := sink.predictions[0]
	assert.NotEmpty(t, ev.RunID)
	assert.Equal(t, 5, ev.RecordsLoaded)
	assert.Equal(t, 4, ev.RecordsMatched)
	assert.Empty(t, sink.failures)

	require.NoError(t, svc.Close())
	assert.True(t, sink.closed)
}

func TestPredictUnknownOrigin(t *testing.T) {
	sink := &recordingSink{}
	svc := newService(t, sink)

	_, err := svc.Predict(context.Background(), Request{
		Date:     day(2024, 12, 1),
		Criteria: model.FilterCriteria{Origin: "ZZZ"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrFilter))
	assert.Equal(t, 4, failure.ExitCode(err))
	assert.Contains(t, err.Error(), "ZZZ")

	require.Len(t, sink.failures, 1)
	assert.Equal(t, "FilterError", sink.failures[0].Kind)
	assert.Empty(t, sink.predictions)
}

func TestPredictSingleDateIsModelError(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.Predict(context.Background(), Request{
		Date:     day(2024, 12, 1),
		Criteria: model.FilterCriteria{Origin: "LAX"},
	})
	assert.True(t, errors.Is(err, failure.ErrModel))
}

func TestPredictSinkErrorIsIgnored(t *testing.T) {
	svc := newService(t, &recordingSink{err: errors.New("broker down")})
	_, err := svc.Predict(context.Background(), Request{
		Date:     day(2024, 12, 1),
		Criteria: model.FilterCriteria{Airline: "DL"},
	})
	assert.NoError(t, err)
}

func TestPredictMissingData(t *testing.T) {
	cfg := &config.Config{}
	cfg.Data.Path = filepath.Join(t.TempDir(), "none.csv")
	cfg.SetDefaults()
	svc := NewWithSink(cfg, nil, nil)
	_, err := svc.Predict(context.Background(), Request{Date: day(2024, 12, 1)})
	assert.True(t, errors.Is(err, failure.ErrData))
}

func TestPredictCancelled(t *testing.T) {
	svc := newService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Predict(ctx, Request{Date: day(2024, 12, 1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeries(t *testing.T) {
	svc := newService(t, nil)

	pts, err := svc.Series(context.Background(), model.FilterCriteria{Origin: "JFK"}, model.Daily)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 120, 140}, pts.Values())

	pts, err = svc.Series(context.Background(), model.FilterCriteria{}, model.Monthly)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.Equal(t, day(2024, 11, 30), pts[0].Date)
	assert.Equal(t, 369.0, pts[0].Total)
}

func TestNewBuildsConfiguredSinks(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	svc, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, svc.sink)

	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "unknown"}}
	_, err = New(cfg)
	assert.True(t, errors.Is(err, failure.ErrData))
}
