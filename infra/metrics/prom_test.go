package metrics

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/flightcast/core/metrics"
)

func TestPromSinkRecordPrediction(t *testing.T) {
	sink, err := NewPromSinkWithRegistry("", prometheus.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, sink.RecordPrediction(context.Background(), sampleEvent()))

	assert.Equal(t, 160.0, testutil.ToFloat64(sink.predicted.WithLabelValues("point", "linear", "day")))
	assert.Equal(t, 150.5, testutil.ToFloat64(sink.predicted.WithLabelValues("lower", "linear", "day")))
	assert.Equal(t, 169.5, testutil.ToFloat64(sink.predicted.WithLabelValues("upper", "linear", "day")))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.records.WithLabelValues("matched")))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.points))

	expected := `
# HELP flightcast_runs_total Prediction runs by outcome
# TYPE flightcast_runs_total counter
flightcast_runs_total{outcome="success"} 1
`
	require.NoError(t, testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.duration))
}

func TestPromSinkRecordFailure(t *testing.T) {
	sink, err := NewPromSink("")
	require.NoError(t, err)
	require.NoError(t, sink.RecordFailure(context.Background(), coremetrics.FailureEvent{Kind: "FilterError", Time: time.Now()}))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.runs.WithLabelValues("FilterError")))
	assert.NoError(t, sink.Close())
}

func TestPromSinkWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flightcast.prom")
	sink, err := NewPromSink(path)
	require.NoError(t, err)
	require.NoError(t, sink.RecordPrediction(context.Background(), sampleEvent()))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `flightcast_predicted_flights{bound="point",granularity="day",model="linear"} 160`)
	assert.Contains(t, string(data), "flightcast_last_run_timestamp_seconds")
}

func TestPromSinkDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSinkWithRegistry("", reg)
	require.NoError(t, err)
	_, err = NewPromSinkWithRegistry("", reg)
	assert.Error(t, err)
}
