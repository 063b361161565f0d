package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightcast/core/factory"
	metrics "github.com/kilianp07/flightcast/core/metrics"
	_ "github.com/kilianp07/flightcast/infra/metrics"
)

/*
TestMetricsFactory_Builtins verifies registration via infra/metrics/factory.go.

	Cases:
	- instantiate builtin nop sink
	- unknown type returns error
*/
func TestMetricsFactory_Builtins(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	require.NoError(t, err)
	assert.NotNil(t, s)
	_, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}})
	assert.Error(t, err)
}

/*
TestNewMetricsSink_Multi validates NewMetricsSink behavior with zero, one, and multiple configs.
Cases:
  - no config -> NopSink
  - two configs -> MultiSink with two sub-sinks
*/
func TestNewMetricsSink_Multi(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	require.NoError(t, err)
	assert.IsType(t, metrics.NopSink{}, s)

	s, err = metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	require.NoError(t, err)
	m, ok := s.(*metrics.MultiSink)
	require.True(t, ok, "expected MultiSink, got %T", s)
	assert.Len(t, m.Sinks, 2)
	assert.NoError(t, m.Close())
}

type failingSink struct{ calls int }

func (f *failingSink) RecordPrediction(context.Context, metrics.PredictionEvent) error {
	f.calls++
	return errors.New("down")
}

func TestMultiSinkContinuesAfterError(t *testing.T) {
	a, b := &failingSink{}, &failingSink{}
	m := metrics.NewMultiSink(a, metrics.NopSink{}, b)
	err := m.RecordPrediction(context.Background(), metrics.PredictionEvent{RunID: "r"})
	require.Error(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.NoError(t, m.RecordFailure(context.Background(), metrics.FailureEvent{RunID: "r"}))
}
