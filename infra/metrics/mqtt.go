package metrics

import (
	"context"
	"encoding/json"
	"time"

	coremetrics "github.com/kilianp07/flightcast/core/metrics"
	"github.com/kilianp07/flightcast/infra/logger"
	"github.com/kilianp07/flightcast/infra/mqtt"
)

type publisher interface {
	Publish(ctx context.Context, payload []byte) error
	Close() error
}

// MQTTSink publishes each prediction as a JSON message.
type MQTTSink struct {
	pub     publisher
	timeout time.Duration
}

// NewMQTTSink connects a publisher for cfg.
func NewMQTTSink(cfg mqtt.Config) (*MQTTSink, error) {
	pub, err := mqtt.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	return &MQTTSink{pub: pub, timeout: 10 * time.Second}, nil
}

// NewMQTTSinkWithFallback connects like NewMQTTSink but returns a NopSink
// when the broker cannot be reached, so an offline broker never blocks a
// prediction.
func NewMQTTSinkWithFallback(cfg mqtt.Config) coremetrics.MetricsSink {
	sink, err := NewMQTTSink(cfg)
	if err != nil {
		logger.New("mqtt-sink").Warnf("mqtt connect error: %v", err)
		return coremetrics.NopSink{}
	}
	return sink
}

// PredictionMessage is the JSON payload published for a run.
type PredictionMessage struct {
	RunID          string            `json:"run_id"`
	TargetDate     string            `json:"target_date"`
	NearestDate    string            `json:"nearest_date"`
	PredictedTotal float64           `json:"predicted_total"`
	LowerBound     float64           `json:"lower_bound"`
	UpperBound     float64           `json:"upper_bound"`
	Model          string            `json:"model"`
	Granularity    string            `json:"granularity"`
	Filters        map[string]string `json:"filters,omitempty"`
	Timestamp      int64             `json:"timestamp"`
}

// NewPredictionMessage converts an event into its published form.
func NewPredictionMessage(ev coremetrics.PredictionEvent) PredictionMessage {
	r := ev.Result
	return PredictionMessage{
		RunID:          ev.RunID,
		TargetDate:     r.TargetDate.Format(time.DateOnly),
		NearestDate:    r.NearestDate.Format(time.DateOnly),
		PredictedTotal: round3(r.Value),
		LowerBound:     round3(r.Lower),
		UpperBound:     round3(r.Upper),
		Model:          r.Model,
		Granularity:    r.Granularity.String(),
		Filters:        ev.Criteria.Tags(),
		Timestamp:      ev.Time.UnixMilli(),
	}
}

// RecordPrediction implements coremetrics.MetricsSink.
func (s *MQTTSink) RecordPrediction(ctx context.Context, ev coremetrics.PredictionEvent) error {
	payload, err := json.Marshal(NewPredictionMessage(ev))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.pub.Publish(ctx, payload)
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() error { return s.pub.Close() }
