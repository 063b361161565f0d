// Package app wires the loader, filter, aggregator and predictor into the
// runs exposed by the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"github.com/kilianp07/flightcast/config"
	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/filter"
	coremetrics "github.com/kilianp07/flightcast/core/metrics"
	"github.com/kilianp07/flightcast/core/model"
	"github.com/kilianp07/flightcast/core/prediction"
	"github.com/kilianp07/flightcast/core/series"
	"github.com/kilianp07/flightcast/infra/dataset"
	"github.com/kilianp07/flightcast/infra/logger"
	// registers the built-in metrics sinks
	_ "github.com/kilianp07/flightcast/infra/metrics"
)

// Request describes one prediction run.
type Request struct {
	Date        time.Time
	Criteria    model.FilterCriteria
	Granularity model.Granularity
}

// Service runs predictions against the configured dataset.
type Service struct {
	data  dataset.Config
	model prediction.Config
	sink  coremetrics.MetricsSink
	log   logger.Logger
	now   func() time.Time
}

// New creates a Service from the configuration, building its metrics sinks.
func New(cfg *config.Config) (*Service, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, failure.Data(err, "metrics")
	}
	return NewWithSink(cfg, sink, logger.New("service")), nil
}

// NewWithSink creates a Service reporting to sink.
func NewWithSink(cfg *config.Config, sink coremetrics.MetricsSink, log logger.Logger) *Service {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{data: cfg.Data, model: cfg.Model, sink: sink, log: log, now: time.Now}
}

// Predict runs load, filter, aggregate, fit and predict for req. The run is
// reported to the metrics sinks; sink errors are logged and never returned.
func (s *Service) Predict(ctx context.Context, req Request) (model.PredictionResult, error) {
	runID := uuid.NewString()
	start := s.now()
	res, loaded, matched, err := s.predict(ctx, req)
	if err != nil {
		s.recordFailure(ctx, runID, req.Criteria, err)
		return model.PredictionResult{}, err
	}
	ev := coremetrics.PredictionEvent{
		RunID:          runID,
		Criteria:       req.Criteria,
		RecordsLoaded:  loaded,
		RecordsMatched: matched,
		Result:         res,
		Duration:       s.now().Sub(start),
		Time:           s.now(),
	}
	if err := s.sink.RecordPrediction(ctx, ev); err != nil {
		s.log.Warnf("record prediction %s: %v", runID, err)
	}
	s.log.Infof("run %s predicted %.2f for %s", runID, res.Value, req.Date.Format(time.DateOnly))
	return res, nil
}

func (s *Service) predict(ctx context.Context, req Request) (model.PredictionResult, int, int, error) {
	loaded, matched, err := s.load(ctx, req.Criteria)
	if err != nil {
		return model.PredictionResult{}, 0, 0, err
	}
	pts, err := series.Aggregate(matched, req.Granularity)
	if err != nil {
		return model.PredictionResult{}, 0, 0, failure.Data(err, "aggregate")
	}
	s.log.Debugw("series aggregated", map[string]any{
		"records":     matched.Nrow(),
		"points":      len(pts),
		"granularity": req.Granularity.String(),
	})
	if err := ctx.Err(); err != nil {
		return model.PredictionResult{}, 0, 0, err
	}
	cfg := s.model
	cfg.SetDefaults()
	p, err := prediction.NewPredictor(cfg, s.log)
	if err != nil {
		return model.PredictionResult{}, 0, 0, err
	}
	res, err := p.Predict(pts, req.Date)
	if err != nil {
		return model.PredictionResult{}, 0, 0, err
	}
	res.Granularity = req.Granularity
	return res, loaded, matched.Nrow(), nil
}

// Series runs load, filter and aggregate.
func (s *Service) Series(ctx context.Context, c model.FilterCriteria, g model.Granularity) (model.Series, error) {
	_, matched, err := s.load(ctx, c)
	if err != nil {
		return nil, err
	}
	pts, err := series.Aggregate(matched, g)
	if err != nil {
		return nil, failure.Data(err, "aggregate")
	}
	return pts, nil
}

// load reads the dataset into a frame and narrows it to c. It returns the
// number of rows loaded alongside the matching frame.
func (s *Service) load(ctx context.Context, c model.FilterCriteria) (int, dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return 0, dataframe.DataFrame{}, err
	}
	df, err := dataset.NewLoader(s.data, s.log).LoadFrame()
	if err != nil {
		return 0, dataframe.DataFrame{}, err
	}
	if err := ctx.Err(); err != nil {
		return 0, dataframe.DataFrame{}, err
	}
	matched, err := filter.Apply(df, c)
	if err != nil {
		return 0, dataframe.DataFrame{}, err
	}
	s.log.Debugw("records filtered", map[string]any{
		"loaded":  df.Nrow(),
		"matched": matched.Nrow(),
		"filters": c.Tags(),
	})
	return df.Nrow(), matched, nil
}

func (s *Service) recordFailure(ctx context.Context, runID string, c model.FilterCriteria, err error) {
	rec, ok := s.sink.(coremetrics.FailureRecorder)
	if !ok {
		return
	}
	ev := coremetrics.FailureEvent{
		RunID:    runID,
		Kind:     failure.KindOf(err).String(),
		Message:  err.Error(),
		Criteria: c,
		Time:     s.now(),
	}
	if rerr := rec.RecordFailure(ctx, ev); rerr != nil {
		s.log.Warnf("record failure %s: %v", runID, rerr)
	}
}

// Close flushes and releases the metrics sinks.
func (s *Service) Close() error {
	if c, ok := s.sink.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close metrics: %w", err)
		}
	}
	return nil
}
