package prediction

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/logger"
	"github.com/kilianp07/flightcast/core/model"
	"github.com/kilianp07/flightcast/core/series"
)

// Predictor fits a model to a series and evaluates it at a target date.
type Predictor struct {
	Model         Model
	IntervalWidth float64
	Logger        logger.Logger
}

// NewPredictor builds a Predictor from cfg. cfg is expected to have defaults
// applied.
func NewPredictor(cfg Config, log logger.Logger) (*Predictor, error) {
	m, err := NewModel(cfg.Family)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Predictor{Model: m, IntervalWidth: cfg.IntervalWidth, Logger: log}, nil
}

// Predict fits the model on s and evaluates it at target. NearestDate is the
// series date closest to target (earlier on ties); the value itself is always
// computed at target.
func (p *Predictor) Predict(s model.Series, target time.Time) (model.PredictionResult, error) {
	nearest, ok := series.Nearest(s, target)
	if !ok || len(s) < 2 {
		return model.PredictionResult{}, failure.Model(nil, "insufficient data: need at least 2 distinct dates, got %d", len(s))
	}
	if err := p.Model.Fit(s); err != nil {
		return model.PredictionResult{}, err
	}
	p.Logger.Debugw("model fitted", map[string]any{
		"model":  p.Model.Name(),
		"points": len(s),
		"first":  s[0].Date.Format(time.DateOnly),
		"last":   s[len(s)-1].Date.Format(time.DateOnly),
	})
	est, err := p.Model.Estimate(target)
	if err != nil {
		return model.PredictionResult{}, err
	}
	if math.IsNaN(est.Value) || math.IsInf(est.Value, 0) {
		return model.PredictionResult{}, failure.Model(nil, "model produced a non-finite prediction")
	}
	half := halfWidth(est, p.width())
	return model.PredictionResult{
		TargetDate:    target,
		NearestDate:   nearest,
		Value:         est.Value,
		Lower:         est.Value - half,
		Upper:         est.Value + half,
		Model:         p.Model.Name(),
		IntervalWidth: p.width(),
		Points:        len(s),
	}, nil
}

func (p *Predictor) width() float64 {
	if p.IntervalWidth <= 0 || p.IntervalWidth >= 1 {
		return DefaultIntervalWidth
	}
	return p.IntervalWidth
}

// halfWidth returns the Student-t half width of the prediction interval. A
// fit without residual degrees of freedom yields an empty range.
func halfWidth(est Estimate, width float64) float64 {
	if est.DoF <= 0 || est.StdErr <= 0 || math.IsNaN(est.StdErr) {
		return 0
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(est.DoF)}
	return t.Quantile((1+width)/2) * est.StdErr
}
