package prediction

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
)

// LinearModel is an ordinary least squares line through the series.
type LinearModel struct {
	fitted bool
	origin int64
	alpha  float64
	beta   float64
	n      int
	meanX  float64
	sxx    float64
	s2     float64 // residual variance, zero when DoF is zero
}

// Name implements Model.
func (*LinearModel) Name() string { return "linear" }

// Fit implements Model.
func (m *LinearModel) Fit(s model.Series) error {
	if err := checkSeries(s, 2); err != nil {
		return err
	}
	origin, xs := offsets(s)
	ys := s.Values()
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return failure.Model(nil, "regression did not converge")
	}
	meanX := stat.Mean(xs, nil)
	var sxx, ssr float64
	for i, x := range xs {
		sxx += (x - meanX) * (x - meanX)
		r := ys[i] - (alpha + beta*x)
		ssr += r * r
	}
	*m = LinearModel{
		fitted: true,
		origin: origin,
		alpha:  alpha,
		beta:   beta,
		n:      len(xs),
		meanX:  meanX,
		sxx:    sxx,
	}
	if dof := m.n - 2; dof > 0 {
		m.s2 = ssr / float64(dof)
	}
	return nil
}

// Estimate implements Model.
func (m *LinearModel) Estimate(t time.Time) (Estimate, error) {
	if !m.fitted {
		return Estimate{}, failure.Model(errNotFitted, "linear")
	}
	x := float64(Ordinal(t) - m.origin)
	d := x - m.meanX
	se := math.Sqrt(m.s2 * (1 + 1/float64(m.n) + d*d/m.sxx))
	return Estimate{Value: m.alpha + m.beta*x, StdErr: se, DoF: m.n - 2}, nil
}
