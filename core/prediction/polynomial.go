package prediction

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
)

// MaxDegree bounds the polynomial degree; higher orders extrapolate wildly.
const MaxDegree = 3

// PolynomialModel is a least squares polynomial over day offsets, solved by
// QR factorisation.
type PolynomialModel struct {
	degree int

	fitted bool
	origin int64
	scale  float64
	n      int
	coef   *mat.VecDense
	xtxInv *mat.Dense
	s2     float64
}

// NewPolynomialModel returns an unfitted model of the given degree.
func NewPolynomialModel(degree int) (*PolynomialModel, error) {
	if degree < 1 || degree > MaxDegree {
		return nil, fmt.Errorf("degree must be between 1 and %d, got %d", MaxDegree, degree)
	}
	return &PolynomialModel{degree: degree}, nil
}

// Name implements Model.
func (m *PolynomialModel) Name() string { return fmt.Sprintf("polynomial(%d)", m.degree) }

func (m *PolynomialModel) row(x float64) []float64 {
	r := make([]float64, m.degree+1)
	v := 1.0
	for j := range r {
		r[j] = v
		v *= x / m.scale
	}
	return r
}

// Fit implements Model.
func (m *PolynomialModel) Fit(s model.Series) error {
	p := m.degree + 1
	if err := checkSeries(s, p); err != nil {
		return err
	}
	origin, xs := offsets(s)
	m.origin = origin
	m.scale = math.Max(1, xs[len(xs)-1])
	n := len(xs)

	X := mat.NewDense(n, p, nil)
	for i, x := range xs {
		X.SetRow(i, m.row(x))
	}
	y := mat.NewVecDense(n, s.Values())

	var qr mat.QR
	qr.Factorize(X)
	coef := mat.NewVecDense(p, nil)
	if err := qr.SolveVecTo(coef, false, y); err != nil {
		return failure.Model(err, "polynomial fit")
	}

	var xtx, inv mat.Dense
	xtx.Mul(X.T(), X)
	if err := inv.Inverse(&xtx); err != nil {
		return failure.Model(err, "polynomial fit")
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(X, coef)
	resid.SubVec(y, &fitted)
	ssr := mat.Dot(&resid, &resid)

	m.fitted = true
	m.n = n
	m.coef = coef
	m.xtxInv = &inv
	m.s2 = 0
	if dof := n - p; dof > 0 {
		m.s2 = ssr / float64(dof)
	}
	return nil
}

// Estimate implements Model.
func (m *PolynomialModel) Estimate(t time.Time) (Estimate, error) {
	if !m.fitted {
		return Estimate{}, failure.Model(errNotFitted, "%s", m.Name())
	}
	x0 := mat.NewVecDense(m.degree+1, m.row(float64(Ordinal(t)-m.origin)))
	value := mat.Dot(x0, m.coef)
	leverage := mat.Inner(x0, m.xtxInv, x0)
	se := math.Sqrt(m.s2 * (1 + leverage))
	return Estimate{Value: value, StdErr: se, DoF: m.n - (m.degree + 1)}, nil
}
