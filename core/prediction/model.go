package prediction

import (
	"fmt"
	"time"

	"github.com/kilianp07/flightcast/core/factory"
	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
)

// Estimate is a model evaluation at one date.
type Estimate struct {
	// Value is the fitted mean.
	Value float64
	// StdErr is the standard error of a new observation at that date.
	StdErr float64
	// DoF is the residual degrees of freedom of the fit.
	DoF int
}

// Model is a regression of flight totals over ordinal dates. Fit must be
// called before Estimate.
type Model interface {
	Name() string
	Fit(s model.Series) error
	Estimate(t time.Time) (Estimate, error)
}

var modelRegistry = factory.NewRegistry[Model]()

func init() {
	_ = RegisterModel("linear", func(map[string]any) (Model, error) {
		return &LinearModel{}, nil
	})
	_ = RegisterModel("polynomial", func(conf map[string]any) (Model, error) {
		var c struct {
			Degree int `json:"degree"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Degree == 0 {
			c.Degree = 2
		}
		return NewPolynomialModel(c.Degree)
	})
}

// RegisterModel adds a model family identified by name.
func RegisterModel(name string, f factory.Factory[Model]) error {
	return modelRegistry.Register(name, f)
}

// ModelFamilies lists the registered family names.
func ModelFamilies() []string { return modelRegistry.Names() }

// NewModel creates an unfitted model. An empty type selects "linear".
func NewModel(cfg factory.ModuleConfig) (Model, error) {
	if cfg.Type == "" {
		cfg.Type = "linear"
	}
	m, err := modelRegistry.Create(cfg)
	if err != nil {
		return nil, failure.Argument("model %s: %v", cfg.Type, err)
	}
	return m, nil
}

func checkSeries(s model.Series, coefficients int) error {
	if len(s) < 2 {
		return failure.Model(nil, "insufficient data: need at least 2 distinct dates, got %d", len(s))
	}
	if len(s) < coefficients {
		return failure.Model(nil, "insufficient data: %d dates for %d coefficients", len(s), coefficients)
	}
	return nil
}

// offsets returns the day offsets of s relative to its first date.
func offsets(s model.Series) (origin int64, xs []float64) {
	origin = Ordinal(s[0].Date)
	xs = make([]float64, len(s))
	for i, p := range s {
		xs[i] = float64(Ordinal(p.Date) - origin)
	}
	return origin, xs
}

var errNotFitted = fmt.Errorf("model is not fitted")
