// Package factory provides a small generic registry used to build pluggable
// components, such as regression model families and metrics sinks, from
// configuration. A component is described by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[prediction.Model]()
//	reg.Register("polynomial", func(conf map[string]any) (prediction.Model, error) {
//	    var c struct{ Degree int `json:"degree"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return prediction.NewPolynomialModel(c.Degree)
//	})
//	m, err := reg.Create(factory.ModuleConfig{Type: "polynomial", Conf: map[string]any{"degree": 2}})
package factory
