package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ Degree int }

type sampleConf struct {
	Degree int `json:"degree"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	require.NoError(t, reg.Register("poly", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{Degree: c.Degree}, nil
	}))
	inst, err := reg.Create(ModuleConfig{Type: "poly", Conf: map[string]any{"degree": 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.Degree)

	inst, err = reg.Create(ModuleConfig{Type: "poly", Conf: map[string]any{"degree": "2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, inst.Degree)
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))
	assert.Error(t, reg.Register("x", func(map[string]any) (int, error) { return 2, nil }))
	assert.Error(t, reg.Register("y", nil))
	_, err := reg.Create(ModuleConfig{Type: "y"})
	assert.Error(t, err)
	assert.Equal(t, []string{"x"}, reg.Names())
}
