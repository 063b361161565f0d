package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightcast/core/failure"
	"github.com/kilianp07/flightcast/core/model"
)

func result() model.PredictionResult {
	return model.PredictionResult{
		TargetDate:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		NearestDate:   time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
		Value:         159.99999,
		Lower:         141.234,
		Upper:         178.765,
		Model:         "linear",
		IntervalWidth: 0.8,
		Points:        3,
		Granularity:   model.Daily,
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, result()))
	assert.Equal(t,
		"Predicted Total Flights on closest date 2024-11-30: 160.00\nPrediction Range: 141.23 to 178.77\n",
		buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, result()))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "2024-11-30", out["nearest_date"])
	assert.Equal(t, 160.0, out["predicted_total"])
	assert.Equal(t, 141.23, out["lower_bound"])
	assert.Equal(t, "day", out["granularity"])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	assert.True(t, errors.Is(err, failure.ErrArgument))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005000001))
	assert.Equal(t, -2.5, Round2(-2.499999))
}
