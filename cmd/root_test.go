package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flightcast/core/failure"
)

const departures = "data_dte,usg_apt,fg_apt,carrier,carriergroup,type,Scheduled,Charter,Total\n" +
	"11/28/2024,JFK,LHR,DL,1,Departures,1,0,100\n" +
	"11/29/2024,JFK,LHR,DL,1,Departures,1,0,120\n" +
	"11/30/2024,JFK,LHR,DL,1,Departures,1,0,140\n" +
	"11/30/2024,LAX,NRT,AA,1,Departures,0,1,9\n"

func dataFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "departures.csv")
	require.NoError(t, os.WriteFile(path, []byte(departures), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPredictText(t *testing.T) {
	out, _, err := execute(t, "--data", dataFile(t), "--date", "2024-12-01", "--origin", "JFK")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Predicted Total Flights on closest date 2024-11-30: 160.00", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Prediction Range: "), lines[1])
}

func TestPredictJSON(t *testing.T) {
	out, _, err := execute(t, "--data", dataFile(t), "--date", "2024-11-29",
		"--airline", "DL", "--scheduled", "1", "--output", "json", "--interval", "0.95")
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2024-11-29", res["nearest_date"])
	assert.Equal(t, 120.0, res["predicted_total"])
	assert.Equal(t, 0.95, res["interval_width"])
}

func TestPredictErrors(t *testing.T) {
	path := dataFile(t)
	cases := []struct {
		name string
		args []string
		want *failure.Error
		code int
	}{
		{"missing date", []string{"--data", path}, failure.ErrArgument, 2},
		{"bad date", []string{"--data", path, "--date", "12/01/2024"}, failure.ErrArgument, 2},
		{"bad flag", []string{"--data", path, "--date", "2024-12-01", "--charter", "yes"}, failure.ErrArgument, 2},
		{"bad output", []string{"--data", path, "--date", "2024-12-01", "--output", "xml"}, failure.ErrArgument, 2},
		{"bad interval", []string{"--data", path, "--date", "2024-12-01", "--interval", "1"}, failure.ErrArgument, 2},
		{"bad granularity", []string{"--data", path, "--date", "2024-12-01", "--granularity", "week"}, failure.ErrArgument, 2},
		{"unknown model", []string{"--data", path, "--date", "2024-12-01", "--model", "prophet"}, failure.ErrArgument, 2},
		{"unknown flag", []string{"--date", "2024-12-01", "--hub", "JFK"}, failure.ErrArgument, 2},
		{"stray argument", []string{"--date", "2024-12-01", "JFK"}, failure.ErrArgument, 2},
		{"missing data", []string{"--data", path + ".missing", "--date", "2024-12-01"}, failure.ErrData, 3},
		{"missing config", []string{"-c", path + ".yaml", "--date", "2024-12-01"}, failure.ErrData, 3},
		{"no match", []string{"--data", path, "--date", "2024-12-01", "--origin", "ZZZ"}, failure.ErrFilter, 4},
		{"single date", []string{"--data", path, "--date", "2024-12-01", "--origin", "LAX"}, failure.ErrModel, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, tc.code, failure.ExitCode(err))
			assert.Empty(t, out)
		})
	}
}

func TestPredictMonthlyWithConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "flightcast.yaml")
	cfg := "data:\n  path: \"" + dataFile(t) + "\"\nmodel:\n  granularity: \"month\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, _, err := execute(t, "-c", cfgPath, "--date", "2024-12-31")
	require.Error(t, err)
	assert.True(t, errors.Is(err, failure.ErrModel), "one month-end point cannot be fitted")

	out, _, err := execute(t, "-c", cfgPath, "--date", "2024-12-01", "--granularity", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "closest date 2024-11-30")
}

func TestPredictWithUnreachableBroker(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "flightcast.yaml")
	cfg := "data:\n  path: \"" + dataFile(t) + "\"\n" +
		"metrics:\n  sinks:\n    - type: mqtt\n      conf:\n" +
		"        broker: \"tcp://127.0.0.1:1\"\n        timeout_ms: 500\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out, _, err := execute(t, "-c", cfgPath, "--date", "2024-12-01", "--origin", "JFK")
	require.NoError(t, err)
	assert.Equal(t, 0, failure.ExitCode(err))
	assert.Contains(t, out, "Predicted Total Flights on closest date 2024-11-30: 160.00")
	assert.Contains(t, out, "Prediction Range: ")
}

func TestSeriesCommand(t *testing.T) {
	path := dataFile(t)
	out, _, err := execute(t, "series", "--data", path, "--origin", "JFK")
	require.NoError(t, err)
	assert.Equal(t, "date,total\n2024-11-28,100\n2024-11-29,120\n2024-11-30,140\n", out)

	out, _, err = execute(t, "series", "--data", path, "--granularity", "month", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2024-11-30","total":369}]`, out)

	_, _, err = execute(t, "series", "--data", path, "--format", "xml")
	assert.True(t, errors.Is(err, failure.ErrArgument))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, failure.Filter("no flights found departing from the specified origin airport: ZZZ"))
	assert.Contains(t, buf.String(), "Error:")
	assert.Contains(t, buf.String(), "no flights found departing from the specified origin airport: ZZZ\n")
}
