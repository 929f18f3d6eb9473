package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/wp4bd/internal/bridge"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string            `json:"scenario_name"`
	RequestID    string            `json:"request_id"`
	Trace        []TraceEvent      `json:"trace"`
	Log          []bridge.LogEntry `json:"log"`
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Expectation failures and
// golden mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	requestID := scenario.RequestID
	if requestID == "" {
		requestID = DefaultRequestID
	}
	return AssertGolden(t, TraceSnapshot{
		ScenarioName: scenario.Name,
		RequestID:    requestID,
		Trace:        result.Trace,
		Log:          result.Log,
	})
}

// AssertGolden compares a snapshot against testdata/golden/{name}.golden.
func AssertGolden(t *testing.T, snapshot TraceSnapshot) error {
	t.Helper()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, snapshot.ScenarioName, append(data, '\n'))
	return nil
}
