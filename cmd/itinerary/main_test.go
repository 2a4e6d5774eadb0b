package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary-remediation-service/internal/domain"
)

const tokyoJSON = `{
  "id": "trip-tokyo",
  "destination": "Tokyo",
  "days": [{
    "dayNumber": 1,
    "city": "Tokyo",
    "slots": [
      {"slotId": "d1-slot-1", "slotType": "morning", "timeRange": {"start": "09:00", "end": "10:30"},
       "options": [{"id": "o1", "rank": 1, "activity": {"name": "Senso-ji Temple", "category": "temple", "duration": 60,
         "place": {"coordinates": {"lat": 35.7148, "lng": 139.7967}}}}]},
      {"slotId": "d1-slot-2", "slotType": "afternoon", "timeRange": {"start": "17:00", "end": "18:30"},
       "options": [{"id": "o2", "rank": 1, "activity": {"name": "Ueno Park", "category": "park", "duration": 60,
         "place": {"coordinates": {"lat": 35.7156, "lng": 139.7745}}}}]}
    ]
  }]
}`

const rushedJSON = `{
  "id": "trip-rushed",
  "destination": "Tokyo",
  "days": [{
    "dayNumber": 1,
    "city": "Tokyo",
    "slots": [
      {"slotId": "d1-slot-1", "slotType": "morning", "timeRange": {"start": "09:00", "end": "10:00"},
       "options": [{"id": "o1", "rank": 1, "activity": {"name": "Senso-ji Temple", "category": "temple", "duration": 60}}]},
      {"slotId": "d1-slot-2", "slotType": "morning", "timeRange": {"start": "10:05", "end": "11:30"},
       "commuteFromPrevious": {"duration": 40, "method": "transit"},
       "options": [{"id": "o2", "rank": 1, "activity": {"name": "Tokyo Skytree", "category": "attraction", "duration": 60}}]}
    ]
  }]
}`

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "ORS_API_KEY", "OPENAI_API_KEY", "LOCAL_JUDGMENT_BASE_URL", "LOCAL_JUDGMENT_MODEL",
		"ENGINE_CONFIG", "VALIDATION_STRICT", "COMMUTE_CEILING_MINUTES",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_MODE", "prod")
}

func writeItinerary(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itinerary.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (int, []byte, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.Bytes(), stderr.String()
}

func TestValidateFeasible(t *testing.T) {
	isolateEnv(t)
	code, out, _ := runCLI(t, "validate", "--file", writeItinerary(t, tokyoJSON))
	require.Equal(t, exitOK, code)

	var rep report
	require.NoError(t, json.Unmarshal(out, &rep))
	assert.True(t, rep.Feasible)
	assert.Equal(t, 0, rep.Summary[domain.SeverityError])
}

func TestValidateInfeasibleExitCode(t *testing.T) {
	isolateEnv(t)
	code, out, _ := runCLI(t, "validate", "-f", writeItinerary(t, rushedJSON))
	assert.Equal(t, exitInfeasible, code)

	var rep report
	require.NoError(t, json.Unmarshal(out, &rep))
	assert.False(t, rep.Feasible)
	assert.Contains(t, rep.AffectedLayers, domain.LayerTravel)
}

func TestRemediateWithArrival(t *testing.T) {
	isolateEnv(t)
	code, out, stderr := runCLI(t, "remediate", "--file", writeItinerary(t, tokyoJSON), "--arrival", "09:00")
	require.Equal(t, exitOK, code, stderr)

	var res remediateOutput
	require.NoError(t, json.Unmarshal(out, &res))
	require.Len(t, res.Itinerary.Days[0].Slots, 1)
	kept := res.Itinerary.Days[0].Slots[0]
	assert.Equal(t, "Ueno Park", kept.Options[0].Activity.Name)
	assert.Equal(t, "d1-slot-1", kept.SlotID)

	types := map[domain.ChangeType]int{}
	for _, c := range res.Changes {
		types[c.Type]++
	}
	assert.Equal(t, 1, types[domain.ChangeRemovedImpossibleSlot])
	assert.Equal(t, 1, types[domain.ChangeFixedSlotID])
	assert.Empty(t, res.RunID)
}

func TestRemediateResolvesCommutesLocally(t *testing.T) {
	isolateEnv(t)
	code, out, stderr := runCLI(t, "remediate", "--file", writeItinerary(t, tokyoJSON), "--resolve-commutes")
	require.Equal(t, exitOK, code, stderr)

	var res remediateOutput
	require.NoError(t, json.Unmarshal(out, &res))
	c := res.Itinerary.Days[0].Slots[1].CommuteFromPrevious
	require.NotNil(t, c)
	assert.Equal(t, domain.MethodWalk, c.Method)
	assert.Positive(t, c.Duration)
}

func TestFullWithoutProviders(t *testing.T) {
	isolateEnv(t)
	code, out, stderr := runCLI(t, "full", "--file", writeItinerary(t, tokyoJSON))
	require.Equal(t, exitOK, code, stderr)

	var res fullOutput
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Zero(t, res.JudgmentCalls)
	assert.Zero(t, res.JudgmentChanges)
	assert.Len(t, res.Changes, res.AlgorithmicChanges)
}

func TestInspectByName(t *testing.T) {
	isolateEnv(t)
	code, out, stderr := runCLI(t, "inspect", "skytree", "--file", writeItinerary(t, rushedJSON))
	require.Equal(t, exitOK, code, stderr)

	var res inspectOutput
	require.NoError(t, json.Unmarshal(out, &res))
	assert.Equal(t, "d1-slot-2", res.SlotID)
	assert.Equal(t, 1, res.DayNumber)
	require.NotNil(t, res.Option)
	assert.Equal(t, "o2", res.Option.ID)
	assert.True(t, res.Move.Movable)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, domain.LayerTravel, res.Violations[0].Layer)
}

func TestUsageErrors(t *testing.T) {
	isolateEnv(t)
	file := writeItinerary(t, tokyoJSON)

	cases := map[string][]string{
		"no input":        {"validate"},
		"both inputs":     {"validate", "--file", file, "--itinerary-id", "trip-tokyo"},
		"id without db":   {"validate", "--itinerary-id", "trip-tokyo"},
		"save without db": {"remediate", "--file", file, "--save"},
		"bad arrival":     {"remediate", "--file", file, "--arrival", "25:99"},
		"geocode no key":  {"full", "--file", file, "--resolve-coordinates"},
		"missing file":    {"validate", "--file", filepath.Join(t.TempDir(), "nope.json")},
		"unknown command": {"optimize"},
		"inspect no hit":  {"inspect", "Fushimi Inari", "--file", file},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code, _, _ := runCLI(t, args...)
			assert.Equal(t, exitError, code)
		})
	}
}
