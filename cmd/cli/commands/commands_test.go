package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/core/matching"
	"github.com/jakechorley/care-rostering/pkg/core/services"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

const matchRequestYAML = `
shift:
  shiftID: shift-1
  participantID: participant-1
  participantLocation:
    lat: -33.8688
    lng: 151.2093
  requiredCertifications:
    - name: First Aid
      type: certification
      level: must_have
  start: 2025-03-04T08:00:00Z
  end: 2025-03-04T16:00:00Z
workers:
  - id: w-1
    fullName: Jordan Lee
    certifications:
      - name: First Aid
        isValid: true
    experienceHours: 6000
    hourlyRate: 30
    location:
      lat: -33.8688
      lng: 151.2093
    available: true
  - id: w-2
    fullName: Casey Wong
    experienceHours: 100
    hourlyRate: 30
    available: true
`

const awardRequestJSON = `{
  "baseHourlyRate": 30,
  "workerLevel": 1,
  "start": "2025-03-04T08:00:00Z",
  "end": "2025-03-04T18:00:00Z"
}`

func testApp(t *testing.T, format string) (*AppContext, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	calendar, err := holidays.NewCalendar(cfg.PublicHolidays)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &AppContext{
		Cfg:      cfg,
		Calendar: calendar,
		Recorder: metrics.NewRecorder(),
		Logger:   zap.NewNop(),
		Ctx:      context.Background(),
		Out:      out,
		Format:   format,
	}, out
}

func writeRequestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDecodeRequest_YAML(t *testing.T) {
	var request services.MatchRequest
	require.NoError(t, decodeRequest([]byte(matchRequestYAML), &request))

	assert.Equal(t, "shift-1", request.Shift.ShiftID)
	assert.Equal(t, time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC), request.Shift.Start.UTC())
	require.Len(t, request.Shift.RequiredCertifications, 1)
	assert.Equal(t, matching.LevelMustHave, request.Shift.RequiredCertifications[0].Level)
	require.Len(t, request.Workers, 2)
	require.NotNil(t, request.Workers[0].Location)
	assert.Nil(t, request.Workers[1].Location)
	assert.True(t, request.Workers[0].Certifications[0].IsValid)
}

func TestDecodeRequest_JSON(t *testing.T) {
	var request services.AwardRequest
	require.NoError(t, decodeRequest([]byte(awardRequestJSON), &request))

	assert.Equal(t, 30.0, request.BaseHourlyRate)
	assert.Equal(t, 1, request.WorkerLevel)
	assert.Equal(t, 10*time.Hour, request.End.Sub(request.Start))
}

func TestDecodeRequest_Invalid(t *testing.T) {
	var request services.AwardRequest
	err := decodeRequest([]byte("baseHourlyRate: [not a number"), &request)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse request file")
}

func TestMatchCmd_JSON(t *testing.T) {
	app, out := testApp(t, FormatJSON)
	cmd := MatchCmd(app)
	cmd.SetArgs([]string{writeRequestFile(t, "match.yaml", matchRequestYAML)})

	require.NoError(t, cmd.Execute())

	var response services.MatchResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	assert.NotEmpty(t, response.RequestID)
	require.Len(t, response.Ranking.Matches, 2)
	assert.Equal(t, "w-1", response.Ranking.Matches[0].WorkerID)
	assert.True(t, response.Ranking.Matches[1].Excluded)
}

func TestMatchCmd_Table(t *testing.T) {
	app, out := testApp(t, FormatTable)
	cmd := MatchCmd(app)
	cmd.SetArgs([]string{writeRequestFile(t, "match.yaml", matchRequestYAML)})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Shift shift-1: 1 eligible of 2 candidates")
	assert.Contains(t, output, "Jordan Lee")
	assert.Contains(t, output, "excluded: missing required certifications")
}

func TestAwardCmd(t *testing.T) {
	app, out := testApp(t, FormatJSON)
	cmd := AwardCmd(app)
	cmd.SetArgs([]string{writeRequestFile(t, "award.json", awardRequestJSON)})

	require.NoError(t, cmd.Execute())

	var response services.AwardResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	assert.Equal(t, 330.0, response.Award.TotalCost)
}

func TestAwardCmd_Table(t *testing.T) {
	app, out := testApp(t, FormatTable)
	cmd := AwardCmd(app)
	cmd.SetArgs([]string{writeRequestFile(t, "award.json", awardRequestJSON)})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Total cost:     $330.00")
	assert.Contains(t, out.String(), "overtime_first_2hrs")
}

func TestRosterCmd(t *testing.T) {
	app, out := testApp(t, FormatTable)
	cmd := RosterCmd(app)
	request := `
pattern: "DTSTART:20251224T080000Z\nRRULE:FREQ=DAILY;COUNT=2"
durationHours: 8
baseHourlyRate: 30
workerLevel: 1
`
	cmd.SetArgs([]string{writeRequestFile(t, "roster.yaml", request)})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Christmas Day")
	assert.Contains(t, out.String(), "Cost: $840.00")
}

func TestRatesCmd(t *testing.T) {
	app, out := testApp(t, FormatJSON)
	cmd := RatesCmd(app)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var output struct {
		Rates struct {
			Sleepover float64 `json:"sleepover"`
		} `json:"rates"`
		MinBreakRequiredHours float64               `json:"min_break_required_hours"`
		PublicHolidays        []holidays.Definition `json:"public_holidays"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &output))
	assert.Equal(t, 0.57, output.Rates.Sleepover)
	assert.Equal(t, 7.0, output.MinBreakRequiredHours)
	assert.Len(t, output.PublicHolidays, 10)
}

func TestMatchCmd_MissingFile(t *testing.T) {
	app, _ := testApp(t, FormatJSON)
	cmd := MatchCmd(app)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read request file")
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat(FormatJSON))
	assert.NoError(t, ValidateFormat(FormatTable))
	assert.Error(t, ValidateFormat("xml"))
}
