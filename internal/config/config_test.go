package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/core/matching"
)

func TestValidate_DefaultConfig(t *testing.T) {
	cfg := Default()

	err := Validate(cfg)
	assert.NoError(t, err)
	assert.Equal(t, matching.DefaultWeights(), cfg.Matching.Weights)
	assert.Equal(t, 50.0, cfg.Matching.MaxDistanceKm)
	assert.True(t, cfg.Award.ResolveHolidays)
	assert.NotEmpty(t, cfg.PublicHolidays)
}

func TestValidate_CustomWeights(t *testing.T) {
	cfg := Default()
	cfg.Matching.Weights = matching.Weights{
		Certification: 0.3,
		Training:      0.3,
		Experience:    0.2,
		Distance:      0.1,
		Cost:          0.1,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_WeightsMustSumToOne(t *testing.T) {
	cfg := Default()
	cfg.Matching.Weights.Certification = 0.5

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "weights must sum to 1.0")
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := Default()
	cfg.Matching.Weights.Certification = -0.1
	cfg.Matching.Weights.Training = 0.7

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_MaxRosterShiftsRequired(t *testing.T) {
	cfg := Default()
	cfg.Award.MaxRosterShifts = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := Default()
	cfg.PublicHolidays = []holidays.Definition{
		{Name: "Christmas Day", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"},
		{Name: "Broken", RRule: "INVALID_RRULE_SYNTAX"},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in publicHolidays[1]")
}

func TestValidate_EmptyRRule(t *testing.T) {
	cfg := Default()
	cfg.PublicHolidays = []holidays.Definition{{Name: "Nothing", RRule: ""}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_EasterRRule(t *testing.T) {
	cfg := Default()
	cfg.PublicHolidays = []holidays.Definition{{Name: "Good Friday", RRule: "FREQ=YEARLY;BYEASTER=-2"}}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
matching:
  weights:
    certification: 0.5
    training: 0.2
    experience: 0.1
    distance: 0.1
    cost: 0.1
  maxDistanceKm: 30
  includeExcluded: true
award:
  resolveHolidays: false
  maxRosterShifts: 52
publicHolidays:
  - name: "Christmas Day"
    rrule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25"
logging:
  dir: "/tmp/rostering-logs"
  level: "debug"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Matching.Weights.Certification)
	assert.Equal(t, 30.0, cfg.Matching.MaxDistanceKm)
	assert.True(t, cfg.Matching.IncludeExcluded)
	assert.False(t, cfg.Award.ResolveHolidays)
	assert.Equal(t, 52, cfg.Award.MaxRosterShifts)
	require.Len(t, cfg.PublicHolidays, 1)
	assert.Equal(t, "Christmas Day", cfg.PublicHolidays[0].Name)
	assert.Equal(t, "/tmp/rostering-logs", cfg.Logging.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
matching:
  maxDistanceKm: 25
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, 25.0, cfg.Matching.MaxDistanceKm)
	assert.Equal(t, defaults.Matching.Weights, cfg.Matching.Weights)
	assert.Equal(t, defaults.Award, cfg.Award)
	assert.Equal(t, defaults.PublicHolidays, cfg.PublicHolidays)
	assert.Equal(t, defaults.Logging, cfg.Logging)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
publicHolidays:
  - name: "Broken"
    rrule: "INVALID_RRULE_SYNTAX"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_HolidayWithoutRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_holiday.yaml")

	invalidHoliday := `
publicHolidays:
  - name: "Christmas Day"
`

	err := os.WriteFile(configPath, []byte(invalidHoliday), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
matching:
  maxDistanceKm: 25
    invalid indentation
award: true
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_PrefersEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, os.WriteFile("rostering_config.yaml", []byte("matching:\n  maxDistanceKm: 10\n"), 0644))
	require.NoError(t, os.WriteFile("rostering_config.test.yaml", []byte("matching:\n  maxDistanceKm: 20\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Matching.MaxDistanceKm)

	cfg, err = LoadWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Matching.MaxDistanceKm)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWithEnv("test")
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(orig))
	})
}
