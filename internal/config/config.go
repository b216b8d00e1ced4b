package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/core/matching"
)

// ErrConfigNotFound is returned by Load and LoadWithEnv when no config file exists
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

const weightSumTolerance = 1e-6

// MatchingConfig holds the defaults applied to match requests
type MatchingConfig struct {
	Weights         matching.Weights `yaml:"weights"`
	MaxDistanceKm   float64          `yaml:"maxDistanceKm" validate:"gte=0"`
	IncludeExcluded bool             `yaml:"includeExcluded"`
}

// AwardConfig holds the defaults applied to award and roster requests
type AwardConfig struct {
	// ResolveHolidays looks up the public holiday for a shift when the request doesn't name one
	ResolveHolidays bool `yaml:"resolveHolidays"`
	MaxRosterShifts int  `yaml:"maxRosterShifts" validate:"min=1,max=10000"`
}

// LoggingConfig controls the file log written alongside console output
type LoggingConfig struct {
	Dir   string `yaml:"dir,omitempty"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Config represents the application configuration
type Config struct {
	Matching       MatchingConfig        `yaml:"matching"`
	Award          AwardConfig           `yaml:"award"`
	PublicHolidays []holidays.Definition `yaml:"publicHolidays,omitempty" validate:"dive"`
	Logging        LoggingConfig         `yaml:"logging"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			Weights:       matching.DefaultWeights(),
			MaxDistanceKm: matching.DefaultMaxDistanceKm,
		},
		Award: AwardConfig{
			ResolveHolidays: true,
			MaxRosterShifts: 366,
		},
		PublicHolidays: holidays.DefaultAustralianHolidays(),
		Logging: LoggingConfig{
			Dir:   "logs",
			Level: "info",
		},
	}
}

// Load loads and validates the configuration from rostering_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment, preferring rostering_config.<env>.yaml
// over rostering_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, err
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Sections missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct, checks rrule syntax and checks the match weights sum to 1
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each public holiday
	for i, holiday := range cfg.PublicHolidays {
		if _, err := rrule.StrToRRule(holiday.RRule); err != nil {
			return fmt.Errorf("invalid rrule in publicHolidays[%d]: %w", i, err)
		}
	}

	if sum := cfg.Matching.Weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("config validation failed: matching weights must sum to 1.0, got %.4f", sum)
	}

	return nil
}

// findConfigFile searches the current directory then the home directory for the config file.
// If env is provided the env-specific file (e.g. "rostering_config.test.yaml") is tried first.
func findConfigFile(env string) (string, error) {
	fileNames := []string{"rostering_config.yaml"}
	if env != "" {
		fileNames = append([]string{"rostering_config." + env + ".yaml"}, fileNames...)
	}

	// Check current directory
	for _, name := range fileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range fileNames {
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", ErrConfigNotFound
}
