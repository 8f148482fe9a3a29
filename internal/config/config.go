// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration. Values come from a JSON file,
// environment variables, and CLI flags, merged in that order.
type Config struct {
	// API credentials
	GeminiAPIKey     string `json:"gemini_api_key,omitempty"`
	ElevenLabsAPIKey string `json:"elevenlabs_api_key,omitempty"`

	// DefaultVoiceID is the TTS voice for talents without one configured.
	DefaultVoiceID string `json:"default_voice_id,omitempty"`

	// YouTubeCredentials is the path to the OAuth client secret file.
	YouTubeCredentials string `json:"youtube_credentials,omitempty"`

	// PrivacyStatus for uploaded videos.
	PrivacyStatus string `json:"privacy_status,omitempty" validate:"omitempty,oneof=public unlisted private"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"`
	OutputDir   string `json:"output_dir,omitempty"`

	// FFmpegPath overrides the ffmpeg binary, defaulting to PATH lookup.
	FFmpegPath string `json:"ffmpeg_path,omitempty"`

	// SpecializationsFile is a JSON file of extra specialization profiles.
	SpecializationsFile string `json:"specializations_file,omitempty"`

	// Autonomous loop tuning
	MaxConcurrentJobs   int `json:"max_concurrent_jobs,omitempty" validate:"gte=0,lte=20"`
	ResearchIntervalMin int `json:"research_interval_min,omitempty" validate:"gte=0"`
	PlanDaysAhead       int `json:"plan_days_ahead,omitempty" validate:"gte=0,lte=90"`

	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a config populated from environment variables. A .env file
// loaded beforehand (godotenv in main) feeds the same names.
func FromEnv() Config {
	return Config{
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		ElevenLabsAPIKey:    os.Getenv("ELEVENLABS_API_KEY"),
		DefaultVoiceID:      os.Getenv("ELEVENLABS_VOICE_ID"),
		YouTubeCredentials:  os.Getenv("YOUTUBE_CREDENTIALS"),
		PrivacyStatus:       os.Getenv("YOUTUBE_PRIVACY_STATUS"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		OutputDir:           os.Getenv("OUTPUT_DIR"),
		FFmpegPath:          os.Getenv("FFMPEG_PATH"),
		SpecializationsFile: os.Getenv("SPECIALIZATIONS_FILE"),
		MaxConcurrentJobs:   envInt("MAX_CONCURRENT_JOBS"),
		ResearchIntervalMin: envInt("RESEARCH_INTERVAL_MIN"),
		PlanDaysAhead:       envInt("PLAN_DAYS_AHEAD"),
	}
}

func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// validate is shared; the library is concurrency-safe and caches struct info.
var validate = validator.New()

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the
// command being run and are enforced there.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field %s failed %s validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.SpecializationsFile != "" {
		if _, err := os.Stat(c.SpecializationsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: specializations file not found: %s", c.SpecializationsFile)
		}
	}
	if c.YouTubeCredentials != "" {
		if _, err := os.Stat(c.YouTubeCredentials); os.IsNotExist(err) {
			return fmt.Errorf("config error: YouTube credentials file not found: %s", c.YouTubeCredentials)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This applies env values as defaults under a config file, and
// both under CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.ElevenLabsAPIKey == "" {
		result.ElevenLabsAPIKey = defaults.ElevenLabsAPIKey
	}
	if result.DefaultVoiceID == "" {
		result.DefaultVoiceID = defaults.DefaultVoiceID
	}
	if result.YouTubeCredentials == "" {
		result.YouTubeCredentials = defaults.YouTubeCredentials
	}
	if result.PrivacyStatus == "" {
		result.PrivacyStatus = defaults.PrivacyStatus
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.FFmpegPath == "" {
		result.FFmpegPath = defaults.FFmpegPath
	}
	if result.SpecializationsFile == "" {
		result.SpecializationsFile = defaults.SpecializationsFile
	}

	// Int fields: use default if zero
	if result.MaxConcurrentJobs == 0 {
		result.MaxConcurrentJobs = defaults.MaxConcurrentJobs
	}
	if result.ResearchIntervalMin == 0 {
		result.ResearchIntervalMin = defaults.ResearchIntervalMin
	}
	if result.PlanDaysAhead == 0 {
		result.PlanDaysAhead = defaults.PlanDaysAhead
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
