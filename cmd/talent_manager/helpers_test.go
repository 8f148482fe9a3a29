package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveConfig_FileLayeredOverEnv(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "/tmp/from_env")
	t.Setenv("GEMINI_API_KEY", "env_key")

	path := writeConfigFile(t, `{"gemini_api_key": "file_key", "privacy_status": "unlisted"}`)

	cfg, err := resolveConfig(path)

	require.NoError(t, err)
	// File wins over env for fields it sets; env fills the rest.
	assert.Equal(t, "file_key", cfg.GeminiAPIKey)
	assert.Equal(t, "unlisted", cfg.PrivacyStatus)
	assert.Equal(t, "/tmp/from_env", cfg.OutputDir)
}

func TestResolveConfig_NoFileUsesEnv(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY", "env_tts_key")

	cfg, err := resolveConfig("")

	require.NoError(t, err)
	assert.Equal(t, "env_tts_key", cfg.ElevenLabsAPIKey)
}

func TestResolveConfig_InvalidPrivacyStatus(t *testing.T) {
	path := writeConfigFile(t, `{"privacy_status": "everyone"}`)

	_, err := resolveConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PrivacyStatus")
}

func TestResolveConfig_MissingFile(t *testing.T) {
	_, err := resolveConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestBuildRegistry_LoadsProfilesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profiles": [
		{"name": "gardening", "posting_frequency": 0.25, "angle_templates": ["Growing %s at home"]}
	]}`), 0o644))

	cfg, err := resolveConfig("")
	require.NoError(t, err)
	cfg.SpecializationsFile = path

	registry, err := buildRegistry(cfg)

	require.NoError(t, err)
	profile, ok := registry.Lookup("gardening")
	assert.True(t, ok)
	assert.Equal(t, 0.25, profile.PostingFrequency)
}

func TestBuildRegistry_BadProfilesFile(t *testing.T) {
	cfg, err := resolveConfig("")
	require.NoError(t, err)
	cfg.SpecializationsFile = filepath.Join(t.TempDir(), "missing.json")

	_, err = buildRegistry(cfg)
	assert.Error(t, err)
}
