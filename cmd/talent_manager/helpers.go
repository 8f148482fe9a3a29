package main

import (
	"context"
	"fmt"

	"github.com/jonathan/talent-manager/internal/config"
	"github.com/jonathan/talent-manager/internal/db"
	"github.com/jonathan/talent-manager/internal/llm"
	"github.com/jonathan/talent-manager/internal/pipeline"
	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/tts"
	"github.com/jonathan/talent-manager/internal/video"
	"github.com/jonathan/talent-manager/internal/youtube"
)

// resolveConfig loads the config file if one was given, layers environment
// values underneath, and validates the result. CLI flag overrides are
// applied by each command after this, so flags always win.
func resolveConfig(configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildRegistry returns the specialization registry, extended with profiles
// from the configured specializations file when present.
func buildRegistry(cfg config.Config) (*specialization.Registry, error) {
	registry := specialization.NewRegistry()
	if cfg.SpecializationsFile != "" {
		if err := registry.LoadFile(cfg.SpecializationsFile); err != nil {
			return nil, fmt.Errorf("failed to load specializations: %w", err)
		}
	}
	return registry, nil
}

// openDatabase connects to PostgreSQL and ensures the schema exists.
func openDatabase(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// buildPipeline wires the content creation pipeline from config. The
// database and uploader are optional; everything else is required. The
// returned cleanup closes the LLM client and must be called when done.
func buildPipeline(ctx context.Context, cfg config.Config, registry *specialization.Registry, database *db.DB) (*pipeline.Pipeline, func(), error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or gemini_api_key in config)")
	}
	if cfg.ElevenLabsAPIKey == "" {
		return nil, nil, fmt.Errorf("ElevenLabs API key is required (set ELEVENLABS_API_KEY or elevenlabs_api_key in config)")
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	cleanup := func() { _ = llmClient.Close() }

	ttsClient, err := tts.NewClient(cfg.ElevenLabsAPIKey)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	var uploader pipeline.VideoUploader
	if cfg.YouTubeCredentials != "" {
		yt, err := youtube.NewUploaderFromCredentialsFile(ctx, cfg.YouTubeCredentials)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create YouTube uploader: %w", err)
		}
		uploader = yt
	}

	p, err := pipeline.New(pipeline.Options{
		LLM:            llmClient,
		Synthesizer:    ttsClient,
		Assembler:      video.NewAssembler(cfg.FFmpegPath),
		Uploader:       uploader,
		Database:       database,
		Registry:       registry,
		WorkDir:        cfg.OutputDir,
		DefaultVoiceID: cfg.DefaultVoiceID,
		PrivacyStatus:  cfg.PrivacyStatus,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return p, cleanup, nil
}
