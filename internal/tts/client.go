// Package tts converts cleaned scripts to speech through the ElevenLabs API.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/talent-manager/internal/fetch"
)

// DefaultBaseURL is the ElevenLabs API root.
const DefaultBaseURL = "https://api.elevenlabs.io/v1"

// DefaultModelID is the multilingual model used for all talents.
const DefaultModelID = "eleven_multilingual_v2"

// defaultTimeout bounds one synthesis request. Long scripts take a while.
const defaultTimeout = 120 * time.Second

// Error represents a TTS API failure.
type Error struct {
	VoiceID    string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("tts request for voice %s failed: %s (status %d)", e.VoiceID, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("tts request for voice %s failed: %s", e.VoiceID, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client calls the ElevenLabs text-to-speech endpoint.
type Client struct {
	apiKey  string
	baseURL string
	modelID string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithModelID overrides the synthesis model.
func WithModelID(modelID string) Option {
	return func(c *Client) { c.modelID = modelID }
}

// NewClient returns a TTS client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("TTS API key is required")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		modelID: DefaultModelID,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to speech with the given voice and writes the MP3
// to outputPath, creating parent directories as needed.
func (c *Client) Synthesize(ctx context.Context, text, voiceID, outputPath string) error {
	if text == "" {
		return &Error{VoiceID: voiceID, Message: "text must not be empty"}
	}
	if voiceID == "" {
		return &Error{Message: "voice ID must not be empty"}
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return &Error{VoiceID: voiceID, Message: "failed to encode request", Cause: err}
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &Error{VoiceID: voiceID, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("User-Agent", fetch.DefaultUserAgent)
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{VoiceID: voiceID, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{
			VoiceID:    voiceID,
			Message:    fmt.Sprintf("unexpected response: %s", string(detail)),
			StatusCode: resp.StatusCode,
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return &Error{VoiceID: voiceID, Message: "failed to create output directory", Cause: err}
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return &Error{VoiceID: voiceID, Message: "failed to create output file", Cause: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return &Error{VoiceID: voiceID, Message: "failed to write audio", Cause: err}
	}
	return nil
}
