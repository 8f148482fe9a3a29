// Package pipeline turns a content request into a finished, optionally
// uploaded video: script generation, speech synthesis, video assembly,
// upload, and persistence.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/db"
	"github.com/jonathan/talent-manager/internal/llm"
	"github.com/jonathan/talent-manager/internal/logging"
	"github.com/jonathan/talent-manager/internal/schemas"
	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/types"
	"github.com/jonathan/talent-manager/internal/video"
	"github.com/jonathan/talent-manager/internal/youtube"
)

// SpeechSynthesizer converts text to an audio file.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, outputPath string) error
}

// VideoAssembler renders audio into a video file and can probe the result.
type VideoAssembler interface {
	Assemble(ctx context.Context, opts video.AssembleOptions) error
	Duration(ctx context.Context, path string) (time.Duration, error)
}

// VideoUploader publishes a finished video and returns its URL.
type VideoUploader interface {
	Upload(ctx context.Context, req youtube.UploadRequest) (string, error)
}

// Options wires the pipeline's stages. LLM, synthesizer, and assembler are
// required; uploader and database are optional and their stages are skipped
// when absent.
type Options struct {
	LLM         llm.Client
	Synthesizer SpeechSynthesizer
	Assembler   VideoAssembler
	Uploader    VideoUploader
	Database    *db.DB
	Registry    *specialization.Registry

	// WorkDir is where audio and video files are written.
	WorkDir string

	// DefaultVoiceID is used for talents without a configured voice.
	DefaultVoiceID string

	// PrivacyStatus for uploads, defaulting to private.
	PrivacyStatus string
}

// Pipeline executes content creation end to end.
type Pipeline struct {
	opts Options
	now  func() time.Time
}

// New validates the wiring and returns a pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.LLM == nil {
		return nil, fmt.Errorf("LLM client is required")
	}
	if opts.Synthesizer == nil {
		return nil, fmt.Errorf("speech synthesizer is required")
	}
	if opts.Assembler == nil {
		return nil, fmt.Errorf("video assembler is required")
	}
	if opts.Registry == nil {
		opts.Registry = specialization.NewRegistry()
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "output"
	}
	return &Pipeline{opts: opts, now: time.Now}, nil
}

// videoMetadata is the parsed shape of the LLM metadata response.
type videoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// CreateContent runs the full pipeline for one request. Stage failures are
// reported in the result rather than as an error so the caller always gets
// the partial state (a script generation failure still names the talent and
// topic; an upload failure still carries the finished video path).
func (p *Pipeline) CreateContent(ctx context.Context, req types.ContentRequest) (*types.ContentResult, error) {
	result := &types.ContentResult{
		TalentName:  req.TalentName,
		Topic:       req.Topic,
		ContentType: req.ContentType,
	}
	if req.TalentName == "" || req.Topic == "" {
		result.Error = "talent name and topic are required"
		return result, nil
	}

	talent, voiceID := p.resolveTalent(ctx, req.TalentName)
	profile, _ := p.opts.Registry.Lookup(talentSpecialization(talent))

	// Stage 1: script
	fmt.Printf("Step 1/5: Generating script for %q...\n", req.Topic)
	var summary *topicSummary
	if req.ResearchContext != nil {
		var summaryErr error
		summary, summaryErr = p.summarizeResearch(ctx, req.ResearchContext)
		if summaryErr != nil {
			// The raw plan item still reaches the prompt, so a failed
			// summary degrades the script rather than failing the run.
			logging.Warn("research summarization failed, using raw plan context",
				"talent", req.TalentName, "error", summaryErr)
		}
	}
	script, err := p.opts.LLM.GenerateContent(ctx, buildScriptPrompt(req, profile, summary), llm.TierAdvanced)
	if err != nil {
		return p.fail(ctx, talent, req, result, fmt.Sprintf("script generation failed: %v", err)), nil
	}
	cleaned := CleanForTTS(script)
	if cleaned == "" {
		return p.fail(ctx, talent, req, result, "script generation produced empty output"), nil
	}

	// Stage 2: metadata
	fmt.Printf("Step 2/5: Deriving video metadata...\n")
	metadata, err := p.generateMetadata(ctx, cleaned)
	if err != nil {
		return p.fail(ctx, talent, req, result, fmt.Sprintf("metadata generation failed: %v", err)), nil
	}
	result.Title = metadata.Title
	result.Tags = metadata.Tags

	slug := fileSlug(req.TalentName, p.now().UTC())

	// Stage 3: speech
	fmt.Printf("Step 3/5: Synthesizing speech...\n")
	audioPath := filepath.Join(p.opts.WorkDir, req.TalentName, slug+".mp3")
	if err := p.opts.Synthesizer.Synthesize(ctx, cleaned, voiceID, audioPath); err != nil {
		return p.fail(ctx, talent, req, result, fmt.Sprintf("speech synthesis failed: %v", err)), nil
	}
	result.AudioPath = audioPath

	// Stage 4: video
	fmt.Printf("Step 4/5: Assembling video...\n")
	videoPath := filepath.Join(p.opts.WorkDir, req.TalentName, slug+".mp4")
	resolution := video.ResolutionLandscape
	if req.ContentType == types.ShortForm {
		resolution = video.ResolutionPortrait
	}
	err = p.opts.Assembler.Assemble(ctx, video.AssembleOptions{
		AudioPath:  audioPath,
		OutputPath: videoPath,
		Resolution: resolution,
	})
	if err != nil {
		return p.fail(ctx, talent, req, result, fmt.Sprintf("video assembly failed: %v", err)), nil
	}
	result.VideoPath = videoPath
	if duration, probeErr := p.opts.Assembler.Duration(ctx, videoPath); probeErr != nil {
		logging.Warn("failed to probe video duration", "video", videoPath, "error", probeErr)
	} else {
		result.DurationSeconds = duration.Seconds()
		logging.Info("video rendered", "video", videoPath, "duration", duration.Round(time.Second))
	}

	// Stage 5: upload
	if req.AutoUpload && p.opts.Uploader != nil {
		fmt.Printf("Step 5/5: Uploading to YouTube...\n")
		url, err := p.opts.Uploader.Upload(ctx, youtube.UploadRequest{
			VideoPath:     videoPath,
			Title:         metadata.Title,
			Description:   metadata.Description,
			Tags:          metadata.Tags,
			PrivacyStatus: p.opts.PrivacyStatus,
		})
		if err != nil {
			// The video exists locally, so record the partial success.
			return p.fail(ctx, talent, req, result, fmt.Sprintf("upload failed: %v", err)), nil
		}
		result.YouTubeURL = url
	} else {
		fmt.Printf("Step 5/5: Skipping upload\n")
	}

	result.Success = true
	p.persist(ctx, talent, req, result, "")
	return result, nil
}

// generateMetadata asks the LLM for upload metadata and validates it before
// trusting it.
func (p *Pipeline) generateMetadata(ctx context.Context, script string) (*videoMetadata, error) {
	prompt := llm.BuildExtractionPrompt(llm.VideoMetadataSchema(), script)
	raw, err := p.opts.LLM.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateVideoMetadata(raw); err != nil {
		return nil, fmt.Errorf("metadata did not validate: %w", err)
	}

	var metadata videoMetadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &metadata, nil
}

// resolveTalent loads the talent row when a database is wired, falling back
// to an unpersisted talent with the default voice.
func (p *Pipeline) resolveTalent(ctx context.Context, name string) (*db.Talent, string) {
	voiceID := p.opts.DefaultVoiceID
	if p.opts.Database == nil {
		return nil, voiceID
	}

	talent, err := p.opts.Database.GetTalentByName(ctx, name)
	if err != nil {
		logging.Warn("failed to load talent, continuing without persistence", "talent", name, "error", err)
		return nil, voiceID
	}
	if talent != nil && talent.VoiceID != nil && *talent.VoiceID != "" {
		voiceID = *talent.VoiceID
	}
	return talent, voiceID
}

// fail marks the result failed, persists the failure, and returns it.
func (p *Pipeline) fail(ctx context.Context, talent *db.Talent, req types.ContentRequest, result *types.ContentResult, message string) *types.ContentResult {
	result.Success = false
	result.Error = message
	logging.Error("content creation failed", "talent", req.TalentName, "topic", req.Topic, "error", message)
	p.persist(ctx, talent, req, result, message)
	return result
}

// persist writes a content record when a database and talent row exist.
// Persistence failures are warnings, not pipeline failures.
func (p *Pipeline) persist(ctx context.Context, talent *db.Talent, req types.ContentRequest, result *types.ContentResult, errorMessage string) {
	if p.opts.Database == nil || talent == nil {
		return
	}

	status := db.ContentStatusGenerated
	if result.YouTubeURL != "" {
		status = db.ContentStatusUploaded
	}
	if !result.Success {
		status = db.ContentStatusFailed
	}

	title := result.Title
	if title == "" {
		title = req.Topic
	}

	_, err := p.opts.Database.CreateContentRecord(ctx, &db.ContentRecordInput{
		TalentID:        talent.ID,
		JobID:           result.JobID,
		Title:           title,
		Topic:           req.Topic,
		ContentType:     string(req.ContentType),
		Status:          status,
		AudioPath:       result.AudioPath,
		VideoPath:       result.VideoPath,
		YouTubeURL:      result.YouTubeURL,
		Tags:            result.Tags,
		ResearchContext: req.ResearchContext,
		ErrorMessage:    errorMessage,
	})
	if err != nil {
		logging.Warn("failed to persist content record", "talent", req.TalentName, "error", err)
	}
}

func talentSpecialization(talent *db.Talent) string {
	if talent == nil {
		return ""
	}
	return talent.Specialization
}

// fileSlug builds a stable filename stem for one run's artifacts.
func fileSlug(talentName string, now time.Time) string {
	name := strings.ToLower(strings.ReplaceAll(talentName, " ", "_"))
	return fmt.Sprintf("%s_%s", name, now.Format("20060102_150405"))
}
