package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-manager/internal/llm"
	"github.com/jonathan/talent-manager/internal/types"
	"github.com/jonathan/talent-manager/internal/video"
	"github.com/jonathan/talent-manager/internal/youtube"
)

type fakeLLM struct {
	script      string
	scriptErr   error
	metadata    string
	metadataErr error
	summary     string
	summaryErr  error

	scriptPrompt string
	jsonPrompts  []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.scriptPrompt = prompt
	return f.script, f.scriptErr
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.jsonPrompts = append(f.jsonPrompts, prompt)
	if strings.Contains(prompt, "research assistant") {
		return f.summary, f.summaryErr
	}
	return f.metadata, f.metadataErr
}

func (f *fakeLLM) GetModel(tier llm.ModelTier) string { return "fake-model" }
func (f *fakeLLM) Close() error                       { return nil }

type fakeSynth struct {
	err       error
	gotText   string
	gotVoice  string
	gotOutput string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, voiceID, outputPath string) error {
	f.gotText = text
	f.gotVoice = voiceID
	f.gotOutput = outputPath
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte("audio"), 0o644)
}

type fakeAssembler struct {
	err         error
	duration    time.Duration
	durationErr error
	opts        video.AssembleOptions
	probedPath  string
}

func (f *fakeAssembler) Assemble(ctx context.Context, opts video.AssembleOptions) error {
	f.opts = opts
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(opts.OutputPath, []byte("video"), 0o644)
}

func (f *fakeAssembler) Duration(ctx context.Context, path string) (time.Duration, error) {
	f.probedPath = path
	if f.durationErr != nil {
		return 0, f.durationErr
	}
	if f.duration != 0 {
		return f.duration, nil
	}
	return 90 * time.Second, nil
}

type fakeUploader struct {
	err error
	req youtube.UploadRequest
}

func (f *fakeUploader) Upload(ctx context.Context, req youtube.UploadRequest) (string, error) {
	f.req = req
	if f.err != nil {
		return "", f.err
	}
	return "https://www.youtube.com/watch?v=test123", nil
}

const validMetadata = `{"title": "Understanding goroutines", "description": "A deep dive.", "tags": ["golang", "concurrency"]}`

func newTestPipeline(t *testing.T, llmClient llm.Client, synth SpeechSynthesizer, asm VideoAssembler, up VideoUploader) *Pipeline {
	t.Helper()
	p, err := New(Options{
		LLM:            llmClient,
		Synthesizer:    synth,
		Assembler:      asm,
		Uploader:       up,
		WorkDir:        t.TempDir(),
		DefaultVoiceID: "voice_default",
	})
	require.NoError(t, err)
	return p
}

func baseRequest() types.ContentRequest {
	return types.ContentRequest{
		TalentName:  "ai_senpai",
		Topic:       "Understanding goroutines",
		ContentType: types.LongForm,
		AutoUpload:  true,
	}
}

func TestCreateContent_FullRun(t *testing.T) {
	llmClient := &fakeLLM{script: "Welcome back! Today we cover goroutines.", metadata: validMetadata}
	synth := &fakeSynth{}
	asm := &fakeAssembler{}
	up := &fakeUploader{}
	p := newTestPipeline(t, llmClient, synth, asm, up)

	result, err := p.CreateContent(context.Background(), baseRequest())

	require.NoError(t, err)
	require.True(t, result.Success, "pipeline should succeed: %s", result.Error)
	assert.Equal(t, "Understanding goroutines", result.Title)
	assert.Equal(t, []string{"golang", "concurrency"}, result.Tags)
	assert.NotEmpty(t, result.AudioPath)
	assert.NotEmpty(t, result.VideoPath)
	assert.Equal(t, "https://www.youtube.com/watch?v=test123", result.YouTubeURL)

	assert.Equal(t, "voice_default", synth.gotVoice)
	assert.Equal(t, result.AudioPath, asm.opts.AudioPath)
	assert.Equal(t, video.ResolutionLandscape, asm.opts.Resolution)
	assert.Equal(t, result.VideoPath, up.req.VideoPath)
	assert.Equal(t, "Understanding goroutines", up.req.Title)
}

func TestCreateContent_RecordsVideoDuration(t *testing.T) {
	asm := &fakeAssembler{duration: 2 * time.Minute}
	p := newTestPipeline(t, &fakeLLM{script: "A script.", metadata: validMetadata}, &fakeSynth{}, asm, nil)

	req := baseRequest()
	req.AutoUpload = false

	result, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	require.True(t, result.Success, "pipeline should succeed: %s", result.Error)
	assert.Equal(t, result.VideoPath, asm.probedPath)
	assert.InDelta(t, 120.0, result.DurationSeconds, 0.001)
}

func TestCreateContent_DurationProbeFailureIsNonFatal(t *testing.T) {
	asm := &fakeAssembler{durationErr: errors.New("ffprobe not found")}
	p := newTestPipeline(t, &fakeLLM{script: "A script.", metadata: validMetadata}, &fakeSynth{}, asm, nil)

	req := baseRequest()
	req.AutoUpload = false

	result, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, result.Success, "pipeline should succeed: %s", result.Error)
	assert.Zero(t, result.DurationSeconds)
}

func TestCreateContent_ShortFormUsesPortrait(t *testing.T) {
	asm := &fakeAssembler{}
	p := newTestPipeline(t, &fakeLLM{script: "Quick tip!", metadata: validMetadata}, &fakeSynth{}, asm, nil)

	req := baseRequest()
	req.ContentType = types.ShortForm
	req.AutoUpload = false

	result, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, video.ResolutionPortrait, asm.opts.Resolution)
	assert.Empty(t, result.YouTubeURL)
}

const validSummary = `{"summary": "Goroutines are multiplexed onto OS threads by the runtime.", "talking_points": ["work stealing", "preemption"], "audience_hook": "Concurrency is not parallelism."}`

func TestCreateContent_SummarizesResearchContext(t *testing.T) {
	llmClient := &fakeLLM{script: "A script.", metadata: validMetadata, summary: validSummary}
	p := newTestPipeline(t, llmClient, &fakeSynth{}, &fakeAssembler{}, nil)

	req := baseRequest()
	req.AutoUpload = false
	req.ResearchContext = &types.ContentPlanItem{
		Topic:       "Understanding goroutines",
		TalentAngle: "Deep dive: Understanding goroutines",
		Keywords:    []string{"goroutine", "scheduler"},
	}

	result, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	require.True(t, result.Success, "pipeline should succeed: %s", result.Error)

	// One JSON call for the summary, one for the metadata.
	require.Len(t, llmClient.jsonPrompts, 2)
	assert.Contains(t, llmClient.jsonPrompts[0], "Deep dive: Understanding goroutines")
	assert.Contains(t, llmClient.scriptPrompt, "Background: Goroutines are multiplexed onto OS threads by the runtime.")
	assert.Contains(t, llmClient.scriptPrompt, "- work stealing")
}

func TestCreateContent_SummaryFailureDoesNotFailRun(t *testing.T) {
	llmClient := &fakeLLM{script: "A script.", metadata: validMetadata, summaryErr: errors.New("rate limited")}
	p := newTestPipeline(t, llmClient, &fakeSynth{}, &fakeAssembler{}, nil)

	req := baseRequest()
	req.AutoUpload = false
	req.ResearchContext = &types.ContentPlanItem{Topic: "Understanding goroutines"}

	result, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, result.Success, "pipeline should succeed: %s", result.Error)
	assert.NotContains(t, llmClient.scriptPrompt, "Background:")
}

func TestCreateContent_InvalidSummaryIsDropped(t *testing.T) {
	llmClient := &fakeLLM{script: "A script.", metadata: validMetadata, summary: `{"summary": ""}`}
	p := newTestPipeline(t, llmClient, &fakeSynth{}, &fakeAssembler{}, nil)

	req := baseRequest()
	req.AutoUpload = false
	req.ResearchContext = &types.ContentPlanItem{Topic: "Understanding goroutines"}

	result, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, result.Success, "pipeline should succeed: %s", result.Error)
	assert.NotContains(t, llmClient.scriptPrompt, "Background:")
}

func TestCreateContent_ScriptFailure(t *testing.T) {
	p := newTestPipeline(t, &fakeLLM{scriptErr: errors.New("rate limited")}, &fakeSynth{}, &fakeAssembler{}, nil)

	result, err := p.CreateContent(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "script generation failed")
	assert.Contains(t, result.Error, "rate limited")
	assert.Empty(t, result.AudioPath)
}

func TestCreateContent_InvalidMetadataFails(t *testing.T) {
	llmClient := &fakeLLM{script: "A script.", metadata: `{"title": "No tags here", "description": "D"}`}
	p := newTestPipeline(t, llmClient, &fakeSynth{}, &fakeAssembler{}, nil)

	result, err := p.CreateContent(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "metadata")
}

func TestCreateContent_SynthesisFailure(t *testing.T) {
	synth := &fakeSynth{err: errors.New("voice not found")}
	p := newTestPipeline(t, &fakeLLM{script: "A script.", metadata: validMetadata}, synth, &fakeAssembler{}, nil)

	result, err := p.CreateContent(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "speech synthesis failed")
}

func TestCreateContent_UploadFailureKeepsVideo(t *testing.T) {
	up := &fakeUploader{err: errors.New("quota exceeded")}
	p := newTestPipeline(t, &fakeLLM{script: "A script.", metadata: validMetadata}, &fakeSynth{}, &fakeAssembler{}, up)

	result, err := p.CreateContent(context.Background(), baseRequest())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "upload failed")
	// The local video survives the failed upload.
	assert.NotEmpty(t, result.VideoPath)
	_, statErr := os.Stat(result.VideoPath)
	assert.NoError(t, statErr)
}

func TestCreateContent_CleansScriptBeforeSynthesis(t *testing.T) {
	synth := &fakeSynth{}
	llmClient := &fakeLLM{script: "[intro music] **Welcome!** Today: goroutines.", metadata: validMetadata}
	p := newTestPipeline(t, llmClient, synth, &fakeAssembler{}, nil)

	req := baseRequest()
	req.AutoUpload = false
	_, err := p.CreateContent(context.Background(), req)

	require.NoError(t, err)
	assert.NotContains(t, synth.gotText, "intro music")
	assert.NotContains(t, synth.gotText, "**")
	assert.Contains(t, synth.gotText, "Welcome!")
}

func TestCreateContent_MissingRequiredFields(t *testing.T) {
	p := newTestPipeline(t, &fakeLLM{}, &fakeSynth{}, &fakeAssembler{}, nil)

	result, err := p.CreateContent(context.Background(), types.ContentRequest{})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestNew_RequiresStages(t *testing.T) {
	_, err := New(Options{Synthesizer: &fakeSynth{}, Assembler: &fakeAssembler{}})
	assert.Error(t, err)

	_, err = New(Options{LLM: &fakeLLM{}, Assembler: &fakeAssembler{}})
	assert.Error(t, err)

	_, err = New(Options{LLM: &fakeLLM{}, Synthesizer: &fakeSynth{}})
	assert.Error(t, err)
}
