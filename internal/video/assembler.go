// Package video assembles talking-head style videos from synthesized audio
// using ffmpeg.
package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/logging"
)

// defaultTimeout bounds one ffmpeg invocation.
const defaultTimeout = 30 * time.Minute

// Resolution presets per content format. Short-form is vertical.
const (
	ResolutionLandscape = "1920x1080"
	ResolutionPortrait  = "1080x1920"
)

// Assembler runs ffmpeg to produce video files.
type Assembler struct {
	ffmpegPath  string
	ffprobePath string
}

// NewAssembler returns an assembler using the given ffmpeg binary, or the
// one on PATH when empty.
func NewAssembler(ffmpegPath string) *Assembler {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	probe := "ffprobe"
	if dir := filepath.Dir(ffmpegPath); dir != "." {
		probe = filepath.Join(dir, "ffprobe")
	}
	return &Assembler{ffmpegPath: ffmpegPath, ffprobePath: probe}
}

// AssembleOptions describes one video render.
type AssembleOptions struct {
	// AudioPath is the narration track.
	AudioPath string

	// BackgroundPath is a still image looped for the video duration. When
	// empty a plain dark background is generated.
	BackgroundPath string

	// OutputPath is the target MP4 path.
	OutputPath string

	// Resolution is WxH, defaulting to landscape.
	Resolution string
}

// Assemble renders a video that loops the background image under the audio
// track, ending when the audio ends.
func (a *Assembler) Assemble(ctx context.Context, opts AssembleOptions) error {
	if opts.AudioPath == "" {
		return fmt.Errorf("audio path is required")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if _, err := os.Stat(opts.AudioPath); err != nil {
		return fmt.Errorf("audio file not readable: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resolution := opts.Resolution
	if resolution == "" {
		resolution = ResolutionLandscape
	}

	args := []string{"-y"}
	if opts.BackgroundPath != "" {
		args = append(args, "-loop", "1", "-i", opts.BackgroundPath)
	} else {
		args = append(args, "-f", "lavfi", "-i", fmt.Sprintf("color=c=0x1e1e2e:s=%s:r=30", resolution))
	}
	args = append(args,
		"-i", opts.AudioPath,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-pix_fmt", "yuv420p",
		"-vf", fmt.Sprintf("scale=%s", strings.Replace(resolution, "x", ":", 1)),
		"-c:a", "aac",
		"-b:a", "192k",
		"-shortest",
		opts.OutputPath,
	)

	if err := a.run(ctx, a.ffmpegPath, args); err != nil {
		return fmt.Errorf("video assembly failed: %w", err)
	}
	return nil
}

// Duration returns the duration of a media file via ffprobe.
func (a *Assembler) Duration(ctx context.Context, path string) (time.Duration, error) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	cmd := exec.CommandContext(runCtx, a.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// run executes a subprocess, logging combined output on failure.
func (a *Assembler) run(ctx context.Context, bin string, args []string) error {
	runCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	logging.Debug("running command", "bin", bin, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(runCtx, bin, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if output.Len() > 0 {
			logging.Error("command output", "bin", bin, "output", strings.TrimRight(output.String(), "\n"))
		}
		return fmt.Errorf("%s failed: %w", bin, err)
	}
	return nil
}
