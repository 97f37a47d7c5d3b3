package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/cuetrack/internal/ffmpeg"
	"github.com/mgpai22/cuetrack/internal/logging"
	"github.com/mgpai22/cuetrack/internal/subtitle"
)

// defines interface for video processing operations
type Processor interface {
	// copies one embedded subtitle stream into a standalone file
	ExtractSubtitle(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractOptions,
	) error
}

// holds options for subtitle extraction
type ExtractOptions struct {
	Stream int             // subtitle stream number, 0 is the first
	Format subtitle.Format // output format (srt, vtt, ass)
}

// returns sensible defaults for subtitle extraction
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Stream: 0,
		Format: subtitle.FormatSRT,
	}
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	ffmpegPath string
	logger     *logging.Logger
}

// ffmpegPath may be empty to use CUETRACK_FFMPEG_PATH or PATH
func NewProcessor(ffmpegPath string, logger *logging.Logger) *DefaultProcessor {
	return &DefaultProcessor{
		ffmpegPath: ffmpegPath,
		logger:     logging.OrNop(logger).Named("video"),
	}
}

func (p *DefaultProcessor) ExtractSubtitle(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	args, err := extractArgs(videoPath, outputPath, opts)
	if err != nil {
		return err
	}

	binary, err := p.binary()
	if err != nil {
		return err
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	p.logger.Debugw("Running ffmpeg",
		"binary", binary,
		"args", strings.Join(args, " "),
	)

	cmd := exec.CommandContext(ctx, binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf(
			"ffmpeg subtitle extraction failed: %w: %s",
			err,
			lastLine(string(out)),
		)
	}

	return nil
}

// extracts into a temp file and returns its path; caller removes it
func (p *DefaultProcessor) ExtractToTemp(
	ctx context.Context,
	videoPath string,
	opts ExtractOptions,
) (string, error) {
	dir, err := os.MkdirTemp("", "cuetrack-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	out := filepath.Join(dir, "stream"+subtitle.ExtensionForFormat(opts.Format))
	if err := p.ExtractSubtitle(ctx, videoPath, out, opts); err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return out, nil
}

func (p *DefaultProcessor) binary() (string, error) {
	if p.ffmpegPath != "" {
		return ffmpegbin.Resolve(p.ffmpegPath)
	}
	return ffmpegbin.FFmpegPath()
}

func extractArgs(videoPath, outputPath string, opts ExtractOptions) ([]string, error) {
	if opts.Stream < 0 {
		return nil, fmt.Errorf("invalid subtitle stream %d", opts.Stream)
	}
	codec, err := codecFor(opts.Format)
	if err != nil {
		return nil, err
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Stream), // one subtitle stream
		"c:s": codec,
	}

	return ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		GetArgs(), nil
}

func codecFor(format subtitle.Format) (string, error) {
	switch format {
	case subtitle.FormatSRT, "":
		return "srt", nil
	case subtitle.FormatVTT:
		return "webvtt", nil
	case subtitle.FormatASS:
		return "ass", nil
	default:
		return "", fmt.Errorf("cannot extract subtitles as %s", format)
	}
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
		".ts":   true,
		".m2ts": true,
	}
	return videoExts[ext]
}
