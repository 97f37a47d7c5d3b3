package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/source"
	"github.com/mgpai22/cuetrack/internal/subtitle"
	"github.com/mgpai22/cuetrack/internal/track"
	"github.com/mgpai22/cuetrack/internal/video"
)

// path "-" reads subtitle content from stdin
const stdinPath = "-"

// opens a subtitle file, stdin, or a video's embedded subtitle stream
// as a refreshed track. The returned cleanup must always be called.
func loadTrack(ctx context.Context, cmd *cobra.Command, path string) (*track.Track, func(), error) {
	cleanup := func() {}

	encoding := flagOrConfig(cmd, "encoding", cfg.Source.Encoding)
	src := source.Source{Data: path, Kind: source.KindFile, Encoding: encoding}
	formatPath := path
	var stdinLines []string

	switch {
	case path == stdinPath:
		content, err := source.Decode(cmd.InOrStdin(), encoding)
		if err != nil {
			return nil, cleanup, err
		}
		// stdin is a stream like a file, so blank lines are kept
		stdinLines = subtitle.ReadLines(content)
		formatPath = ".srt"
	case video.IsVideoFile(path):
		stream := cfg.Video.Stream
		if cmd.Flags().Changed("stream") {
			stream, _ = cmd.Flags().GetInt("stream")
		}
		logger.Infow("Extracting subtitle stream",
			"video", path,
			"stream", stream,
		)
		processor := video.NewProcessor(cfg.Video.FFmpegPath, logger)
		extracted, err := processor.ExtractToTemp(ctx, path, video.ExtractOptions{
			Stream: stream,
			Format: subtitle.FormatSRT,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("extraction failed: %w", err)
		}
		cleanup = func() { _ = os.RemoveAll(filepath.Dir(extracted)) }
		src.Data = extracted
		src.Encoding = ""
		formatPath = extracted
	default:
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, cleanup, fmt.Errorf("subtitle file not found: %s", path)
		}
	}

	format, err := resolveFormat(cmd, formatPath)
	if err != nil {
		return nil, cleanup, err
	}
	parser, err := subtitle.NewParser(format, logger)
	if err != nil {
		return nil, cleanup, err
	}

	tr := track.New(parser, track.WithLogger(logger))
	if path == stdinPath {
		err = tr.Refresh(stdinLines)
	} else {
		err = tr.RefreshSource(ctx, src)
	}
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	logger.Infow("Parsed subtitle file",
		"clips", tr.Len(),
		"format", tr.Format(),
	)
	return tr, cleanup, nil
}

func resolveFormat(cmd *cobra.Command, path string) (subtitle.Format, error) {
	if name := flagOrConfig(cmd, "format", cfg.Source.Format); name != "" {
		return subtitle.ParseFormat(name)
	}
	return subtitle.FormatFromPath(path)
}

func flagOrConfig(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	return fallback
}
