package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/subtitle"
	"github.com/mgpai22/cuetrack/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle stream from a video file",
	Long: `Copy one subtitle stream out of a video container into a standalone
subtitle file. Requires ffmpeg (set CUETRACK_FFMPEG_PATH or
video.ffmpeg_path if it is not on PATH).

Supports output formats: srt, vtt, ass.

Examples:
  cuetrack extract movie.mkv
  cuetrack extract movie.mkv --stream 2 --to vtt -o movie.en.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		String("to", "srt", "Output subtitle format (srt, vtt, ass)")
	extractCmd.Flags().
		StringP("output", "o", "", "Output file path")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	toStr, _ := cmd.Flags().GetString("to")
	outputPath, _ := cmd.Flags().GetString("output")
	stream := cfg.Video.Stream
	if cmd.Flags().Changed("stream") {
		stream, _ = cmd.Flags().GetInt("stream")
	}

	format, err := subtitle.ParseFormat(toStr)
	if err != nil {
		return err
	}

	if outputPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		outputPath = fmt.Sprintf("%s.%d%s", base, stream, subtitle.ExtensionForFormat(format))
	}

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"output", outputPath,
		"stream", stream,
		"format", format,
	)

	processor := video.NewProcessor(cfg.Video.FFmpegPath, logger)
	opts := video.ExtractOptions{
		Stream: stream,
		Format: format,
	}
	if err := processor.ExtractSubtitle(cmd.Context(), videoPath, outputPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)

	return nil
}
