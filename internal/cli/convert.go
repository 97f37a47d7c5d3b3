package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Re-write a subtitle file from the clips that parsed cleanly",
	Long: `Parse a subtitle file leniently and write the recovered clips back
out, renumbered, in SRT, VTT or ASS format.

This doubles as a repair tool: stray lines and malformed blocks in the
input are dropped from the output.

Examples:
  cuetrack convert broken.srt -o fixed.srt
  cuetrack convert movie.ass --to vtt
  cuetrack convert movie.srt --reflow --max-chars 32`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		String("to", "srt", "Output subtitle format (srt, vtt, ass)")
	convertCmd.Flags().
		StringP("output", "o", "", "Output file path")
	convertCmd.Flags().
		Bool("reflow", false, "Rewrap caption text and split overlong clips")
	convertCmd.Flags().
		Int("max-chars", 42, "Maximum characters per line when reflowing")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	toStr, _ := cmd.Flags().GetString("to")
	outputPath, _ := cmd.Flags().GetString("output")
	reflow, _ := cmd.Flags().GetBool("reflow")
	maxChars, _ := cmd.Flags().GetInt("max-chars")
	if maxChars <= 0 {
		return fmt.Errorf("max-chars must be positive, got %d", maxChars)
	}

	format, err := subtitle.ParseFormat(toStr)
	if err != nil {
		return err
	}
	if _, err := subtitle.NewWriter(format); err != nil {
		return err
	}

	if outputPath == "" {
		if inputPath == stdinPath {
			return fmt.Errorf("--output is required when reading from stdin")
		}
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outputPath = base + ".clean" + subtitle.ExtensionForFormat(format)
	}

	tr, cleanup, err := loadTrack(cmd.Context(), cmd, inputPath)
	defer cleanup()
	if err != nil {
		return err
	}
	if tr.Len() == 0 {
		return fmt.Errorf("subtitle file contains no clips")
	}

	clips := tr.Clips()
	if reflow {
		reflower := subtitle.NewReflower()
		reflower.MaxCharsPerLine = maxChars
		clips = reflower.Reflow(clips)
		logger.Debugw("Reflowed clips",
			"before", tr.Len(),
			"after", len(clips),
		)
	}

	logger.Infow("Writing output file",
		"output", outputPath,
		"format", format,
	)
	if err := subtitle.WriteFile(outputPath, format, clips); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Clips: %d\n", len(clips))
	return nil
}
