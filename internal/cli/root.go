package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/config"
	"github.com/mgpai22/cuetrack/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cuetrack",
	Short: "Look up the caption showing at any point of a subtitle track",
	Long: `Cuetrack parses subtitle files and answers which caption is on
screen at a given playback time.

Malformed blocks are skipped rather than failing the whole file, so
damaged subtitles still yield every clip that can be recovered.

Supports SRT, WebVTT, ASS/SSA and TTML, plus subtitle streams embedded
in video files (requires ffmpeg).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, _, _, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		if !cmd.Flags().Changed("verbose") && cfg.Logging.Verbose {
			verbose = true
		}
		logger = logging.NewLogger(verbose)
		return nil
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ~/.config/cuetrack/config.toml)")
	rootCmd.PersistentFlags().
		String("format", "", "Subtitle format (srt, vtt, ass, ttml); default from extension")
	rootCmd.PersistentFlags().
		String("encoding", "", "Text encoding of subtitle files without a BOM (e.g. windows-1252)")
	rootCmd.PersistentFlags().
		Int("stream", 0, "Subtitle stream number when reading from a video file")
}
