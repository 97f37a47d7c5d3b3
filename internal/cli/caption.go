package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/subtitle"
)

var captionCmd = &cobra.Command{
	Use:   "caption [subtitle_file] --at TIME...",
	Short: "Print the caption showing at one or more playback times",
	Long: `Print the caption on screen at each given playback time.

Times are milliseconds (2500), Go durations (1m2.5s) or clock
timestamps (00:01:02,500). An empty line means nothing is showing:
either the time falls between two captions or outside the track.

Use "-" as the file to read subtitle content from stdin.

Examples:
  cuetrack caption movie.srt --at 00:12:03,400
  cuetrack caption movie.vtt --at 1000 --at 2000 --at 3000
  cuetrack caption movie.mkv --stream 1 --at 5m
  cat movie.srt | cuetrack caption - --at 90s`,
	Args: cobra.ExactArgs(1),
	RunE: runCaption,
}

func init() {
	rootCmd.AddCommand(captionCmd)

	captionCmd.Flags().
		StringArrayP("at", "t", nil, "Playback time to look up (repeatable)")
	captionCmd.Flags().
		Bool("show-time", false, "Prefix each caption with its lookup time")

	_ = captionCmd.MarkFlagRequired("at")
}

func runCaption(cmd *cobra.Command, args []string) error {
	rawTimes, _ := cmd.Flags().GetStringArray("at")
	showTime, _ := cmd.Flags().GetBool("show-time")

	times := make([]int, 0, len(rawTimes))
	for _, raw := range rawTimes {
		ms, err := subtitle.ParseTimecode(raw)
		if err != nil {
			return err
		}
		times = append(times, ms)
	}

	tr, cleanup, err := loadTrack(cmd.Context(), cmd, args[0])
	defer cleanup()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, ms := range times {
		text := tr.Caption(ms)
		if showTime {
			fmt.Fprintf(out, "[%s] %s\n", subtitle.FormatTimecode(ms), text)
			continue
		}
		fmt.Fprintln(out, text)
	}

	return nil
}
