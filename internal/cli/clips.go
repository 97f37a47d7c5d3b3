package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/subtitle"
)

var clipsCmd = &cobra.Command{
	Use:   "clips [subtitle_file]",
	Short: "List the clips recovered from a subtitle file",
	Long: `Parse a subtitle file and list every clip that survived parsing.

Comparing the listing with the source shows which blocks were skipped
as malformed (run with -v to see why).

Examples:
  cuetrack clips movie.srt
  cuetrack clips movie.ass --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runClips,
}

func init() {
	rootCmd.AddCommand(clipsCmd)

	clipsCmd.Flags().
		Int("limit", 0, "Show at most this many clips (0 = all)")
}

func runClips(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", limit)
	}

	tr, cleanup, err := loadTrack(cmd.Context(), cmd, args[0])
	defer cleanup()
	if err != nil {
		return err
	}

	clips := tr.Clips()
	if limit > 0 && len(clips) > limit {
		clips = clips[:limit]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderClips(clips))

	if start, end, ok := tr.Span(); ok {
		fmt.Fprintf(out, "  Clips: %d\n", tr.Len())
		fmt.Fprintf(out, "  Span: %s --> %s\n",
			subtitle.FormatTimecode(start),
			subtitle.FormatTimecode(end))
	} else {
		fmt.Fprintln(out, "  Clips: 0")
	}
	return nil
}

func renderClips(clips []subtitle.Clip) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Index", "Start", "End", "Duration", "Content"})

	for i, clip := range clips {
		tw.AppendRow(table.Row{
			strconv.Itoa(i),
			strconv.Itoa(clip.Index),
			subtitle.FormatTimecode(clip.StartTime),
			subtitle.FormatTimecode(clip.EndTime),
			clip.Duration().String(),
			strings.ReplaceAll(clip.Content, "\n", " / "),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, WidthMax: 60},
	})

	return tw.Render()
}
