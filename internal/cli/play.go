package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mgpai22/cuetrack/internal/subtitle"
	"github.com/mgpai22/cuetrack/internal/track"
)

var playCmd = &cobra.Command{
	Use:   "play [subtitle_file]",
	Short: "Simulate playback and print captions as they change",
	Long: `Advance a playback clock over the track and print each caption
change with its time.

By default the whole timeline is printed at once. With --realtime the
clock follows the wall clock (scaled by --rate) until the end of the
track or Ctrl+C; on a terminal the current caption is redrawn in place.

Examples:
  cuetrack play movie.srt
  cuetrack play movie.srt --from 00:10:00,000 --to 00:12:00,000
  cuetrack play movie.vtt --realtime --rate 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().
		String("from", "", "Start time (default: first caption)")
	playCmd.Flags().
		String("to", "", "End time (default: end of last caption)")
	playCmd.Flags().
		Int("step", 0, "Clock step in milliseconds (default from config, 100)")
	playCmd.Flags().
		Float64("rate", 0, "Playback speed multiplier for --realtime (default 1)")
	playCmd.Flags().
		Bool("realtime", false, "Follow the wall clock instead of printing instantly")
}

// playback window and clock
type playOptions struct {
	From     int
	To       int
	Step     int
	Rate     float64
	Realtime bool
}

func runPlay(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := loadTrack(cmd.Context(), cmd, args[0])
	defer cleanup()
	if err != nil {
		return err
	}

	opts, err := playOptionsFromFlags(cmd, tr)
	if err != nil {
		return err
	}

	logger.Infow("Starting playback",
		"from", subtitle.FormatTimecode(opts.From),
		"to", subtitle.FormatTimecode(opts.To),
		"step_ms", opts.Step,
		"realtime", opts.Realtime,
	)

	out := cmd.OutOrStdout()
	if opts.Realtime {
		err = playRealtime(cmd.Context(), out, tr, opts, isTerminal(out))
	} else {
		err = playTimeline(out, tr, opts)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func playOptionsFromFlags(cmd *cobra.Command, tr *track.Track) (playOptions, error) {
	opts := playOptions{
		Step:     cfg.Playback.StepMS,
		Rate:     cfg.Playback.Rate,
		Realtime: cfg.Playback.Realtime,
	}

	first, last, ok := tr.Span()
	if !ok {
		return opts, fmt.Errorf("subtitle file contains no clips")
	}
	opts.From, opts.To = first, last

	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		ms, err := subtitle.ParseTimecode(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid --from: %w", err)
		}
		opts.From = ms
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		ms, err := subtitle.ParseTimecode(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid --to: %w", err)
		}
		opts.To = ms
	}
	if cmd.Flags().Changed("step") {
		opts.Step, _ = cmd.Flags().GetInt("step")
	}
	if cmd.Flags().Changed("rate") {
		opts.Rate, _ = cmd.Flags().GetFloat64("rate")
	}
	if cmd.Flags().Changed("realtime") {
		opts.Realtime, _ = cmd.Flags().GetBool("realtime")
	}

	if opts.Step <= 0 {
		return opts, fmt.Errorf("step must be positive, got %d", opts.Step)
	}
	if opts.Rate <= 0 {
		return opts, fmt.Errorf("rate must be positive, got %g", opts.Rate)
	}
	if opts.Realtime && tickInterval(opts) < minTickInterval {
		return opts, fmt.Errorf(
			"step %dms at rate %g ticks faster than %s",
			opts.Step, opts.Rate, minTickInterval,
		)
	}
	if opts.To <= opts.From {
		return opts, fmt.Errorf(
			"end %s must be after start %s",
			subtitle.FormatTimecode(opts.To),
			subtitle.FormatTimecode(opts.From),
		)
	}
	return opts, nil
}

// prints one line per caption change; "" changes print as (clear)
func playTimeline(out io.Writer, tr *track.Track, opts playOptions) error {
	current := ""
	started := false
	for ms := opts.From; ms < opts.To; ms = nextTick(ms, opts) {
		text := tr.Caption(ms)
		if started && text == current {
			continue
		}
		started = true
		current = text
		if _, err := fmt.Fprintf(out, "[%s] %s\n", subtitle.FormatTimecode(ms), displayText(text)); err != nil {
			return err
		}
	}
	return nil
}

// advances the clock by one step without overflowing past opts.To
func nextTick(ms int, opts playOptions) int {
	if ms > opts.To-opts.Step {
		return opts.To
	}
	return ms + opts.Step
}

const minTickInterval = time.Millisecond

// wall-clock time between samples
func tickInterval(opts playOptions) time.Duration {
	return time.Duration(float64(opts.Step) / opts.Rate * float64(time.Millisecond))
}

func playRealtime(ctx context.Context, out io.Writer, tr *track.Track, opts playOptions, redraw bool) error {
	ticker := time.NewTicker(max(tickInterval(opts), minTickInterval))
	defer ticker.Stop()

	begin := time.Now()
	current := ""
	started := false
	for {
		elapsed := time.Since(begin)
		ms := opts.From + int(float64(elapsed.Milliseconds())*opts.Rate)
		if ms >= opts.To {
			if redraw {
				fmt.Fprintln(out)
			}
			return nil
		}

		text := tr.Caption(ms)
		if !started || text != current {
			started = true
			current = text
			if redraw {
				fmt.Fprintf(out, "\r\033[K[%s] %s", subtitle.FormatTimecode(ms), strings.ReplaceAll(displayText(text), "\n", " / "))
			} else {
				fmt.Fprintf(out, "[%s] %s\n", subtitle.FormatTimecode(ms), displayText(text))
			}
		}

		select {
		case <-ctx.Done():
			if redraw {
				fmt.Fprintln(out)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func displayText(text string) string {
	if text == "" {
		return "(clear)"
	}
	return text
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
