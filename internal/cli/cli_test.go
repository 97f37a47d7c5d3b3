package cli

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/cuetrack/internal/logging"
	"github.com/mgpai22/cuetrack/internal/subtitle"
	"github.com/mgpai22/cuetrack/internal/track"
)

const helloWorldSRT = `1
00:00:01,000 --> 00:00:03,000
Hello

2
00:00:04,000 --> 00:00:06,000
World
`

// command flags live in package vars, so every run starts from defaults
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(t.TempDir(), "absent.toml"),
	}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCaptionFromStdin(t *testing.T) {
	out, err := execute(t, helloWorldSRT,
		"caption", "-", "--at", "2000", "--at", "3500", "--at", "00:00:05,000", "--at", "7s")
	require.NoError(t, err)
	require.Equal(t, "Hello\n\nWorld\n\n", out)
}

func TestCaptionShowTime(t *testing.T) {
	path := writeFile(t, "movie.srt", helloWorldSRT)

	out, err := execute(t, "", "caption", path, "--at", "1500", "--at", "4500", "--show-time")
	require.NoError(t, err)
	require.Equal(t, "[00:00:01,500] Hello\n[00:00:04,500] World\n", out)
}

func TestCaptionFormatOverride(t *testing.T) {
	path := writeFile(t, "movie.txt", helloWorldSRT)

	_, err := execute(t, "", "caption", path, "--at", "2000")
	require.Error(t, err)

	out, err := execute(t, "", "caption", path, "--at", "2000", "--format", "srt")
	require.NoError(t, err)
	require.Equal(t, "Hello\n", out)
}

func TestCaptionErrors(t *testing.T) {
	_, err := execute(t, "", "caption", filepath.Join(t.TempDir(), "missing.srt"), "--at", "1")
	require.ErrorContains(t, err, "not found")

	path := writeFile(t, "movie.srt", helloWorldSRT)
	_, err = execute(t, "", "caption", path, "--at", "soon")
	require.ErrorContains(t, err, "invalid timecode")

	_, err = execute(t, "", "caption", "-", "--at", "1")
	require.ErrorIs(t, err, track.ErrInvalidSource)
}

func TestClipsTable(t *testing.T) {
	path := writeFile(t, "movie.srt", "stray\n"+helloWorldSRT)

	out, err := execute(t, "", "clips", path)
	require.NoError(t, err)
	require.Contains(t, out, "Hello")
	require.Contains(t, out, "World")
	require.Contains(t, out, "Clips: 2")
	require.Contains(t, out, "Span: 00:00:01,000 --> 00:00:06,000")
}

func TestPlayTimeline(t *testing.T) {
	path := writeFile(t, "movie.srt", helloWorldSRT)

	out, err := execute(t, "", "play", path, "--step", "500")
	require.NoError(t, err)
	require.Equal(t,
		"[00:00:01,000] Hello\n[00:00:03,000] (clear)\n[00:00:04,000] World\n",
		out,
	)

	out, err = execute(t, "", "play", path, "--from", "0", "--to", "2s", "--step", "250")
	require.NoError(t, err)
	require.Equal(t, "[00:00:00,000] (clear)\n[00:00:01,000] Hello\n", out)

	_, err = execute(t, "", "play", path, "--from", "5s", "--to", "1s")
	require.ErrorContains(t, err, "must be after")
}

func TestPlayRealtimeStopsOnCancel(t *testing.T) {
	logger = logging.NewNop()
	tr := track.New(subtitle.NewSRTParser(nil))
	require.NoError(t, tr.Refresh(subtitle.ReadLines(helloWorldSRT)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := playRealtime(ctx, &out, tr, playOptions{From: 1000, To: 6000, Step: 100, Rate: 1}, false)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "[00:00:01,000] Hello\n", out.String())
}

func TestPlayRealtimeRunsToEnd(t *testing.T) {
	tr := track.New(subtitle.NewSRTParser(nil))
	require.NoError(t, tr.Refresh(subtitle.ReadLines(helloWorldSRT)))

	var out bytes.Buffer
	err := playRealtime(context.Background(), &out, tr, playOptions{From: 1000, To: 6000, Step: 50, Rate: 100}, true)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out.String(), "\r\033[K[00:00:01,"), "got %q", out.String())
	require.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestConvertDropsMalformedBlocks(t *testing.T) {
	broken := "1\n00:00:01,000 --> 00:00:02,000\nFirst\n\ngarbage\n2\nnot a time\nLost\n\n3\n00:00:03,000 --> 00:00:04,000\nThird\n"
	path := writeFile(t, "broken.srt", broken)
	outPath := filepath.Join(t.TempDir(), "fixed.vtt")

	out, err := execute(t, "", "convert", path, "--to", "vtt", "-o", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "Clips: 2")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	clips := subtitle.NewVTTParser(nil).Parse(subtitle.ReadLines(string(data)))
	require.Equal(t, []subtitle.Clip{
		{Index: 1, StartTime: 1000, EndTime: 2000, Content: "First"},
		{Index: 2, StartTime: 3000, EndTime: 4000, Content: "Third"},
	}, clips)
}

func TestConvertDefaultOutputPath(t *testing.T) {
	path := writeFile(t, "movie.srt", helloWorldSRT)

	_, err := execute(t, "", "convert", path)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(filepath.Dir(path), "movie.clean.srt"))

	_, err = execute(t, helloWorldSRT, "convert", "-")
	require.ErrorContains(t, err, "--output is required")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, rootCmd.Execute())
	require.FileExists(t, path)

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	require.ErrorContains(t, rootCmd.Execute(), "already exists")
}

func TestConfigAppliesDefaults(t *testing.T) {
	cfgPath := writeFile(t, "cuetrack.toml", "[source]\nformat = \"srt\"\n\n[playback]\nstep_ms = 1000\n")
	subPath := writeFile(t, "movie.data", helloWorldSRT)

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", cfgPath, "play", subPath})
	require.NoError(t, rootCmd.Execute())
	require.Equal(t,
		"[00:00:01,000] Hello\n[00:00:03,000] (clear)\n[00:00:04,000] World\n",
		out.String(),
	)
}

func TestConvertReflow(t *testing.T) {
	srt := "1\n00:00:00,000 --> 00:00:20,000\none two three four five six\n"
	path := writeFile(t, "long.srt", srt)
	outPath := filepath.Join(t.TempDir(), "short.srt")

	out, err := execute(t, "", "convert", path, "--reflow", "-o", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "Clips: 3")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	clips := subtitle.NewSRTParser(nil).Parse(subtitle.ReadLines(string(data)))
	require.Len(t, clips, 3)
	require.Equal(t, "one two", clips[0].Content)
	require.Equal(t, 20000, clips[2].EndTime)
}

func TestPlayRejectsSubMillisecondTicks(t *testing.T) {
	path := writeFile(t, "movie.srt", helloWorldSRT)

	_, err := execute(t, "", "play", path, "--realtime", "--step", "1", "--rate", "1e7")
	require.ErrorContains(t, err, "ticks faster than 1ms")

	// without --realtime the rate is unused
	out, err := execute(t, "", "play", path, "--step", "1", "--rate", "1e7")
	require.NoError(t, err)
	require.Contains(t, out, "World")
}

func TestPlayRealtimeClampsInterval(t *testing.T) {
	tr := track.New(subtitle.NewSRTParser(nil))
	require.NoError(t, tr.Refresh(subtitle.ReadLines(helloWorldSRT)))

	var out bytes.Buffer
	err := playRealtime(context.Background(), &out, tr, playOptions{From: 1000, To: 6000, Step: 1, Rate: 1e7}, false)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out.String(), "[00:00:01,"), "got %q", out.String())
}

func TestPlayTimelineStopsNearMaxInt(t *testing.T) {
	tr := track.New(subtitle.NewSRTParser(nil))
	require.NoError(t, tr.Refresh(subtitle.ReadLines(helloWorldSRT)))

	var out bytes.Buffer
	opts := playOptions{From: math.MaxInt - 1500, To: math.MaxInt, Step: 1000}
	require.NoError(t, playTimeline(&out, tr, opts))
	require.Equal(t, 1, strings.Count(out.String(), "\n"))
	require.Contains(t, out.String(), "(clear)")

	require.Equal(t, math.MaxInt, nextTick(math.MaxInt-500, opts))
	require.Equal(t, 2000, nextTick(1000, playOptions{To: 6000, Step: 1000}))
}
