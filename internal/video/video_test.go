package video

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/mgpai22/cuetrack/internal/subtitle"
)

func TestExtractArgs(t *testing.T) {
	args, err := extractArgs("movie.mkv", "out.vtt", ExtractOptions{
		Stream: 1,
		Format: subtitle.FormatVTT,
	})
	if err != nil {
		t.Fatalf("extractArgs failed: %v", err)
	}

	joined := strings.Join(args, " ")
	for _, want := range []string{"-i movie.mkv", "-map 0:s:1", "-c:s webvtt", "out.vtt", "-y"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %q in args %q", want, joined)
		}
	}

	if _, err := extractArgs("movie.mkv", "out.ttml", ExtractOptions{Format: subtitle.FormatTTML}); err == nil {
		t.Error("expected error for ttml output")
	}
	if _, err := extractArgs("movie.mkv", "out.srt", ExtractOptions{Stream: -1}); err == nil {
		t.Error("expected error for negative stream")
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"MOVIE.MP4", true},
		{"movie.srt", false},
		{"movie", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExtractSubtitleMissingVideo(t *testing.T) {
	p := NewProcessor("", nil)
	err := p.ExtractSubtitle(
		context.Background(),
		filepath.Join(t.TempDir(), "missing.mkv"),
		filepath.Join(t.TempDir(), "out.srt"),
		DefaultExtractOptions(),
	)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestExtractToTempWithFakeFFmpeg(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stands in for ffmpeg")
	}

	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\nfor a; do case \"$a\" in *.srt) out=\"$a\";; esac; done\n" +
		"printf '1\\n00:00:01,000 --> 00:00:02,000\\nhi\\n' > \"$out\"\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake ffmpeg: %v", err)
	}
	videoPath := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(videoPath, []byte("not really a video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}

	p := NewProcessor(fake, nil)
	out, err := p.ExtractToTemp(context.Background(), videoPath, DefaultExtractOptions())
	if err != nil {
		t.Fatalf("ExtractToTemp failed: %v", err)
	}
	defer os.RemoveAll(filepath.Dir(out))

	if filepath.Ext(out) != ".srt" {
		t.Errorf("expected .srt output, got %s", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := subtitle.ReadLines(string(data))
	if !slices.Contains(lines, "hi") {
		t.Errorf("unexpected output %q", lines)
	}
}
