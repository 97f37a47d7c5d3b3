package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// interface for serialising clips
type Writer interface {
	Write(w io.Writer, clips []Clip) error
}

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "cuetrack",
			FontName: "Arial",
			FontSize: 20,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// writes clips to path, creating parent directories
func WriteFile(path string, format Format, clips []Clip) error {
	writer, err := NewWriter(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	buf := bufio.NewWriter(file)
	if err := writer.Write(buf, clips); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return file.Close()
}

func (w *SRTWriter) Write(out io.Writer, clips []Clip) error {
	var sb strings.Builder
	for i, clip := range clips {
		// index (1-based, renumbered)
		fmt.Fprintf(&sb, "%d\n", i+1)

		fmt.Fprintf(&sb, "%s --> %s\n",
			formatSRTTime(clip.Start()),
			formatSRTTime(clip.End()))

		sb.WriteString(clip.Content)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *VTTWriter) Write(out io.Writer, clips []Clip) error {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for i, clip := range clips {
		// optional cue identifier
		fmt.Fprintf(&sb, "%d\n", i+1)

		fmt.Fprintf(&sb, "%s --> %s\n",
			formatVTTTime(clip.Start()),
			formatVTTTime(clip.End()))

		sb.WriteString(clip.Content)
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *ASSWriter) Write(out io.Writer, clips []Clip) error {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	fmt.Fprintf(&sb, "Title: %s\n", w.Title)
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&sb, "Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		w.FontName, w.FontSize)

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, clip := range clips {
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(clip.Start()),
			formatASSTime(clip.End()),
			escapeASSText(clip.Content))
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}
