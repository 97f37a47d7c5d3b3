package subtitle

import (
	"strings"

	"github.com/mgpai22/cuetrack/internal/logging"
)

// VTTParser reads WebVTT cues. Cue identifiers are optional, so the timing
// line anchors each cue and the text runs until the next blank line.
type VTTParser struct {
	logger *logging.Logger
}

func NewVTTParser(logger *logging.Logger) *VTTParser {
	return &VTTParser{logger: logging.OrNop(logger).Named("vtt")}
}

func (p *VTTParser) Format() Format {
	return FormatVTT
}

func (p *VTTParser) Parse(lines []string) []Clip {
	var clips []Clip
	cueIndex := 0

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if i == 0 {
			line = strings.TrimPrefix(line, bom)
		}

		if line == "" || strings.HasPrefix(line, "WEBVTT") {
			continue
		}

		if isVTTMetaBlock(line) {
			for i+1 < len(lines) && !isBlank(lines[i+1]) {
				i++
			}
			continue
		}

		if !strings.Contains(line, rangeSeparator) {
			// cue identifier or stray text; the timing line decides
			continue
		}

		start, end, ok := parseVTTTimeRange(line)
		if !ok || start >= end {
			p.logger.Debugw("Skipping malformed cue timing",
				"line", i+1,
				"text", line,
			)
			continue
		}

		var textLines []string
		for i+1 < len(lines) && !isBlank(lines[i+1]) {
			if strings.Contains(lines[i+1], rangeSeparator) {
				break
			}
			i++
			textLines = append(textLines, lines[i])
		}

		cueIndex++
		clips = append(clips, Clip{
			Index:     cueIndex,
			StartTime: start,
			EndTime:   end,
			Content:   strings.Join(textLines, "\n"),
		})
	}

	return clips
}

func isVTTMetaBlock(line string) bool {
	for _, prefix := range []string{"NOTE", "STYLE", "REGION"} {
		if line == prefix || strings.HasPrefix(line, prefix+" ") ||
			strings.HasPrefix(line, prefix+"\t") {
			return true
		}
	}
	return false
}

func parseVTTTimeRange(line string) (int, int, bool) {
	startText, rest, ok := strings.Cut(line, rangeSeparator)
	if !ok {
		return 0, 0, false
	}
	// cue settings ("align:start line:0") follow the end time
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, 0, false
	}
	start, ok := parseVTTTime(startText)
	if !ok {
		return 0, 0, false
	}
	end, ok := parseVTTTime(fields[0])
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// hh:mm:ss.mmm or mm:ss.mmm
func parseVTTTime(token string) (int, bool) {
	token = strings.TrimSpace(token)
	clock, fraction, _ := strings.Cut(token, ".")
	parts := strings.Split(clock, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, false
	}
	if fraction != "" {
		parts = append(parts, fraction)
	}
	return parseClockTime(strings.Join(parts, ":"), ":")
}
