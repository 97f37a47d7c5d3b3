package subtitle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mgpai22/cuetrack/internal/logging"
)

// lines in one SRT block: index, time range, content
const srtBlockLines = 3

var (
	errBadIndex     = errors.New("index is not an integer")
	errBadTimeRange = errors.New("time range is not two clock times")
	errEmptyClip    = errors.New("clip ends before it starts")
)

// SRTParser reads SubRip blocks of exactly three lines. Blocks that do not
// parse are skipped one line at a time so a single stray line never costs
// the following clip.
type SRTParser struct {
	logger *logging.Logger
}

func NewSRTParser(logger *logging.Logger) *SRTParser {
	return &SRTParser{logger: logging.OrNop(logger).Named("srt")}
}

func (p *SRTParser) Format() Format {
	return FormatSRT
}

func (p *SRTParser) Parse(lines []string) []Clip {
	var clips []Clip
	skipped := 0

	pos := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], bom) {
		lines = append([]string{strings.TrimPrefix(lines[0], bom)}, lines[1:]...)
	}

	for len(lines)-pos >= srtBlockLines {
		if isBlank(lines[pos]) {
			pos++
			continue
		}

		clip, err := parseSRTBlock(lines[pos], lines[pos+1], lines[pos+2])
		if err != nil {
			p.logger.Debugw("Skipping malformed line",
				"line", pos+1,
				"text", lines[pos],
				"reason", err,
			)
			skipped++
			pos++
			continue
		}

		clips = append(clips, clip)
		pos += srtBlockLines
	}

	if skipped > 0 {
		p.logger.Warnw("Skipped malformed subtitle lines",
			"skipped", skipped,
			"clips", len(clips),
		)
	}
	if trailing := len(lines) - pos; trailing > 0 {
		p.logger.Debugw("Discarding trailing partial block", "lines", trailing)
	}

	return clips
}

func parseSRTBlock(indexLine, timeRange, content string) (Clip, error) {
	index, ok := atoi(indexLine)
	if !ok {
		return Clip{}, fmt.Errorf("%w: %q", errBadIndex, indexLine)
	}

	start, end, ok := parseSRTTimeRange(timeRange)
	if !ok {
		return Clip{}, fmt.Errorf("%w: %q", errBadTimeRange, timeRange)
	}

	clip := Clip{
		Index:     index,
		StartTime: start,
		EndTime:   end,
		Content:   content,
	}
	if !clip.Valid() {
		return Clip{}, fmt.Errorf("%w: %q", errEmptyClip, timeRange)
	}
	return clip, nil
}

func parseSRTTimeRange(line string) (int, int, bool) {
	startText, endText, ok := splitTimeRange(line)
	if !ok {
		return 0, 0, false
	}
	start, ok := parseClockTime(startText, ":", ",")
	if !ok {
		return 0, 0, false
	}
	end, ok := parseClockTime(endText, ":", ",")
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}
