// Package track holds the parsed clips of one subtitle track and answers
// which caption is showing at a playback time.
//
// Lookups keep a cursor on the last clip returned. Sequential playback
// then costs a single classification per query, and a seek or a gap only
// scans the clips between the cursor and the target.
package track

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mgpai22/cuetrack/internal/logging"
	"github.com/mgpai22/cuetrack/internal/source"
	"github.com/mgpai22/cuetrack/internal/subtitle"
)

// ErrInvalidSource is returned by Refresh when there is nothing to parse.
var ErrInvalidSource = errors.New("invalid subtitle source")

const noCursor = -1

// Track is a clip store plus locator for a single subtitle track.
// It is safe for concurrent use; separate Tracks share no state.
type Track struct {
	mu     sync.Mutex
	parser subtitle.Parser
	logger *logging.Logger

	clips []subtitle.Clip
	// position in clips of the last clip returned, or noCursor
	cursor int
	// clips examined by find since the last refresh
	scanned int
}

// Option configures a Track.
type Option func(*Track)

// WithLogger routes diagnostics to logger.
func WithLogger(logger *logging.Logger) Option {
	return func(t *Track) {
		t.logger = logger
	}
}

// New returns an empty track that parses with parser.
func New(parser subtitle.Parser, opts ...Option) *Track {
	t := &Track{
		parser: parser,
		cursor: noCursor,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.OrNop(t.logger).Named("track")
	return t
}

// Refresh replaces the stored clips with those parsed from lines and
// clears the cursor. Empty input leaves the track empty and returns
// ErrInvalidSource; malformed blocks are skipped, so any other input
// succeeds even if no clip survives.
func (t *Track) Refresh(lines []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clips = nil
	t.cursor = noCursor
	t.scanned = 0

	if len(lines) == 0 {
		t.logger.Warnw("Refusing to refresh from empty source")
		return ErrInvalidSource
	}

	clips := t.parser.Parse(lines)
	t.clips = clips
	t.logger.Debugw("Refreshed subtitle track",
		"format", t.parser.Format(),
		"lines", len(lines),
		"clips", len(clips),
	)
	return nil
}

// RefreshSource loads src and refreshes from its lines. The track is
// left empty when the source cannot be read.
func (t *Track) RefreshSource(ctx context.Context, src source.Source) error {
	lines, err := source.Lines(ctx, src)
	if err != nil {
		t.reset()
		if errors.Is(err, source.ErrEmptySource) {
			return fmt.Errorf("%w: %w", ErrInvalidSource, err)
		}
		return fmt.Errorf("failed to load subtitle source: %w", err)
	}
	return t.Refresh(lines)
}

func (t *Track) reset() {
	t.mu.Lock()
	t.clips = nil
	t.cursor = noCursor
	t.scanned = 0
	t.mu.Unlock()
}

// Classify reports where clip sits relative to playback time ms.
func Classify(clip subtitle.Clip, ms int) subtitle.State {
	return clip.State(ms)
}

// Caption returns the content showing at ms, or "" when ms falls in a gap
// or outside the track.
func (t *Track) Caption(ms int) string {
	clip, ok := t.Clip(ms)
	if !ok {
		return ""
	}
	return clip.Content
}

// Clip returns the clip showing at ms.
func (t *Track) Clip(ms int) (subtitle.Clip, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.locate(ms)
	if !ok {
		return subtitle.Clip{}, false
	}
	return t.clips[pos], true
}

func (t *Track) locate(ms int) (int, bool) {
	count := len(t.clips)
	if count == 0 {
		return 0, false
	}
	if ms < t.clips[0].StartTime || ms >= t.clips[count-1].EndTime {
		t.logger.Debugw("Playback time outside subtitle range",
			"time", ms,
			"start", t.clips[0].StartTime,
			"end", t.clips[count-1].EndTime,
		)
		return 0, false
	}

	if t.cursor == noCursor {
		// playback usually starts near the beginning
		t.cursor = max(count/2-1, 0)
	}

	var start, end int
	switch t.clips[t.cursor].State(ms) {
	case subtitle.Timely:
		return t.cursor, true
	case subtitle.Delayed:
		start, end = t.cursor+1, count-1
	default:
		start, end = 0, t.cursor-1
	}

	pos, ok := t.find(ms, start, end)
	if !ok {
		// a gap; the next query starts from the midpoint again
		t.cursor = noCursor
		return 0, false
	}
	t.cursor = pos
	return pos, true
}

// find scans positions [start, end] in order and stops at the first clip
// that has not finished by ms.
func (t *Track) find(ms, start, end int) (int, bool) {
	last := len(t.clips) - 1
	start = min(max(start, 0), last)
	end = min(max(end, start), last)

	for i := start; i <= end; i++ {
		t.scanned++
		switch t.clips[i].State(ms) {
		case subtitle.Delayed:
			continue
		case subtitle.Timely:
			return i, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// Clips returns a copy of the stored clips.
func (t *Track) Clips() []subtitle.Clip {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]subtitle.Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

// Len returns the number of stored clips.
func (t *Track) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clips)
}

// Span returns the covered range [start, end) in milliseconds.
func (t *Track) Span() (int, int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.clips) == 0 {
		return 0, 0, false
	}
	return t.clips[0].StartTime, t.clips[len(t.clips)-1].EndTime, true
}

// Format returns the format the track parses.
func (t *Track) Format() subtitle.Format {
	return t.parser.Format()
}
