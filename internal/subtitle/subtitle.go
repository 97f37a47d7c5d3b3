package subtitle

import (
	"time"
)

// represents single caption entry, times in milliseconds
type Clip struct {
	Index     int
	StartTime int
	EndTime   int
	Content   string
}

// position of a clip relative to a playback time
type State int

const (
	// clip already finished, search forward
	Delayed State = iota
	// clip is showing
	Timely
	// clip has not started, search backward
	Premature
)

func (s State) String() string {
	switch s {
	case Delayed:
		return "delayed"
	case Timely:
		return "timely"
	case Premature:
		return "premature"
	default:
		return "unknown"
	}
}

// classifies the clip against playback time t (ms)
func (c Clip) State(t int) State {
	switch {
	case t >= c.EndTime:
		return Delayed
	case t >= c.StartTime:
		return Timely
	default:
		return Premature
	}
}

func (c Clip) Valid() bool {
	return c.StartTime < c.EndTime
}

func (c Clip) Start() time.Duration {
	return time.Duration(c.StartTime) * time.Millisecond
}

func (c Clip) End() time.Duration {
	return time.Duration(c.EndTime) * time.Millisecond
}

func (c Clip) Duration() time.Duration {
	return c.End() - c.Start()
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatASS  Format = "ass"
	FormatTTML Format = "ttml"
)

// interface for turning raw lines into an ordered clip sequence.
// Parse never fails: malformed input is skipped and whatever parsed
// cleanly is returned, possibly empty.
type Parser interface {
	Format() Format
	Parse(lines []string) []Clip
}
