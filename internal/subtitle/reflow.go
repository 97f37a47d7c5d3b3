package subtitle

import (
	"strings"
	"unicode/utf8"
)

// Reflower rewraps clip text for display and splits clips that carry too
// much text or stay on screen too long.
type Reflower struct {
	MaxCharsPerLine int
	MaxLinesPerClip int
	// milliseconds
	MaxDuration int
}

func NewReflower() *Reflower {
	return &Reflower{
		MaxCharsPerLine: 42,
		MaxLinesPerClip: 2,
		MaxDuration:     7000,
	}
}

// Reflow returns clips renumbered from 1 with their text wrapped. Clips
// whose text is empty after trimming are dropped.
func (r *Reflower) Reflow(clips []Clip) []Clip {
	out := make([]Clip, 0, len(clips))

	for _, clip := range clips {
		text := strings.Join(strings.Fields(clip.Content), " ")
		if text == "" {
			continue
		}
		clip.Content = text

		if r.needsSplit(clip) {
			out = append(out, r.split(clip)...)
			continue
		}
		clip.Content = r.wrap(text)
		out = append(out, clip)
	}

	for i := range out {
		out[i].Index = i + 1
	}
	return out
}

func (r *Reflower) maxChars() int {
	return r.MaxCharsPerLine * r.MaxLinesPerClip
}

func (r *Reflower) needsSplit(clip Clip) bool {
	if utf8.RuneCountInString(clip.Content) > r.maxChars() {
		return true
	}
	return r.MaxDuration > 0 && clip.EndTime-clip.StartTime > r.MaxDuration
}

// divides the words evenly across pieces and the duration evenly across time
func (r *Reflower) split(clip Clip) []Clip {
	words := strings.Fields(clip.Content)
	total := clip.EndTime - clip.StartTime

	maxChars := max(r.maxChars(), 1)
	pieces := (utf8.RuneCountInString(clip.Content) + maxChars - 1) / maxChars
	if r.MaxDuration > 0 {
		pieces = max(pieces, total/r.MaxDuration+1)
	}
	// never cut a clip into pieces shorter than a millisecond
	pieces = max(min(pieces, total, len(words)), 1)

	wordsPer := (len(words) + pieces - 1) / pieces
	durationPer := total / pieces

	out := make([]Clip, 0, pieces)
	start := clip.StartTime
	for i := 0; i < pieces && len(words) > 0; i++ {
		n := min(wordsPer, len(words))
		text := strings.Join(words[:n], " ")
		words = words[n:]

		end := start + durationPer
		if len(words) == 0 {
			end = clip.EndTime
		}
		out = append(out, Clip{
			StartTime: start,
			EndTime:   end,
			Content:   r.wrap(text),
		})
		start = end
	}
	return out
}

// breaks text into two lines at the word boundary nearest the middle
func (r *Reflower) wrap(text string) string {
	runes := utf8.RuneCountInString(text)
	if runes <= r.MaxCharsPerLine || r.MaxLinesPerClip < 2 {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	middle := runes / 2
	best, bestDiff := 0, runes
	length := 0
	for i, word := range words[:len(words)-1] {
		length += utf8.RuneCountInString(word)
		if i > 0 {
			length++
		}
		if diff := abs(length - middle); diff < bestDiff {
			best, bestDiff = i+1, diff
		}
	}

	return strings.Join(words[:best], " ") + "\n" + strings.Join(words[best:], " ")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
