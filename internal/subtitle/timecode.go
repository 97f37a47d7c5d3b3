package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const rangeSeparator = "-->"

// splits s on any of seps, dropping empty fragments
func splitAny(s string, seps ...string) []string {
	cut := strings.Join(seps, "")
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(cut, r)
	})
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// largest value accepted for any clock component; keeps the millisecond
// total far from overflow
const maxClockComponent = 1_000_000

// converts an "hh:mm:ss[,mmm]" token into milliseconds. At least three
// numeric components in [0, maxClockComponent] are required; a missing or
// unparsable fourth component counts as zero milliseconds, a negative or
// oversized one rejects the token.
func parseClockTime(token string, seps ...string) (int, bool) {
	items := splitAny(token, seps...)
	if len(items) < 3 {
		return 0, false
	}

	hours, ok := clockComponent(items[0])
	if !ok {
		return 0, false
	}
	minutes, ok := clockComponent(items[1])
	if !ok {
		return 0, false
	}
	seconds, ok := clockComponent(items[2])
	if !ok {
		return 0, false
	}

	millis := 0
	if len(items) > 3 {
		if ms, ok := atoi(items[3]); ok {
			if ms < 0 || ms > maxClockComponent {
				return 0, false
			}
			millis = ms
		}
	}

	return ((hours*60+minutes)*60+seconds)*1000 + millis, true
}

func clockComponent(s string) (int, bool) {
	n, ok := atoi(s)
	if !ok || n < 0 || n > maxClockComponent {
		return 0, false
	}
	return n, true
}

// splits "start --> end" into exactly two non-blank tokens
func splitTimeRange(line string) (string, string, bool) {
	var tokens []string
	for _, part := range strings.Split(line, rangeSeparator) {
		if strings.TrimSpace(part) != "" {
			tokens = append(tokens, part)
		}
	}
	if len(tokens) != 2 {
		return "", "", false
	}
	return tokens[0], tokens[1], true
}

// parses a user supplied playback position: plain milliseconds ("2500"),
// a Go duration ("1m2.5s") or a clock timestamp ("00:01:02,500" or
// "00:01:02.500")
func ParseTimecode(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timecode")
	}
	if ms, err := strconv.Atoi(value); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative timecode %q", value)
		}
		return ms, nil
	}
	if strings.Contains(value, ":") {
		ms, ok := parseClockTime(value, ":", ",", ".")
		if !ok {
			return 0, fmt.Errorf("invalid timecode %q", value)
		}
		return ms, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timecode %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("negative timecode %q", value)
	}
	return int(d.Milliseconds()), nil
}

// formats milliseconds as hh:mm:ss,mmm
func FormatTimecode(ms int) string {
	return formatSRTTime(time.Duration(ms) * time.Millisecond)
}
