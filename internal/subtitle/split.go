package subtitle

import (
	"strings"
)

const bom = "\ufeff"

// splits text content on \r\n, \r and \n, dropping empty fragments
func SplitLines(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\r' || r == '\n'
	})
	if len(fields) > 0 {
		fields[0] = strings.TrimPrefix(fields[0], bom)
		if fields[0] == "" {
			fields = fields[1:]
		}
	}
	return fields
}

// splits the way a file reader yields lines: empty lines are kept,
// a trailing newline does not produce a final empty line
func ReadLines(text string) []string {
	text = strings.TrimPrefix(text, bom)
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
