// Package source turns a subtitle source description into raw lines for
// the parsers. It is the only place where subtitle files are read.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mgpai22/cuetrack/internal/subtitle"
)

// ErrEmptySource is returned when a source carries no path or content.
var ErrEmptySource = errors.New("subtitle source is empty")

// Kind selects how Source.Data is interpreted.
type Kind int

const (
	// KindFile treats Data as a file path.
	KindFile Kind = iota
	// KindText treats Data as the subtitle content itself.
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "file"
}

// Source describes where subtitle lines come from.
type Source struct {
	Data string
	Kind Kind
	// Encoding names the file charset (IANA name such as "windows-1252").
	// Empty means UTF-8. A byte order mark always wins.
	Encoding string
}

// File is shorthand for a file source.
func File(path string) Source {
	return Source{Data: path, Kind: KindFile}
}

// Text is shorthand for an in-memory source.
func Text(content string) Source {
	return Source{Data: content, Kind: KindText}
}

// Lines resolves the source into raw lines. Text content is split on any
// newline variant with empty fragments dropped; files keep their blank
// lines the way a line reader returns them.
func Lines(ctx context.Context, src Source) ([]string, error) {
	if src.Data == "" {
		return nil, ErrEmptySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch src.Kind {
	case KindText:
		return subtitle.SplitLines(src.Data), nil
	case KindFile:
		content, err := readFile(src.Data, src.Encoding)
		if err != nil {
			return nil, err
		}
		return subtitle.ReadLines(content), nil
	default:
		return nil, fmt.Errorf("unknown source kind %d", src.Kind)
	}
}

func readFile(path, charset string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return decode(file, charset)
}

// Decode reads r as text in the given charset, honouring a leading BOM.
func Decode(r io.Reader, charset string) (string, error) {
	return decode(r, charset)
}

func decode(r io.Reader, charset string) (string, error) {
	fallback, err := lookupEncoding(charset)
	if err != nil {
		return "", err
	}

	reader := transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder()))
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode subtitle text: %w", err)
	}
	return string(data), nil
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "utf8") {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported text encoding %q", charset)
	}
	return enc, nil
}
