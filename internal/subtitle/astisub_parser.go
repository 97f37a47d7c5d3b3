package subtitle

import (
	"io"
	"strings"

	"github.com/asticode/go-astisub"

	"github.com/mgpai22/cuetrack/internal/logging"
)

type astisubReader func(io.Reader) (*astisub.Subtitles, error)

// AstisubParser adapts go-astisub readers to the clip model. Formats with
// section headers (ASS/SSA, TTML) are parsed as a whole document; a
// document that does not parse yields no clips.
type AstisubParser struct {
	format Format
	read   astisubReader
	logger *logging.Logger
}

func NewASSParser(logger *logging.Logger) *AstisubParser {
	return &AstisubParser{
		format: FormatASS,
		read:   astisub.ReadFromSSA,
		logger: logging.OrNop(logger).Named("ass"),
	}
}

func NewTTMLParser(logger *logging.Logger) *AstisubParser {
	return &AstisubParser{
		format: FormatTTML,
		read:   astisub.ReadFromTTML,
		logger: logging.OrNop(logger).Named("ttml"),
	}
}

func (p *AstisubParser) Format() Format {
	return p.format
}

func (p *AstisubParser) Parse(lines []string) []Clip {
	if len(lines) == 0 {
		return nil
	}
	if strings.HasPrefix(lines[0], bom) {
		lines = append([]string{strings.TrimPrefix(lines[0], bom)}, lines[1:]...)
	}

	subs, err := p.read(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		p.logger.Warnw("Failed to parse subtitle document",
			"format", p.format,
			"error", err,
		)
		return nil
	}

	clips := make([]Clip, 0, len(subs.Items))
	for i, item := range subs.Items {
		clip := Clip{
			Index:     i + 1,
			StartTime: int(item.StartAt.Milliseconds()),
			EndTime:   int(item.EndAt.Milliseconds()),
			Content:   itemText(item),
		}
		if !clip.Valid() {
			p.logger.Debugw("Skipping empty item",
				"item", i+1,
				"start", item.StartAt,
				"end", item.EndAt,
			)
			continue
		}
		clips = append(clips, clip)
	}
	return clips
}

func itemText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
