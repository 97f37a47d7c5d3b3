package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/cuetrack/internal/logging"
)

// picks the parser for a format; logger may be nil
func NewParser(format Format, logger *logging.Logger) (Parser, error) {
	switch format {
	case FormatSRT:
		return NewSRTParser(logger), nil
	case FormatVTT:
		return NewVTTParser(logger), nil
	case FormatASS:
		return NewASSParser(logger), nil
	case FormatTTML:
		return NewTTMLParser(logger), nil
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", format)
	}
}

// subtitle format based on file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatVTT, nil
	case ".ass", ".ssa":
		return FormatASS, nil
	case ".ttml", ".dfxp", ".xml":
		return FormatTTML, nil
	default:
		return "", fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}

// accepts "srt", ".srt", "SRT" and the ssa/dfxp aliases
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("subtitle format is empty")
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	return FormatFromPath(name)
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	case FormatTTML:
		return ".ttml"
	default:
		return ".srt"
	}
}
