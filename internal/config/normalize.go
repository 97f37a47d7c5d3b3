package config

import (
	"strings"
)

func (c *Config) normalize() error {
	c.Source.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Source.Format), "."))
	c.Source.Encoding = strings.TrimSpace(c.Source.Encoding)

	if c.Playback.StepMS == 0 {
		c.Playback.StepMS = defaultStepMS
	}
	if c.Playback.Rate == 0 {
		c.Playback.Rate = defaultRate
	}

	if path := strings.TrimSpace(c.Video.FFmpegPath); path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return err
		}
		c.Video.FFmpegPath = expanded
	}
	return nil
}
