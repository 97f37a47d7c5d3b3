package config

import (
	"errors"
	"fmt"

	"github.com/mgpai22/cuetrack/internal/subtitle"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if c.Video.Stream < 0 {
		return errors.New("video.stream must not be negative")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.Format == "" {
		return nil
	}
	if _, err := subtitle.ParseFormat(c.Source.Format); err != nil {
		return fmt.Errorf("source.format: %w", err)
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.StepMS < 0 {
		return errors.New("playback.step_ms must be positive")
	}
	if c.Playback.Rate < 0 {
		return errors.New("playback.rate must be positive")
	}
	return nil
}
