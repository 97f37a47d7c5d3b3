package config

const (
	defaultConfigPath = "~/.config/cuetrack/config.toml"
	defaultStepMS     = 100
	defaultRate       = 1.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Playback: Playback{
			StepMS: defaultStepMS,
			Rate:   defaultRate,
		},
	}
}
