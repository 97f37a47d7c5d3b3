// Package config loads cuetrack settings from TOML.
//
// Lookup order when no explicit path is given: ~/.config/cuetrack/config.toml,
// then ./cuetrack.toml. A missing file yields defaults. Values are normalized
// (formats lowercased, paths expanded) before validation.
package config
