package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Speed:       SpeedNormal,
		Sound:       true,
		SoundVolume: 50,
		LastMode:    "classic",
		ServerURL:   "http://localhost:8080",
	}
}
