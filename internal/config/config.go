// Package config provides the YAML-backed player settings: speed preset,
// sound, preferred mode and leaderboard credentials.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Settings is the persisted player configuration.
type Settings struct {
	Speed       Speed  `yaml:"speed"`
	Sound       bool   `yaml:"sound"`
	SoundVolume int    `yaml:"sound_volume"`
	LastMode    string `yaml:"last_mode"`
	ServerURL   string `yaml:"server_url"`
	Username    string `yaml:"username"`
	Token       string `yaml:"token"`
}

// Authenticated reports whether a leaderboard token is stored.
func (s Settings) Authenticated() bool {
	return s.Token != ""
}

// Normalize fills missing values and clamps out-of-range ones.
func (s *Settings) Normalize() {
	if _, err := ParseSpeed(string(s.Speed)); err != nil {
		s.Speed = SpeedNormal
	}
	s.SoundVolume = max(0, min(100, s.SoundVolume))
	if s.LastMode == "" {
		s.LastMode = "classic"
	}
	s.ServerURL = strings.TrimRight(s.ServerURL, "/")
}

// setters maps user-facing keys to parsers.
var setters = map[string]func(s *Settings, v string) error{
	"speed": func(s *Settings, v string) error {
		sp, err := ParseSpeed(v)
		if err != nil {
			return err
		}
		s.Speed = sp
		return nil
	},
	"sound": func(s *Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: sound must be true or false: %w", err)
		}
		s.Sound = b
		return nil
	},
	"sound_volume": func(s *Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("config: sound_volume must be 0-100, got %q", v)
		}
		s.SoundVolume = n
		return nil
	},
	"last_mode": func(s *Settings, v string) error {
		s.LastMode = v
		return nil
	},
	"server_url": func(s *Settings, v string) error {
		s.ServerURL = strings.TrimRight(v, "/")
		return nil
	},
	"username": func(s *Settings, v string) error {
		s.Username = v
		return nil
	},
	"token": func(s *Settings, v string) error {
		s.Token = v
		return nil
	},
}

// Keys returns the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value and stores it under key.
func (s *Settings) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("config: unknown key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(s, value)
}
