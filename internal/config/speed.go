package config

import (
	"fmt"
	"time"
)

// Speed is a named step interval preset.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Speeds lists presets from slowest to fastest.
var Speeds = []Speed{SpeedSlow, SpeedNormal, SpeedFast}

// ParseSpeed converts a string to a Speed.
func ParseSpeed(s string) (Speed, error) {
	switch Speed(s) {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return Speed(s), nil
	default:
		return SpeedNormal, fmt.Errorf("config: invalid speed %q (valid: slow, normal, fast)", s)
	}
}

// Interval returns the time between snake steps.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedSlow:
		return 350 * time.Millisecond
	case SpeedFast:
		return 130 * time.Millisecond
	default:
		return 240 * time.Millisecond
	}
}

// Next cycles to the following preset, wrapping after fast.
func (s Speed) Next() Speed {
	for i, sp := range Speeds {
		if sp == s {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return SpeedNormal
}

// Prev cycles to the preceding preset, wrapping before slow.
func (s Speed) Prev() Speed {
	for i, sp := range Speeds {
		if sp == s {
			return Speeds[(i+len(Speeds)-1)%len(Speeds)]
		}
	}
	return SpeedNormal
}

func (s Speed) String() string {
	return string(s)
}
