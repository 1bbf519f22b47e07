package audio

import (
	"math"

	"github.com/vovakirdan/tui-snake/internal/core"
)

type sound int

const (
	soundCountdown sound = iota
	soundEat
	soundBonus
	soundLevelUp
	soundGameOver
	soundWon
	soundClick
)

func soundFor(e core.Event) (sound, bool) {
	switch e {
	case core.EventCountdown:
		return soundCountdown, true
	case core.EventFoodEaten:
		return soundEat, true
	case core.EventBonusEaten:
		return soundBonus, true
	case core.EventLevelUp:
		return soundLevelUp, true
	case core.EventGameOver:
		return soundGameOver, true
	case core.EventWon:
		return soundWon, true
	}
	return 0, false
}

// note is one tone of a sequence.
type note struct {
	freq float64
	dur  float64 // seconds
}

func generate(s sound) []byte {
	switch s {
	case soundCountdown:
		return tones([]note{{660, 0.08}}, 0.35)
	case soundEat:
		return chirp(480, 1200, 0.09, 0.45)
	case soundBonus:
		return tones([]note{{784, 0.06}, {988, 0.06}, {1175, 0.06}, {1568, 0.12}}, 0.4)
	case soundLevelUp:
		return tones([]note{{523, 0.09}, {659, 0.09}, {784, 0.09}, {1047, 0.2}}, 0.4)
	case soundGameOver:
		return chirp(440, 110, 0.6, 0.5)
	case soundWon:
		return tones([]note{{523, 0.12}, {523, 0.12}, {784, 0.12}, {1047, 0.35}}, 0.4)
	case soundClick:
		return tones([]note{{1200, 0.03}}, 0.25)
	}
	return nil
}

// tones renders a sequence of enveloped sine notes.
func tones(notes []note, gain float64) []byte {
	total := 0
	for _, n := range notes {
		total += int(n.dur * SampleRate)
	}
	buf := makeBuf(total)
	i := 0
	for _, n := range notes {
		count := int(n.dur * SampleRate)
		for j := range count {
			t := float64(j) / SampleRate
			p := float64(j) / float64(count)
			s := math.Sin(2*math.Pi*n.freq*t) * envelope(p) * gain
			// Octave layer for brightness.
			s += math.Sin(4*math.Pi*n.freq*t) * envelope(p) * gain * 0.15
			putStereoF32(buf, i, softSat(s))
			i++
		}
	}
	return buf
}

// chirp renders a sweep from f0 to f1 over dur seconds.
func chirp(f0, f1, dur, gain float64) []byte {
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	phase := 0.0
	for i := range n {
		p := float64(i) / float64(n)
		freq := f0 + (f1-f0)*p
		phase += 2 * math.Pi * freq / SampleRate
		putStereoF32(buf, i, softSat(math.Sin(phase)*envelope(p)*gain))
	}
	return buf
}

// envelope is a short attack with a linear release over the last 30%.
func envelope(p float64) float64 {
	switch {
	case p < 0.02:
		return p / 0.02
	case p > 0.7:
		return (1 - p) / 0.3
	default:
		return 1
	}
}

func makeBuf(frames int) []byte {
	return make([]byte, frames*ChannelCount*4)
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := range ChannelCount {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}
