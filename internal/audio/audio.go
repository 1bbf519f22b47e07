// Package audio turns game events into short procedurally generated sound
// effects played through oto.
package audio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	SampleRate   = 44100
	ChannelCount = 2

	// maxVoices caps simultaneous sounds.
	maxVoices = 4
)

// Player reacts to game events with sound.
type Player interface {
	Play(e core.Event)
	Click()
	Close() error
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play(core.Event) {}
func (Nop) Click()          {}
func (Nop) Close() error    { return nil }

// oto allows a single context per process.
var (
	ctxOnce  sync.Once
	otoCtx   *oto.Context
	otoReady chan struct{}
	otoErr   error
)

func device() (*oto.Context, chan struct{}, error) {
	ctxOnce.Do(func() {
		otoCtx, otoReady, otoErr = oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	})
	return otoCtx, otoReady, otoErr
}

// OtoPlayer plays effects on the default audio device.
type OtoPlayer struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	voices atomic.Int32
	closed atomic.Bool
	wg     sync.WaitGroup

	mu    sync.Mutex
	cache map[sound][]byte
}

// NewOtoPlayer opens the audio device. volume is 0-100.
func NewOtoPlayer(volume int) (*OtoPlayer, error) {
	ctx, ready, err := device()
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open device: %w", err)
	}
	return &OtoPlayer{
		ctx:    ctx,
		ready:  ready,
		volume: float64(max(0, min(100, volume))) / 100,
		cache:  make(map[sound][]byte),
	}, nil
}

// New returns an OtoPlayer when sound is enabled and the device opens,
// otherwise a Nop.
func New(enabled bool, volume int, logger *log.Logger) Player {
	if !enabled || volume <= 0 {
		return Nop{}
	}
	p, err := NewOtoPlayer(volume)
	if err != nil {
		if logger != nil {
			logger.Warn("Sound disabled", "error", err)
		}
		return Nop{}
	}
	return p
}

// Play plays the effect mapped to e, if any.
func (p *OtoPlayer) Play(e core.Event) {
	if s, ok := soundFor(e); ok {
		p.play(s)
	}
}

// Click plays the menu selection sound.
func (p *OtoPlayer) Click() {
	p.play(soundClick)
}

// Close stops accepting new sounds and waits for playing ones to finish.
func (p *OtoPlayer) Close() error {
	p.closed.Store(true)
	p.wg.Wait()
	return nil
}

func (p *OtoPlayer) play(s sound) {
	if p.closed.Load() {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	if p.voices.Load() >= maxVoices {
		return
	}

	samples := p.samples(s)
	if len(samples) == 0 {
		return
	}

	p.voices.Add(1)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.voices.Add(-1)
		player := p.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

func (p *OtoPlayer) samples(s sound) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if buf, ok := p.cache[s]; ok {
		return buf
	}
	buf := generate(s)
	p.cache[s] = buf
	return buf
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(b []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(b, r.data[r.pos:])
	r.pos += n
	return n, nil
}
