package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// otoPlayer plays effects through an oto context.
type otoPlayer struct {
	ctx   *oto.Context
	ready chan struct{}

	volume    float64
	maxVoices int32
	voices    atomic.Int32

	// cache holds each effect's samples once rendered.
	mu    sync.Mutex
	cache map[Effect][]byte

	closed atomic.Bool
}

var _ Player = &otoPlayer{}

// NewPlayer opens the default audio device.
//
// Parameters:
//   - options: variadic list of PlayerBuilderOption functions to configure the Player
//
// Returns:
//   - Player: the player; effects are dropped until the device is ready
//   - error: error if the audio context cannot be created
func NewPlayer(options ...PlayerBuilderOption) (Player, error) {
	cfg := newPlayerConfig(options...)

	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	log.Printf("[Audio] output %d Hz, %d channels", SampleRate, ChannelCount)
	return &otoPlayer{
		ctx:       ctx,
		ready:     ready,
		volume:    cfg.volume,
		maxVoices: cfg.maxVoices,
		cache:     make(map[Effect][]byte),
	}, nil
}

func (p *otoPlayer) samples(effect Effect) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.cache[effect]
	if !ok {
		data = Synthesize(effect)
		p.cache[effect] = data
	}
	return data
}

func (p *otoPlayer) Play(effect Effect) {
	if p.closed.Load() {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	// Too many overlapping voices clip the output.
	if p.voices.Add(1) > p.maxVoices {
		p.voices.Add(-1)
		return
	}
	data := p.samples(effect)
	if len(data) == 0 {
		p.voices.Add(-1)
		return
	}

	go func() {
		defer p.voices.Add(-1)
		player := p.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Printf("[Audio] close %s: %v", effect, err)
		}
	}()
}

func (p *otoPlayer) Close() error {
	p.closed.Store(true)
	return nil
}
