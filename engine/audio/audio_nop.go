package audio

import "sync"

// RecordingPlayer is a silent Player that remembers what it was asked to play. It serves
// headless runs and tests.
type RecordingPlayer struct {
	mu     sync.Mutex
	played []Effect
	closed bool
}

var _ Player = &RecordingPlayer{}

// NewRecordingPlayer creates a silent Player.
func NewRecordingPlayer() *RecordingPlayer {
	return &RecordingPlayer{}
}

func (p *RecordingPlayer) Play(effect Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.played = append(p.played, effect)
}

func (p *RecordingPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Played returns a copy of the effects played so far, in order.
func (p *RecordingPlayer) Played() []Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Effect(nil), p.played...)
}
