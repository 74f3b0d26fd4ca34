package audio

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2

	// bytesPerFrame is one stereo frame of 32-bit float samples.
	bytesPerFrame = ChannelCount * 4
)

// Effect identifies a procedurally generated sound effect.
type Effect int

const (
	// EffectPop plays when a bacterium is clicked away.
	EffectPop Effect = iota

	// EffectPenalty plays when a bacterium reaches the threshold and a life is lost.
	EffectPenalty

	// EffectWin plays when the dish is cleared.
	EffectWin

	// EffectLose plays when the last life is lost.
	EffectLose
)

// String returns the lower-case name of the effect.
func (e Effect) String() string {
	switch e {
	case EffectPop:
		return "pop"
	case EffectPenalty:
		return "penalty"
	case EffectWin:
		return "win"
	case EffectLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Player plays sound effects without blocking the caller.
type Player interface {
	// Play starts an effect and returns immediately. Effects that cannot be played are dropped.
	//
	// Parameters:
	//   - effect: the effect to play
	Play(effect Effect)

	// Close stops accepting effects.
	//
	// Returns:
	//   - error: error if the output device cannot be released
	Close() error
}

// Synthesize renders an effect as interleaved stereo float32 little-endian PCM at SampleRate.
//
// Parameters:
//   - effect: the effect to render
//
// Returns:
//   - []byte: the samples, empty for unknown effects
func Synthesize(effect Effect) []byte {
	switch effect {
	case EffectPop:
		return genPop()
	case EffectPenalty:
		return genPenalty()
	case EffectWin:
		return genArpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 0.09)
	case EffectLose:
		return genArpeggio([]float64{392.0, 329.63, 261.63, 196.0}, 0.16)
	default:
		return nil
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereo writes a [-1,1] sample to both channels of frame i.
func putStereo(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(max(-1, min(1, sample))))
	binary.LittleEndian.PutUint32(buf[i*bytesPerFrame:], v)
	binary.LittleEndian.PutUint32(buf[i*bytesPerFrame+4:], v)
}

// envelope is a linear attack followed by an exponential decay over normalized progress.
func envelope(progress, attack, decay float64) float64 {
	if progress < attack {
		return progress / attack
	}
	return math.Exp(-decay * (progress - attack))
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func frames(seconds float64) int {
	return int(seconds * SampleRate)
}

// genPop is a short downward chirp with a click of noise.
func genPop() []byte {
	n := frames(0.12)
	buf := make([]byte, n*bytesPerFrame)
	seed := uint64(7)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 900 - 600*p
		phase += 2 * math.Pi * freq / SampleRate
		s := math.Sin(phase)*0.7 + lcg(&seed)*0.2*(1-p)
		putStereo(buf, i, s*envelope(p, 0.02, 6)*0.6)
	}
	return buf
}

// genPenalty is a low buzzing square tone.
func genPenalty() []byte {
	n := frames(0.35)
	buf := make([]byte, n*bytesPerFrame)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		phase += 2 * math.Pi * (140 - 40*p) / SampleRate
		s := 0.5
		if math.Sin(phase) < 0 {
			s = -0.5
		}
		putStereo(buf, i, s*envelope(p, 0.05, 3)*0.5)
	}
	return buf
}

// genArpeggio plays the notes in sequence, each for step seconds.
func genArpeggio(notes []float64, step float64) []byte {
	per := frames(step)
	buf := make([]byte, per*len(notes)*bytesPerFrame)
	for k, freq := range notes {
		for j := 0; j < per; j++ {
			p := float64(j) / float64(per)
			t := float64(j) / SampleRate
			s := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
			putStereo(buf, k*per+j, s*envelope(p, 0.05, 4)*0.4)
		}
	}
	return buf
}
