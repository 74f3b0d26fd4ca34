package audio

// playerConfig collects construction settings shared by every Player implementation.
type playerConfig struct {
	volume    float64
	maxVoices int32
}

// PlayerBuilderOption is a functional option for configuring a Player during construction.
type PlayerBuilderOption func(*playerConfig)

func newPlayerConfig(options ...PlayerBuilderOption) playerConfig {
	cfg := playerConfig{volume: 0.6, maxVoices: 4}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// WithVolume sets the playback volume, clamped to [0, 1].
//
// Parameters:
//   - volume: the volume
//
// Returns:
//   - PlayerBuilderOption: functional option to set the volume
func WithVolume(volume float64) PlayerBuilderOption {
	return func(c *playerConfig) {
		c.volume = max(0, min(1, volume))
	}
}

// WithMaxVoices sets how many effects may sound at once. Further effects are dropped.
//
// Parameters:
//   - n: the voice limit, at least 1
//
// Returns:
//   - PlayerBuilderOption: functional option to set the limit
func WithMaxVoices(n int) PlayerBuilderOption {
	return func(c *playerConfig) {
		c.maxVoices = int32(max(1, n))
	}
}
