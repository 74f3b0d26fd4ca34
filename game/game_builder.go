package game

import (
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/audio"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/mesh"
)

// GameBuilderOption is a functional option for configuring a Game during construction.
type GameBuilderOption func(*game)

// WithConfig sets the session tuning. It is validated by NewGame.
//
// Parameters:
//   - cfg: the tuning
//
// Returns:
//   - GameBuilderOption: functional option to set the config
func WithConfig(cfg Config) GameBuilderOption {
	return func(g *game) {
		g.cfg = cfg
	}
}

// WithPlayer sets the sound effect player. Defaults to a silent audio.RecordingPlayer.
//
// Parameters:
//   - p: the player
//
// Returns:
//   - GameBuilderOption: functional option to set the player
func WithPlayer(p audio.Player) GameBuilderOption {
	return func(g *game) {
		g.player = p
	}
}

// WithBuilder sets the mesh builder used for the palette prebuild.
//
// Parameters:
//   - b: the builder
//
// Returns:
//   - GameBuilderOption: functional option to set the builder
func WithBuilder(b *mesh.Builder) GameBuilderOption {
	return func(g *game) {
		g.builder = b
	}
}

// WithLinger sets how many ticks a finished session stays on screen before Finished reports true.
// Defaults to three seconds of ticks.
//
// Parameters:
//   - ticks: the tick count
//
// Returns:
//   - GameBuilderOption: functional option to set the linger
func WithLinger(ticks int) GameBuilderOption {
	return func(g *game) {
		g.lingerTicks = max(ticks, 0)
	}
}
