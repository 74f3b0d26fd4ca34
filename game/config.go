package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/mesh"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/picking"
)

// SeedEnv overrides Config.Seed when set to an unsigned integer.
const SeedEnv = "BASHER_SEED"

// Config holds the tuning of one game session. Radii are in dish units; the dish has radius 1.
type Config struct {
	// Seed drives spawning and the palette. Zero picks a random seed per session.
	Seed uint64 `json:"seed"`

	// DishDepth and BacteriumDepth are the subdivision depths of the two sphere kinds.
	DishDepth      int `json:"dishDepth"`
	BacteriumDepth int `json:"bacteriumDepth"`

	// FirstID and MaxBacteria define the id range [FirstID, FirstID+MaxBacteria). MaxBacteria
	// is also the live cap.
	FirstID     uint32 `json:"firstId"`
	MaxBacteria int    `json:"maxBacteria"`

	// SpawnChance is the probability of one spawn per tick.
	SpawnChance float64 `json:"spawnChance"`

	InitialRadius   float32 `json:"initialRadius"`
	GrowthIncrement float32 `json:"growthIncrement"`
	MaxRadius       float32 `json:"maxRadius"`

	// ConsumeShrink is the radius a consumed bacterium loses per tick. ConsumePull is the fraction
	// of the gap to its consumer closed per tick.
	ConsumeShrink float32 `json:"consumeShrink"`
	ConsumePull   float32 `json:"consumePull"`

	// Alpha is the opacity of every bacterium color.
	Alpha float32 `json:"alpha"`

	Lives    int `json:"lives"`
	WinScore int `json:"winScore"`

	// TickRate is the number of simulation ticks per second.
	TickRate float64 `json:"tickRate"`
}

// DefaultConfig returns the classic tuning: 15 bacteria with ids 3..17, a 1/45 spawn chance,
// growth 0.0001 per tick up to 0.2, two lives and a win at 15 kills.
func DefaultConfig() Config {
	return Config{
		DishDepth:       5,
		BacteriumDepth:  5,
		FirstID:         3,
		MaxBacteria:     15,
		SpawnChance:     1.0 / 45.0,
		InitialRadius:   0.07,
		GrowthIncrement: 0.0001,
		MaxRadius:       0.0001 * 2000,
		ConsumeShrink:   0.0005,
		ConsumePull:     0.02,
		Alpha:           0.8,
		Lives:           2,
		WinScore:        15,
		TickRate:        60,
	}
}

// Validate checks every field for a usable value.
//
// Returns:
//   - error: a wrapped common.ErrConfiguration naming every bad field
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(mesh.CheckDepth(c.DishDepth) == nil, "dishDepth %d out of range [0, %d]", c.DishDepth, mesh.MaxDepth)
	check(mesh.CheckDepth(c.BacteriumDepth) == nil, "bacteriumDepth %d out of range [0, %d]", c.BacteriumDepth, mesh.MaxDepth)
	check(c.FirstID != picking.NoHit, "firstId must not be %d", picking.NoHit)
	check(c.MaxBacteria > 0, "maxBacteria must be positive, got %d", c.MaxBacteria)
	check(uint64(c.FirstID)+uint64(max(c.MaxBacteria, 0)) <= uint64(picking.IDLimit),
		"id range [%d, %d) exceeds %d", c.FirstID, uint64(c.FirstID)+uint64(max(c.MaxBacteria, 0)), picking.IDLimit)
	check(c.SpawnChance >= 0 && c.SpawnChance <= 1, "spawnChance %v outside [0, 1]", c.SpawnChance)
	check(c.InitialRadius > 0, "initialRadius must be positive, got %v", c.InitialRadius)
	check(c.GrowthIncrement >= 0, "growthIncrement must not be negative, got %v", c.GrowthIncrement)
	check(c.MaxRadius > c.InitialRadius, "maxRadius %v must exceed initialRadius %v", c.MaxRadius, c.InitialRadius)
	check(c.ConsumeShrink > 0, "consumeShrink must be positive, got %v", c.ConsumeShrink)
	check(c.ConsumePull >= 0 && c.ConsumePull <= 1, "consumePull %v outside [0, 1]", c.ConsumePull)
	check(c.Alpha >= 0 && c.Alpha <= 1, "alpha %v outside [0, 1]", c.Alpha)
	check(c.Lives > 0, "lives must be positive, got %d", c.Lives)
	check(c.WinScore > 0, "winScore must be positive, got %d", c.WinScore)
	check(c.TickRate > 0, "tickRate must be positive, got %v", c.TickRate)

	if len(errs) > 0 {
		return fmt.Errorf("game config: %w: %w", common.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

// LoadConfig reads a JSON settings file over DefaultConfig, applies the BASHER_SEED override
// and validates the result. A missing file yields the defaults.
//
// Parameters:
//   - path: the settings file; empty skips the file
//
// Returns:
//   - Config: the loaded configuration
//   - error: a wrapped common.ErrConfiguration for unreadable, malformed or invalid settings
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("[Game] no settings at %s, using defaults", path)
		case err != nil:
			return Config{}, fmt.Errorf("open settings %s: %w: %w", path, common.ErrConfiguration, err)
		default:
			defer file.Close()
			dec := json.NewDecoder(file)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&cfg); err != nil {
				return Config{}, fmt.Errorf("parse settings %s: %w: %w", path, common.ErrConfiguration, err)
			}
			log.Printf("[Game] loaded settings from %s", path)
		}
	}

	if s := os.Getenv(SeedEnv); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s=%q: %w: %w", SeedEnv, s, common.ErrConfiguration, err)
		}
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
