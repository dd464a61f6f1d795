// Package manifest handles pond.toml configuration: the world shape, run
// parameters, mutation pressure, and the programs seeded into a fresh pond.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a pond.toml configuration.
type Manifest struct {
	World    World    `toml:"world"`
	Run      Run      `toml:"run"`
	Mutation Mutation `toml:"mutation"`
	Seeds    []Seed   `toml:"seed"`

	// Dir is the directory containing the pond.toml file (set at load time).
	Dir string `toml:"-"`
}

// World configures the shared grid and the per-run tape.
type World struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	TapeWidth  int `toml:"tape-width"`
	TapeHeight int `toml:"tape-height"`

	// Data range for noise fill and mutation, min inclusive, max exclusive.
	NoiseMin int `toml:"noise-min"`
	NoiseMax int `toml:"noise-max"`
}

// Run configures one organism execution.
type Run struct {
	Steps    int `toml:"steps"`     // step budget per run
	CopyCost int `toml:"copy-cost"` // surcharge for a destination-changing copy
}

// Mutation configures the background noise applied between run batches.
type Mutation struct {
	Rate  float64 `toml:"rate"`  // fraction of the grid overwritten per mutation pass
	Every int     `toml:"every"` // apply after every N runs; 0 disables
}

// Seed is one program block written into the grid before evolution starts.
type Seed struct {
	Program []string `toml:"program"`
	At      []int    `toml:"at"` // [row, col] origin; empty means the grid origin
}

// Origin returns the seed's grid origin row and column.
func (s *Seed) Origin() (row, col int) {
	if len(s.At) >= 2 {
		return s.At[0], s.At[1]
	}
	return 0, 0
}

// Default returns a manifest with every field at its default, matching a
// 1024x1024 pond with 32x32 tapes.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.World.Width == 0 {
		m.World.Width = 1024
	}
	if m.World.Height == 0 {
		m.World.Height = 1024
	}
	if m.World.TapeWidth == 0 {
		m.World.TapeWidth = 32
	}
	if m.World.TapeHeight == 0 {
		m.World.TapeHeight = 32
	}
	if m.World.NoiseMin == 0 && m.World.NoiseMax == 0 {
		m.World.NoiseMin = -16
		m.World.NoiseMax = 16
	}
	if m.Run.Steps == 0 {
		m.Run.Steps = 300
	}
	if m.Run.CopyCost == 0 {
		m.Run.CopyCost = 200
	}
}

func (m *Manifest) validate() error {
	if m.World.Width < 1 || m.World.Height < 1 {
		return fmt.Errorf("world size %dx%d is not positive", m.World.Height, m.World.Width)
	}
	if m.World.TapeWidth < 1 || m.World.TapeHeight < 1 {
		return fmt.Errorf("tape size %dx%d is not positive", m.World.TapeHeight, m.World.TapeWidth)
	}
	if m.World.NoiseMin >= m.World.NoiseMax {
		return fmt.Errorf("noise range [%d, %d) is empty", m.World.NoiseMin, m.World.NoiseMax)
	}
	if m.World.NoiseMin < -128 || m.World.NoiseMax > 128 {
		return fmt.Errorf("noise range [%d, %d) leaves the signed 8-bit range", m.World.NoiseMin, m.World.NoiseMax)
	}
	if m.Run.Steps < 1 {
		return fmt.Errorf("run steps %d is not positive", m.Run.Steps)
	}
	if m.Run.CopyCost < 0 {
		return fmt.Errorf("copy cost %d is negative", m.Run.CopyCost)
	}
	if m.Mutation.Rate < 0 || m.Mutation.Rate > 1 {
		return fmt.Errorf("mutation rate %g is not in [0, 1]", m.Mutation.Rate)
	}
	for i, s := range m.Seeds {
		if len(s.At) != 0 && len(s.At) != 2 {
			return fmt.Errorf("seed %d: at = %v, want [row, col]", i, s.At)
		}
		if len(s.Program) == 0 {
			return fmt.Errorf("seed %d: empty program", i)
		}
	}
	return nil
}

// Load parses a pond.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "pond.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	m.applyDefaults()
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a pond.toml file, then loads
// and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "pond.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}
