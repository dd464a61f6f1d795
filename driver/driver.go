// Package driver runs the outer artificial-life loop: it discovers entry
// markers on a shared grid, executes one organism at a time, interleaves
// background mutation, and records run history. Runs are strictly
// sequential; the grid is never written by two runs at once.
package driver

import (
	"fmt"
	"math/rand"

	"github.com/tliron/commonlog"

	"github.com/chazu/brainpond/runlog"
	"github.com/chazu/brainpond/vm"
)

var log = commonlog.GetLogger("pond.driver")

// Pond couples a shared grid with the engine that evolves it.
type Pond struct {
	grid   *vm.Grid
	engine *vm.Engine
	rng    *rand.Rand

	budget       int
	mutateEvery  int     // mutate after every N runs; 0 disables
	mutationRate float64 // fraction of the grid overwritten per mutation
	store        *runlog.Store

	generation uint64 // completed runs
}

// Option configures a Pond.
type Option func(*Pond)

// WithBudget sets the step budget handed to each run.
func WithBudget(steps int) Option {
	return func(p *Pond) { p.budget = steps }
}

// WithMutation applies grid mutation of the given fraction after every
// `every` runs. every = 0 disables mutation.
func WithMutation(every int, fraction float64) Option {
	return func(p *Pond) {
		p.mutateEvery = every
		p.mutationRate = fraction
	}
}

// WithStore records every completed run to the given run log.
func WithStore(s *runlog.Store) Option {
	return func(p *Pond) { p.store = s }
}

// WithGeneration resumes the run counter, for ponds restored from an image.
func WithGeneration(gen uint64) Option {
	return func(p *Pond) { p.generation = gen }
}

// New creates a pond over grid. The rng drives entry selection, initial
// directions, and mutation; pass a fixed-seed source for reproducible
// evolution.
func New(grid *vm.Grid, engine *vm.Engine, rng *rand.Rand, opts ...Option) *Pond {
	p := &Pond{
		grid:   grid,
		engine: engine,
		rng:    rng,
		budget: 300,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grid returns the shared grid.
func (p *Pond) Grid() *vm.Grid { return p.grid }

// Generation returns the number of completed runs.
func (p *Pond) Generation() uint64 { return p.generation }

// RunRandom executes one organism from a uniformly chosen entry marker with
// a uniformly chosen initial direction. It returns false, nil when the grid
// holds no entry markers: a valid nothing-to-run round, not an error.
func (p *Pond) RunRandom() (bool, error) {
	entries := p.grid.FindAll(vm.EntryCell)
	if len(entries) == 0 {
		log.Debug("no entry markers on grid, skipping round")
		return false, nil
	}

	start := entries[p.rng.Intn(len(entries))]
	dir := vm.RandomDirection(p.rng)
	res := p.engine.Execute(start, dir, p.budget)
	p.generation++

	if p.store != nil {
		rec := runlog.Record{
			EntryRow:  res.Entry.Row,
			EntryCol:  res.Entry.Col,
			Direction: dir.String(),
			Budget:    p.budget,
			Steps:     res.Steps,
			Copies:    res.Copies,
		}
		if err := p.store.RecordRun(&rec); err != nil {
			return true, fmt.Errorf("driver: recording run %d: %w", p.generation, err)
		}
	}
	return true, nil
}

// Evolve performs rounds sequential runs, interleaving mutation per the
// configured cadence. Rounds with no entry markers are skipped, still
// counting toward the mutation cadence.
func (p *Pond) Evolve(rounds int) error {
	ran := 0
	for i := 0; i < rounds; i++ {
		ok, err := p.RunRandom()
		if err != nil {
			return err
		}
		if ok {
			ran++
		}
		if p.mutateEvery > 0 && p.mutationRate > 0 && (i+1)%p.mutateEvery == 0 {
			p.grid.Mutate(p.mutationRate, p.rng)
		}
	}
	log.Infof("evolved %d rounds (%d organisms ran), generation %d", rounds, ran, p.generation)
	return nil
}
