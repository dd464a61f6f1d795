package driver

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/chazu/brainpond/runlog"
	"github.com/chazu/brainpond/vm"
)

func TestRunRandomSkipsEmptyGrid(t *testing.T) {
	g := vm.NewGrid(8, 8)
	p := New(g, vm.NewEngine(g), rand.New(rand.NewSource(1)))

	ok, err := p.RunRandom()
	if err != nil {
		t.Fatalf("RunRandom failed: %v", err)
	}
	if ok {
		t.Error("RunRandom ran on a grid with no entry markers")
	}
	if p.Generation() != 0 {
		t.Errorf("generation = %d, want 0", p.Generation())
	}
}

func TestRunRandomExecutesSeededOrganism(t *testing.T) {
	g := vm.NewGrid(8, 16)
	if err := g.Seed([]string{"@>+]"}, vm.Position{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	p := New(g, vm.NewEngine(g), rand.New(rand.NewSource(1)), WithBudget(10))

	ok, err := p.RunRandom()
	if err != nil {
		t.Fatalf("RunRandom failed: %v", err)
	}
	if !ok {
		t.Fatal("RunRandom skipped a grid holding an entry marker")
	}
	if p.Generation() != 1 {
		t.Errorf("generation = %d, want 1", p.Generation())
	}
}

func TestEvolveRecordsRuns(t *testing.T) {
	store, err := runlog.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	g := vm.NewGrid(8, 8)
	if err := g.Seed([]string{"@"}, vm.Position{Row: 2, Col: 2}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	p := New(g, vm.NewEngine(g), rand.New(rand.NewSource(3)),
		WithBudget(20), WithStore(store))

	if err := p.Evolve(5); err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}
	if p.Generation() != 5 {
		t.Errorf("generation = %d, want 5", p.Generation())
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("recorded %d runs, want 5", len(runs))
	}
	for _, rec := range runs {
		if rec.EntryRow != 2 || rec.EntryCol != 2 {
			t.Errorf("entry = (%d, %d), want (2, 2)", rec.EntryRow, rec.EntryCol)
		}
		if rec.Budget != 20 {
			t.Errorf("budget = %d, want 20", rec.Budget)
		}
	}
}

func TestEvolveAppliesMutation(t *testing.T) {
	g := vm.NewGrid(8, 8)
	// No entry markers: every round is a skip, but mutation still fires.
	p := New(g, vm.NewEngine(g), rand.New(rand.NewSource(9)),
		WithMutation(1, 0.5))

	if err := p.Evolve(4); err != nil {
		t.Fatalf("Evolve failed: %v", err)
	}

	changed := 0
	snap := g.Snapshot()
	for _, c := range snap.Cells {
		if c != 0 {
			changed++
		}
	}
	if changed == 0 {
		t.Error("no cells mutated after 4 mutation passes at fraction 0.5")
	}
}

func TestWithGenerationResumesCounter(t *testing.T) {
	g := vm.NewGrid(4, 4)
	if err := g.Seed([]string{"@"}, vm.Position{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	p := New(g, vm.NewEngine(g), rand.New(rand.NewSource(1)),
		WithBudget(5), WithGeneration(100))

	if _, err := p.RunRandom(); err != nil {
		t.Fatalf("RunRandom failed: %v", err)
	}
	if p.Generation() != 101 {
		t.Errorf("generation = %d, want 101", p.Generation())
	}
}
