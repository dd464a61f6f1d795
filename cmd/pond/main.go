// Pond CLI - the main entry point for evolving a BrainPond world
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/brainpond/driver"
	"github.com/chazu/brainpond/manifest"
	"github.com/chazu/brainpond/render"
	"github.com/chazu/brainpond/runlog"
	"github.com/chazu/brainpond/vm"
	"github.com/chazu/brainpond/vm/image"
)

var log = commonlog.GetLogger("pond")

func main() {
	configDir := flag.String("config", "", "Directory containing pond.toml (default: search upward from cwd)")
	rounds := flag.Int("rounds", 100000, "Number of organism runs to perform")
	renderEvery := flag.Int("render-every", 100, "Print a grid window every N rounds (0 disables)")
	viewport := flag.Int("viewport", 40, "Edge length of the rendered grid window")
	loadPath := flag.String("load", "", "Resume from a saved pond image")
	savePath := flag.String("save", "", "Write a pond image when done")
	dbPath := flag.String("db", "", "Record run history to a SQLite database at this path")
	rngSeed := flag.Int64("rng-seed", 0, "Seed for the random source (0 = time-based)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pond [options]\n\n")
		fmt.Fprintf(os.Stderr, "Evolves a BrainPond grid: seeds programs from pond.toml, then repeatedly\n")
		fmt.Fprintf(os.Stderr, "runs organisms from random entry markers, mutating the grid between runs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pond -rounds 10000 -render-every 500   # watch the pond evolve\n")
		fmt.Fprintf(os.Stderr, "  pond -save pond.image -rounds 100000   # evolve, then checkpoint\n")
		fmt.Fprintf(os.Stderr, "  pond -load pond.image -db runs.db      # resume with run history\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	m := loadManifest(*configDir)

	seed := *rngSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid, generation := buildGrid(m, *loadPath, rng)

	engine := vm.NewEngine(grid,
		vm.WithTapeSize(m.World.TapeHeight, m.World.TapeWidth),
		vm.WithCopyCost(m.Run.CopyCost),
	)

	opts := []driver.Option{
		driver.WithBudget(m.Run.Steps),
		driver.WithMutation(m.Mutation.Every, m.Mutation.Rate),
		driver.WithGeneration(generation),
	}
	if *dbPath != "" {
		store, err := runlog.Open(*dbPath)
		if err != nil {
			fatal("opening run log: %v", err)
		}
		defer store.Close()
		opts = append(opts, driver.WithStore(store))
	}
	pond := driver.New(grid, engine, rng, opts...)

	evolve(pond, *rounds, *renderEvery, *viewport)

	if *savePath != "" {
		if err := image.WriteFile(*savePath, image.Capture(grid, pond.Generation())); err != nil {
			fatal("saving image: %v", err)
		}
		log.Infof("saved pond image to %s at generation %d", *savePath, pond.Generation())
	}
}

// loadManifest resolves the pond configuration: an explicit -config
// directory, else the nearest pond.toml above the working directory, else
// defaults.
func loadManifest(configDir string) *manifest.Manifest {
	if configDir != "" {
		m, err := manifest.Load(configDir)
		if err != nil {
			fatal("%v", err)
		}
		return m
	}

	cwd, err := os.Getwd()
	if err != nil {
		fatal("getting working directory: %v", err)
	}
	m, err := manifest.FindAndLoad(cwd)
	if err != nil {
		fatal("%v", err)
	}
	if m == nil {
		return manifest.Default()
	}
	return m
}

// buildGrid restores a saved image or creates a fresh noise grid, then
// applies the manifest's seed programs.
func buildGrid(m *manifest.Manifest, loadPath string, rng *rand.Rand) (*vm.Grid, uint64) {
	var grid *vm.Grid
	var generation uint64

	if loadPath != "" {
		img, err := image.ReadFile(loadPath)
		if err != nil {
			fatal("loading image: %v", err)
		}
		grid, err = img.Restore()
		if err != nil {
			fatal("restoring image: %v", err)
		}
		generation = img.Generation
		log.Infof("resumed %dx%d pond at generation %d", grid.Height(), grid.Width(), generation)
	} else {
		grid = vm.NewNoiseGrid(m.World.Height, m.World.Width, rng)
	}
	grid.SetDataRange(m.World.NoiseMin, m.World.NoiseMax)

	for i, s := range m.Seeds {
		row, col := s.Origin()
		if err := grid.Seed(s.Program, vm.Position{Row: row, Col: col}); err != nil {
			fatal("seed %d: %v", i, err)
		}
	}
	return grid, generation
}

// evolve runs the pond in render-sized batches, printing a grid window
// between batches.
func evolve(pond *driver.Pond, rounds, renderEvery, viewport int) {
	r := render.New()
	batch := renderEvery
	if batch <= 0 {
		batch = rounds
	}

	for done := 0; done < rounds; {
		n := batch
		if rounds-done < n {
			n = rounds - done
		}
		if err := pond.Evolve(n); err != nil {
			fatal("%v", err)
		}
		done += n

		if renderEvery > 0 {
			fmt.Printf("generation %d\n", pond.Generation())
			fmt.Print(r.Frame(pond.Grid().Snapshot(), nil, 0, 0, viewport, viewport))
			fmt.Println()
		}
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "pond: "+format+"\n", args...)
	os.Exit(1)
}
