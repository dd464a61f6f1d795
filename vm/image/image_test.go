package image

import (
	"path/filepath"
	"testing"

	"github.com/chazu/brainpond/vm"
)

func TestCaptureRestoreRoundTrip(t *testing.T) {
	g := vm.NewGrid(3, 5)
	if err := g.Seed([]string{"@>+]"}, vm.Position{Row: 1, Col: 1}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	g.Set(vm.Position{Row: 2, Col: 4}, -7)

	img := Capture(g, 42)
	if img.Version != Version {
		t.Errorf("version = %d, want %d", img.Version, Version)
	}
	if img.Generation != 42 {
		t.Errorf("generation = %d, want 42", img.Generation)
	}

	restored, err := img.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if restored.Height() != 3 || restored.Width() != 5 {
		t.Fatalf("restored size = %dx%d, want 3x5", restored.Height(), restored.Width())
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 5; col++ {
			pos := vm.Position{Row: row, Col: col}
			if restored.At(pos) != g.At(pos) {
				t.Errorf("cell %v = %d, want %d", pos, restored.At(pos), g.At(pos))
			}
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	g := vm.NewGrid(2, 2)
	g.Set(vm.Position{}, vm.EntryCell)
	img := Capture(g, 1)

	data, err := Marshal(img)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Height != 2 || got.Width != 2 || got.Generation != 1 {
		t.Errorf("decoded image = %dx%d gen %d, want 2x2 gen 1", got.Height, got.Width, got.Generation)
	}
	if got.Cells[0] != int8(vm.EntryCell) {
		t.Errorf("cell 0 = %d, want %d", got.Cells[0], int8(vm.EntryCell))
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	img := &Image{Version: Version, Height: 1, Width: 2, Cells: []int8{0, 1}}
	a, err := Marshal(img)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(img)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("canonical encoding produced different bytes for the same image")
	}
}

func TestRestoreRejectsCorruptImage(t *testing.T) {
	img := &Image{Version: Version, Height: 2, Width: 2, Cells: []int8{1, 2, 3}}
	if _, err := img.Restore(); err == nil {
		t.Error("cell count mismatch accepted")
	}

	img2 := &Image{Version: 99, Height: 1, Width: 1, Cells: []int8{0}}
	if _, err := img2.Restore(); err == nil {
		t.Error("unknown version accepted")
	}
}

func TestFileRoundTrip(t *testing.T) {
	g := vm.NewGrid(2, 3)
	g.Set(vm.Position{Row: 1, Col: 2}, 5)
	path := filepath.Join(t.TempDir(), "pond.image")

	if err := WriteFile(path, Capture(g, 7)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	img, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	restored, err := img.Restore()
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := restored.At(vm.Position{Row: 1, Col: 2}); got != 5 {
		t.Errorf("cell = %d, want 5", got)
	}
	if img.Generation != 7 {
		t.Errorf("generation = %d, want 7", img.Generation)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.image")); err == nil {
		t.Error("missing file accepted")
	}
}
