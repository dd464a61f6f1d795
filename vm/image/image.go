// Package image serializes pond snapshots to CBOR so an evolving grid can
// be saved and resumed across sessions. Encoding is canonical for
// deterministic bytes.
package image

import (
	"fmt"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/brainpond/vm"
)

// Version is the current image format version.
const Version = 1

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Image is one serialized pond: the grid cells plus enough metadata to
// resume evolution.
type Image struct {
	Version    byte   `cbor:"1,keyasint"`
	Height     int    `cbor:"2,keyasint"`
	Width      int    `cbor:"3,keyasint"`
	Cells      []int8 `cbor:"4,keyasint"`
	Generation uint64 `cbor:"5,keyasint,omitempty"` // completed runs so far
	SavedAt    int64  `cbor:"6,keyasint,omitempty"` // unix seconds
}

// Capture snapshots a grid into an Image.
func Capture(g *vm.Grid, generation uint64) *Image {
	snap := g.Snapshot()
	cells := make([]int8, len(snap.Cells))
	for i, c := range snap.Cells {
		cells[i] = int8(c)
	}
	return &Image{
		Version:    Version,
		Height:     snap.Height,
		Width:      snap.Width,
		Cells:      cells,
		Generation: generation,
		SavedAt:    time.Now().Unix(),
	}
}

// Restore rebuilds the grid held in the image.
func (img *Image) Restore() (*vm.Grid, error) {
	if img.Version != Version {
		return nil, fmt.Errorf("image: unsupported version %d", img.Version)
	}
	cells := make([]vm.Cell, len(img.Cells))
	for i, c := range img.Cells {
		cells[i] = vm.Cell(c)
	}
	g, err := vm.NewGridFromCells(img.Height, img.Width, cells)
	if err != nil {
		return nil, fmt.Errorf("image: restore: %w", err)
	}
	return g, nil
}

// Marshal serializes an Image to CBOR bytes.
func Marshal(img *Image) ([]byte, error) {
	return cborEncMode.Marshal(img)
}

// Unmarshal deserializes an Image from CBOR bytes.
func Unmarshal(data []byte) (*Image, error) {
	var img Image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("image: unmarshal: %w", err)
	}
	return &img, nil
}

// WriteFile saves an Image to path.
func WriteFile(path string, img *Image) error {
	data, err := Marshal(img)
	if err != nil {
		return fmt.Errorf("image: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("image: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads an Image from path.
func ReadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("image: read %s: %w", path, err)
	}
	return Unmarshal(data)
}
