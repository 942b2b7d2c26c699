// Package tiles generates synthetic SRTM elevation tiles for benchmarking.
//
// Tiles are .hgt files: big-endian signed 16-bit samples in row-major order
// from the northwest corner, 1201 samples per side for SRTM3 or 3601 for
// SRTM1, named after the integer coordinates of their southwest corner.
package tiles

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Resolution selects the tile grid density.
type Resolution string

const (
	// SRTM3 is the coarse 3-arc-second grid (1201 samples per side, ~2.8 MB).
	SRTM3 Resolution = "srtm3"
	// SRTM1 is the fine 1-arc-second grid (3601 samples per side, ~25 MB).
	SRTM1 Resolution = "srtm1"
)

// Samples returns the grid edge length for the resolution.
func (r Resolution) Samples() (int, error) {
	switch r {
	case SRTM3:
		return 1201, nil
	case SRTM1:
		return 3601, nil
	}
	return 0, fmt.Errorf("unknown resolution %q", r)
}

// FileSize returns the exact byte size of one tile at this resolution.
func (r Resolution) FileSize() (int, error) {
	samples, err := r.Samples()
	if err != nil {
		return 0, err
	}
	return samples * samples * 2, nil
}

// Pattern selects the synthetic elevation content of a tile.
type Pattern string

const (
	// PatternFlat fills the tile with the base elevation.
	PatternFlat Pattern = "flat"
	// PatternGradient ramps elevation diagonally, useful for visual checks.
	PatternGradient Pattern = "gradient"
	// PatternRandom is a deterministic pseudorandom spread around the base.
	PatternRandom Pattern = "random"
)

// ElevationAt returns the pattern's sample value at (row, col).
func (p Pattern) ElevationAt(base, row, col int) int16 {
	switch p {
	case PatternFlat:
		return int16(base)
	case PatternRandom:
		return int16(base + (row*31+col*17)%500)
	default:
		return int16(base + (row+col)%1000)
	}
}

// WriteTile writes one synthetic tile to path, creating parent directories.
func WriteTile(path string, res Resolution, base int, pattern Pattern) error {
	samples, err := res.Samples()
	if err != nil {
		return err
	}

	data := make([]byte, samples*samples*2)
	for row := 0; row < samples; row++ {
		for col := 0; col < samples; col++ {
			offset := (row*samples + col) * 2
			binary.BigEndian.PutUint16(data[offset:offset+2], uint16(pattern.ElevationAt(base, row, col)))
		}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating tile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing tile %s: %w", path, err)
	}
	return nil
}

// Filename encodes the integer southwest corner of a tile in the SRTM
// convention: hemisphere letter, 2-digit latitude, hemisphere letter,
// 3-digit longitude ("N35E135.hgt", "S06E037.hgt").
func Filename(lat, lon int) string {
	latPrefix := "N"
	if lat < 0 {
		latPrefix = "S"
		lat = -lat
	}
	lonPrefix := "E"
	if lon < 0 {
		lonPrefix = "W"
		lon = -lon
	}
	return fmt.Sprintf("%s%02d%s%03d.hgt", latPrefix, lat, lonPrefix, lon)
}

// BatchOptions configures a tile batch layout.
type BatchOptions struct {
	Count      int
	Resolution Resolution
	Pattern    Pattern
	StartLat   int
	StartLon   int
	// Progress, when set, is called after each tile with (done, total).
	Progress func(done, total int)
}

// tilesPerRow is the implicit grid width for batch layout.
const tilesPerRow = 10

// GenerateBatch writes a grid of tiles under dir and returns their paths.
// Latitude wraps back to the start past 60°, longitude past 180°. Base
// elevation varies per tile index so files are not identical.
func GenerateBatch(dir string, opts BatchOptions) ([]string, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("tile count must be positive, got %d", opts.Count)
	}
	if _, err := opts.Resolution.Samples(); err != nil {
		return nil, err
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = PatternGradient
	}

	created := make([]string, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		lat := opts.StartLat + i/tilesPerRow
		lon := opts.StartLon + i%tilesPerRow

		if lat > 60 {
			lat = opts.StartLat
		}
		if lon > 180 {
			lon = opts.StartLon
		}

		base := 100 + (i*50)%2000

		path := filepath.Join(dir, Filename(lat, lon))
		if err := WriteTile(path, opts.Resolution, base, pattern); err != nil {
			return created, err
		}
		created = append(created, path)

		if opts.Progress != nil {
			opts.Progress(i+1, opts.Count)
		}
	}

	return created, nil
}
