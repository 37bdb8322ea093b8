// Package mosaic rebuilds a model image out of tiles cut from a source
// image. Every source tile is used at most once.
package mosaic

import (
	"fmt"
	"math"

	"github.com/kiesman99/mosaic/pkg/raster"
)

const (
	// MaxDim caps both dimensions of the model
	MaxDim = 720

	// SimilarityThreshold stops the candidate scan as soon as an accepted
	// tile scores below it
	SimilarityThreshold = 50
)

// Config holds the compositor tunables
type Config struct {
	MaxDim              int
	SimilarityThreshold int
	Background          raster.RGB
}

// DefaultConfig returns the tunables used by Compose
func DefaultConfig() Config {
	return Config{
		MaxDim:              MaxDim,
		SimilarityThreshold: SimilarityThreshold,
		Background:          raster.Black,
	}
}

// Stats describes a finished composition
type Stats struct {
	Columns    int // model tile columns
	Rows       int // model tile rows
	Positions  int // positions visited
	Filled     int // positions that received a donor tile
	Unmatched  int // positions left as background
	Candidates int // scores computed
	Unused     int // donor tiles never placed
}

type match struct {
	col, row int
	score    int
	tile     Tile
}

// Compose rebuilds model out of fragW x fragH tiles of source using the
// default configuration. The result has the size of the normalized model.
func Compose(source, model *raster.Raster, fragW, fragH int) (*raster.Raster, error) {
	out, _, err := DefaultConfig().ComposeStats(source, model, fragW, fragH)
	return out, err
}

// Compose is the package level Compose with c's tunables
func (c Config) Compose(source, model *raster.Raster, fragW, fragH int) (*raster.Raster, error) {
	out, _, err := c.ComposeStats(source, model, fragW, fragH)
	return out, err
}

// ComposeStats composes and also reports how the positions were filled.
//
// Positions are visited from the last column down to column 1 and, within a
// column, from the last row down to row 1; the top row and left column stay
// background. A position where no candidate scores above zero is left as
// background and consumes nothing.
func (c Config) ComposeStats(source, model *raster.Raster, fragW, fragH int) (*raster.Raster, Stats, error) {
	if fragW < 1 || fragH < 1 {
		return nil, Stats{}, fmt.Errorf("%w: got %dx%d", ErrFragmentSize, fragW, fragH)
	}

	normalized := c.Normalize(model)
	width, height := normalized.Width(), normalized.Height()
	transformed := raster.Resize(source, width, height)

	canvas := raster.NewCanvas(width, height, c.Background)
	grid := Partition(transformed, fragW, fragH)

	stats := Stats{Columns: width / fragW, Rows: height / fragH}
	for i := stats.Columns - 1; i > 0; i-- {
		for j := stats.Rows - 1; j > 0; j-- {
			stats.Positions++

			modelFrag := normalized.SubRect(i*fragW, j*fragH, fragW, fragH)
			best, ok := c.bestMatch(grid, modelFrag, &stats)
			if !ok {
				stats.Unmatched++
				continue
			}

			canvas.Draw(best.tile.Pixels, i*fragW, j*fragH)
			grid.Remove(best.col, best.row)
			stats.Filled++
		}
	}

	stats.Unused = grid.Size()
	return canvas.Raster(), stats, nil
}

// bestMatch scans the remaining tiles in column then row order. Only
// strictly better non-zero scores replace the current best, so the first
// of equally scored tiles wins.
func (c Config) bestMatch(grid *TileGrid, modelFrag *raster.Raster, stats *Stats) (match, bool) {
	best := match{col: -1, row: -1, score: math.MaxInt}
	if grid.Empty() {
		return best, false
	}
	for k := 0; k < grid.Columns(); k++ {
		for l := 0; l < grid.Len(k); l++ {
			t := grid.At(k, l)
			s := Score(t.Pixels, modelFrag)
			stats.Candidates++

			if s > 0 && s < best.score {
				best = match{col: k, row: l, score: s, tile: t}
				if s < c.SimilarityThreshold {
					return best, true
				}
			}
		}
	}
	return best, best.col >= 0
}

// Normalize shrinks m until neither dimension exceeds MaxDim, keeping the
// aspect ratio
func Normalize(m *raster.Raster) *raster.Raster {
	return DefaultConfig().Normalize(m)
}

// Normalize shrinks m until neither dimension exceeds c.MaxDim
func (c Config) Normalize(m *raster.Raster) *raster.Raster {
	w, h := m.Width(), m.Height()
	switch {
	case w > c.MaxDim:
		return c.Normalize(raster.Resize(m, c.MaxDim, scaleDim(c.MaxDim, h, w)))
	case h > c.MaxDim:
		// width is already within the cap
		return raster.Resize(m, scaleDim(c.MaxDim, w, h), c.MaxDim)
	}
	return m
}

// scaleDim computes floor(limit*num/den), never below one pixel
func scaleDim(limit, num, den int) int {
	v := limit * num / den
	if v < 1 {
		v = 1
	}
	return v
}
