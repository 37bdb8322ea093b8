package mosaic

import (
	"errors"
	"fmt"
)

// ErrFragmentSize is returned when a fragment dimension is below one pixel
var ErrFragmentSize = errors.New("fragment width and height must be at least 1")

// ErrEmptyRaster is returned when a raster without pixels is scored
var ErrEmptyRaster = errors.New("cannot score rasters without pixels")

// DimensionMismatchError reports an attempt to score two rasters of
// different sizes
type DimensionMismatchError struct {
	AWidth, AHeight int
	BWidth, BHeight int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("rasters must be the same size: width %d %d, height %d %d",
		e.AWidth, e.BWidth, e.AHeight, e.BHeight)
}
