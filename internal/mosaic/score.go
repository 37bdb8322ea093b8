package mosaic

import "github.com/kiesman99/mosaic/pkg/raster"

// sampleStride is the distance between sampled pixels in both directions
const sampleStride = 2

// Score returns the dissimilarity of two equally sized rasters, lower is
// more similar. It panics with a *DimensionMismatchError when the sizes
// differ.
func Score(a, b *raster.Raster) int {
	s, err := CheckedScore(a, b)
	if err != nil {
		panic(err)
	}
	return s
}

// CheckedScore is Score with the failure returned instead of raised.
//
// Pixels are sampled every second column and row walking from the
// bottom-right corner towards (0,0). The summed absolute channel deltas are
// divided by the full pixel count, not by the number of samples.
func CheckedScore(a, b *raster.Raster) (int, error) {
	w, h := a.Width(), a.Height()
	if w != b.Width() || h != b.Height() {
		return 0, &DimensionMismatchError{
			AWidth: w, AHeight: h,
			BWidth: b.Width(), BHeight: b.Height(),
		}
	}
	if w == 0 || h == 0 {
		return 0, ErrEmptyRaster
	}

	sum := 0
	for i := w - 1; i >= 0; i -= sampleStride {
		for j := h - 1; j >= 0; j -= sampleStride {
			p, q := a.RGB(i, j), b.RGB(i, j)
			sum += absDiff(p.R, q.R)
			sum += absDiff(p.G, q.G)
			sum += absDiff(p.B, q.B)
		}
	}
	return sum / (w * h), nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
