package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales r to width x height with bilinear interpolation. r is
// returned unchanged when it already has the requested size.
func Resize(r *Raster, width, height int) *Raster {
	if r.width == width && r.height == height {
		return r
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if !r.Empty() && width > 0 && height > 0 {
		draw.BiLinear.Scale(dst, dst.Bounds(), r.RGBA(), r.Bounds(), draw.Src, nil)
	}
	return FromImage(dst)
}
