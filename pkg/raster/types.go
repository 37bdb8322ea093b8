package raster

import "image/color"

// channels is the number of bytes stored per pixel (R, G, B)
const channels = 3

// DefaultJPEGQuality is used when encoding results and no quality is configured
const DefaultJPEGQuality = 90

// RGB is a single opaque 24-bit pixel
type RGB struct {
	R, G, B uint8
}

// Black is the default background for rasters and canvases
var Black = RGB{}

// RGBA converts the pixel to an opaque color.RGBA
func (p RGB) RGBA() color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}
