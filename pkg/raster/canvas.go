package raster

// Canvas is the only mutable raster form. It is used to assemble output
// rasters and is frozen by calling Raster.
type Canvas struct {
	r *Raster
}

// NewCanvas creates a canvas filled with the background color
func NewCanvas(width, height int, background RGB) *Canvas {
	return &Canvas{r: New(width, height, background)}
}

// Draw copies src onto the canvas with its top-left corner at (xoff, yoff).
// Pixels falling outside the canvas are skipped.
func (c *Canvas) Draw(src *Raster, xoff, yoff int) {
	dst := c.r
	for y := 0; y < src.height; y++ {
		yd := y + yoff
		if yd < 0 || yd >= dst.height {
			continue
		}
		for x := 0; x < src.width; x++ {
			xd := x + xoff
			if xd < 0 || xd >= dst.width {
				continue
			}

			s := src.offset(x, y)
			d := dst.offset(xd, yd)
			copy(dst.pix[d:d+channels], src.pix[s:s+channels])
		}
	}
}

// Raster freezes the canvas and returns its content. The canvas must not be
// drawn on afterwards.
func (c *Canvas) Raster() *Raster {
	r := c.r
	c.r = nil
	return r
}
