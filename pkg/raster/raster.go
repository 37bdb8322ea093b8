package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is an immutable grid of RGB pixels with (0,0) at the top-left.
// Rasters returned by SubRect share pixel storage with their parent.
type Raster struct {
	pix    []uint8
	stride int
	width  int
	height int
}

// New creates a raster of the given size filled with a single color
func New(width, height int, fill RGB) *Raster {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative size %dx%d", width, height))
	}
	r := &Raster{
		pix:    make([]uint8, width*height*channels),
		stride: width * channels,
		width:  width,
		height: height,
	}
	if fill != Black {
		for i := 0; i < len(r.pix); i += channels {
			r.pix[i] = fill.R
			r.pix[i+1] = fill.G
			r.pix[i+2] = fill.B
		}
	}
	return r
}

// FromImage copies img into a new raster. Alpha is composited onto an
// opaque black background.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	r := New(bounds.Dx(), bounds.Dy(), Black)

	switch src := img.(type) {
	case *image.RGBA:
		// premultiplied channels over black are the composited values
		for y := 0; y < r.height; y++ {
			row := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < r.width; x++ {
				s := row + x*4
				d := r.offset(x, y)
				r.pix[d] = src.Pix[s]
				r.pix[d+1] = src.Pix[s+1]
				r.pix[d+2] = src.Pix[s+2]
			}
		}
	case *image.NRGBA:
		for y := 0; y < r.height; y++ {
			row := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < r.width; x++ {
				s := row + x*4
				d := r.offset(x, y)
				a := uint32(src.Pix[s+3])
				r.pix[d] = uint8(uint32(src.Pix[s]) * a / 0xff)
				r.pix[d+1] = uint8(uint32(src.Pix[s+1]) * a / 0xff)
				r.pix[d+2] = uint8(uint32(src.Pix[s+2]) * a / 0xff)
			}
		}
	default:
		for y := 0; y < r.height; y++ {
			for x := 0; x < r.width; x++ {
				cr, cg, cb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				d := r.offset(x, y)
				r.pix[d] = uint8(cr >> 8)
				r.pix[d+1] = uint8(cg >> 8)
				r.pix[d+2] = uint8(cb >> 8)
			}
		}
	}

	return r
}

// Width returns the number of columns
func (r *Raster) Width() int { return r.width }

// Height returns the number of rows
func (r *Raster) Height() int { return r.height }

// Empty reports whether the raster has no pixels
func (r *Raster) Empty() bool { return r.width == 0 || r.height == 0 }

func (r *Raster) offset(x, y int) int {
	return y*r.stride + x*channels
}

// RGB returns the pixel at column x, row y
func (r *Raster) RGB(x, y int) RGB {
	i := r.offset(x, y)
	return RGB{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2]}
}

// SubRect returns the w x h sub-raster whose top-left corner is (x, y).
// The result shares pixel storage with r.
func (r *Raster) SubRect(x, y, w, h int) *Raster {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > r.width || y+h > r.height {
		panic(fmt.Sprintf("raster: sub-rectangle %dx%d+%d+%d outside %dx%d", w, h, x, y, r.width, r.height))
	}
	if w == 0 || h == 0 {
		return &Raster{stride: r.stride, width: w, height: h}
	}
	start := r.offset(x, y)
	end := r.offset(x+w-1, y+h-1) + channels
	return &Raster{
		pix:    r.pix[start:end:end],
		stride: r.stride,
		width:  w,
		height: h,
	}
}

// Equal reports whether both rasters have the same size and pixels
func (r *Raster) Equal(o *Raster) bool {
	if r.width != o.width || r.height != o.height {
		return false
	}
	for y := 0; y < r.height; y++ {
		a := r.pix[r.offset(0, y) : r.offset(0, y)+r.width*channels]
		b := o.pix[o.offset(0, y) : o.offset(0, y)+o.width*channels]
		if string(a) != string(b) {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// At implements image.Image
func (r *Raster) At(x, y int) color.Color {
	if !image.Pt(x, y).In(r.Bounds()) {
		return color.RGBA{}
	}
	return r.RGB(x, y).RGBA()
}

// RGBA converts the raster to an opaque *image.RGBA
func (r *Raster) RGBA() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			s := r.offset(x, y)
			d := img.PixOffset(x, y)
			img.Pix[d] = r.pix[s]
			img.Pix[d+1] = r.pix[s+1]
			img.Pix[d+2] = r.pix[s+2]
			img.Pix[d+3] = 0xff
		}
	}
	return img
}
