package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *Raster {
	c := NewCanvas(w, h, Black)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.Draw(New(1, 1, RGB{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x + y)}), x, y)
		}
	}
	return c.Raster()
}

func TestNewFillsPixels(t *testing.T) {
	r := New(3, 2, RGB{R: 1, G: 2, B: 3})
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 2, r.Height())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, RGB{1, 2, 3}, r.RGB(x, y))
		}
	}
}

func TestSubRectSharesPixels(t *testing.T) {
	r := gradient(8, 6)
	sub := r.SubRect(2, 3, 4, 2)

	require.Equal(t, 4, sub.Width())
	require.Equal(t, 2, sub.Height())
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, r.RGB(x+2, y+3), sub.RGB(x, y))
		}
	}
	assert.Same(t, &r.pix[r.offset(2, 3)], &sub.pix[0])
}

func TestSubRectOutOfBoundsPanics(t *testing.T) {
	r := New(4, 4, Black)
	assert.Panics(t, func() { r.SubRect(2, 2, 3, 1) })
	assert.Panics(t, func() { r.SubRect(-1, 0, 1, 1) })
}

func TestFromImageFlattensAlphaOntoBlack(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})

	r := FromImage(img)
	assert.Equal(t, RGB{200, 100, 50}, r.RGB(0, 0))
	assert.Equal(t, Black, r.RGB(1, 0))
}

func TestFromImageGenericPath(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 6))
	img.SetGray(5, 5, color.Gray{Y: 40})
	img.SetGray(6, 5, color.Gray{Y: 240})

	r := FromImage(img)
	require.Equal(t, 2, r.Width())
	assert.Equal(t, RGB{40, 40, 40}, r.RGB(0, 0))
	assert.Equal(t, RGB{240, 240, 240}, r.RGB(1, 0))
}

func TestCanvasDrawClips(t *testing.T) {
	c := NewCanvas(4, 4, Black)
	c.Draw(New(3, 3, RGB{R: 9}), 2, 2)
	out := c.Raster()

	assert.Equal(t, RGB{R: 9}, out.RGB(2, 2))
	assert.Equal(t, RGB{R: 9}, out.RGB(3, 3))
	assert.Equal(t, Black, out.RGB(1, 1))
}

func TestRasterImplementsImage(t *testing.T) {
	r := gradient(5, 4)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, r))

	back, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
	assert.Equal(t, color.RGBA{}, r.At(-1, 0))
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeGIFAndPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	r, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, RGB{255, 255, 255}, r.RGB(2, 1))

	buf.Reset()
	require.NoError(t, gif.Encode(&buf, src, nil))
	r, err = Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, r.Height())
	assert.Equal(t, RGB{255, 255, 255}, r.RGB(0, 0))
}
