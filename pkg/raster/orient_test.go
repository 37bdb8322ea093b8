package raster

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withOrientation splices a minimal big-endian EXIF APP1 segment carrying
// the orientation tag directly after the JPEG SOI marker.
func withOrientation(t *testing.T, jpg []byte, o Orientation) []byte {
	t.Helper()
	require.True(t, bytes.HasPrefix(jpg, jpegMagic))

	var tiff bytes.Buffer
	tiff.WriteString("MM")
	binary.Write(&tiff, binary.BigEndian, uint16(0x002A))
	binary.Write(&tiff, binary.BigEndian, uint32(8))
	binary.Write(&tiff, binary.BigEndian, uint16(1))      // entries
	binary.Write(&tiff, binary.BigEndian, uint16(0x0112)) // orientation
	binary.Write(&tiff, binary.BigEndian, uint16(3))      // SHORT
	binary.Write(&tiff, binary.BigEndian, uint32(1))
	binary.Write(&tiff, binary.BigEndian, uint16(o))
	binary.Write(&tiff, binary.BigEndian, uint16(0))
	binary.Write(&tiff, binary.BigEndian, uint32(0)) // next IFD

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(jpg[:2])
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(jpg[2:])
	return out.Bytes()
}

// leftRight is a wide test image: left half red, right half blue
func leftRight(w, h int) *Raster {
	c := NewCanvas(w, h, Black)
	c.Draw(New(w/2, h, RGB{R: 255}), 0, 0)
	c.Draw(New(w-w/2, h, RGB{B: 255}), w/2, 0)
	return c.Raster()
}

func encodeJPEG(t *testing.T, r *Raster) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, r.RGBA(), &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

func TestApplyOrientationSizes(t *testing.T) {
	r := leftRight(6, 2)
	for o := OrientationNormal; o <= OrientationRotate90; o++ {
		out := Orient(r, o)
		if o.SwapsAxes() {
			assert.Equal(t, image.Pt(2, 6), out.Bounds().Size(), "orientation %d", o)
		} else {
			assert.Equal(t, image.Pt(6, 2), out.Bounds().Size(), "orientation %d", o)
		}
	}
}

func TestApplyOrientationPixels(t *testing.T) {
	r := leftRight(2, 1)

	// tag 6: rotate clockwise for display, red ends up on top
	cw := Orient(r, OrientationRotate270)
	require.Equal(t, 1, cw.Width())
	require.Equal(t, 2, cw.Height())
	assert.Equal(t, RGB{R: 255}, cw.RGB(0, 0))
	assert.Equal(t, RGB{B: 255}, cw.RGB(0, 1))

	// tag 8: rotate counter-clockwise, blue ends up on top
	ccw := Orient(r, OrientationRotate90)
	assert.Equal(t, RGB{B: 255}, ccw.RGB(0, 0))
	assert.Equal(t, RGB{R: 255}, ccw.RGB(0, 1))

	flipped := Orient(r, OrientationFlipH)
	assert.Equal(t, RGB{B: 255}, flipped.RGB(0, 0))

	assert.Same(t, r, Orient(r, OrientationNormal))
	assert.Same(t, r, Orient(r, OrientationUnspecified))
}

func TestReadOrientation(t *testing.T) {
	plain := encodeJPEG(t, leftRight(16, 8))
	assert.Equal(t, OrientationUnspecified, ReadOrientation(plain))

	for _, o := range []Orientation{OrientationNormal, OrientationRotate180, OrientationRotate270, OrientationRotate90} {
		assert.Equal(t, o, ReadOrientation(withOrientation(t, plain, o)))
	}
}

func TestDecodeAppliesOrientation(t *testing.T) {
	jpg := withOrientation(t, encodeJPEG(t, leftRight(16, 8)), OrientationRotate270)

	r, err := Decode(jpg)
	require.NoError(t, err)
	require.Equal(t, 8, r.Width())
	require.Equal(t, 16, r.Height())

	top, bottom := r.RGB(4, 2), r.RGB(4, 13)
	assert.Greater(t, int(top.R), 200)
	assert.Less(t, int(top.B), 60)
	assert.Greater(t, int(bottom.B), 200)
	assert.Less(t, int(bottom.R), 60)
}
