package raster

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Orientation is the EXIF orientation tag (0x0112). It names the transform
// that was applied to the scene when the pixels were encoded.
type Orientation int

const (
	OrientationUnspecified Orientation = 0
	OrientationNormal      Orientation = 1
	OrientationFlipH       Orientation = 2
	OrientationRotate180   Orientation = 3
	OrientationFlipV       Orientation = 4
	OrientationTranspose   Orientation = 5
	OrientationRotate270   Orientation = 6
	OrientationTransverse  Orientation = 7
	OrientationRotate90    Orientation = 8
)

// ReadOrientation returns the EXIF orientation stored in encoded image
// bytes. Data without EXIF or with an out of range tag reports
// OrientationUnspecified.
func ReadOrientation(data []byte) Orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return OrientationUnspecified
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return OrientationUnspecified
	}
	v, err := tag.Int(0)
	if err != nil || v < int(OrientationNormal) || v > int(OrientationRotate90) {
		return OrientationUnspecified
	}
	return Orientation(v)
}

// SwapsAxes reports whether applying o exchanges width and height
func (o Orientation) SwapsAxes() bool {
	switch o {
	case OrientationTranspose, OrientationRotate270, OrientationTransverse, OrientationRotate90:
		return true
	}
	return false
}

// Apply undoes the encoded transform so img is returned upright.
// imaging rotates counter-clockwise, so tag 6 (display rotated 90 degrees
// clockwise) maps to Rotate270.
func (o Orientation) Apply(img image.Image) image.Image {
	switch o {
	case OrientationFlipH:
		return imaging.FlipH(img)
	case OrientationRotate180:
		return imaging.Rotate180(img)
	case OrientationFlipV:
		return imaging.FlipV(img)
	case OrientationTranspose:
		return imaging.Transpose(img)
	case OrientationRotate270:
		return imaging.Rotate270(img)
	case OrientationTransverse:
		return imaging.Transverse(img)
	case OrientationRotate90:
		return imaging.Rotate90(img)
	}
	return img
}

// Orient returns r rotated and flipped into its upright orientation
func Orient(r *Raster, o Orientation) *Raster {
	img := o.Apply(r)
	if out, ok := img.(*Raster); ok {
		return out
	}
	return FromImage(img)
}
