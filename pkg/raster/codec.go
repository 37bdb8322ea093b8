package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
)

// ErrUnknownFormat is returned for data that is not PNG, JPEG or GIF
var ErrUnknownFormat = errors.New("unrecognized image format")

var (
	pngMagic  = []byte{0x89, 0x50, 0x4E, 0x47}
	jpegMagic = []byte{0xFF, 0xD8}
	gifMagic  = []byte("GIF8")
)

// Decode detects the image format, decodes it, rotates it upright according
// to its EXIF orientation and flattens it onto black.
func Decode(data []byte) (*Raster, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels: %dx%d", bounds.Dx(), bounds.Dy())
	}

	if bytes.HasPrefix(data, jpegMagic) {
		img = ReadOrientation(data).Apply(img)
	}
	return FromImage(img), nil
}

func decodeImage(data []byte) (image.Image, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return png.Decode(bytes.NewReader(data))
	case bytes.HasPrefix(data, jpegMagic):
		return jpeg.Decode(bytes.NewReader(data))
	case bytes.HasPrefix(data, gifMagic):
		return gif.Decode(bytes.NewReader(data))
	}
	return nil, ErrUnknownFormat
}

// EncodeJPEG writes r to w as a JPEG
func EncodeJPEG(w io.Writer, r *Raster, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return jpeg.Encode(w, r.RGBA(), &jpeg.Options{Quality: quality})
}
