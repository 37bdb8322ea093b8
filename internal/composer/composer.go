package composer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/kiesman99/mosaic/internal/mosaic"
	"github.com/kiesman99/mosaic/pkg/raster"
)

// Fragment size defaults for the two entry points
const (
	DefaultServerFragment = 3
	DefaultCLIFragment    = 5
)

// Options contains the settings shared by every composition
type Options struct {
	FragWidth   int
	FragHeight  int
	JPEGQuality int
	CacheSize   int
	Mosaic      mosaic.Config
}

// DefaultOptions returns the options used by the HTTP service
func DefaultOptions() Options {
	return Options{
		FragWidth:   DefaultServerFragment,
		FragHeight:  DefaultServerFragment,
		JPEGQuality: raster.DefaultJPEGQuality,
		CacheSize:   32,
		Mosaic:      mosaic.DefaultConfig(),
	}
}

// DecodeError is returned when stored or supplied bytes are not an image
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Result is an encoded composition
type Result struct {
	JPEG   []byte
	Width  int
	Height int
	Stats  mosaic.Stats
}

// Render composes already decoded rasters and encodes the result as JPEG
func Render(source, model *raster.Raster, fragW, fragH int, cfg mosaic.Config, quality int) (*Result, error) {
	out, stats, err := cfg.ComposeStats(source, model, fragW, fragH)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := raster.EncodeJPEG(&buf, out, quality); err != nil {
		return nil, fmt.Errorf("failed to encode output image: %w", err)
	}

	return &Result{
		JPEG:   buf.Bytes(),
		Width:  out.Width(),
		Height: out.Height(),
		Stats:  stats,
	}, nil
}

// ComposeBytes decodes source and model, applies their EXIF orientation,
// composes them and returns the JPEG encoded result
func ComposeBytes(sourceData, modelData []byte, opts Options) (*Result, error) {
	source, err := raster.Decode(sourceData)
	if err != nil {
		return nil, &DecodeError{Name: "source", Err: err}
	}
	model, err := raster.Decode(modelData)
	if err != nil {
		return nil, &DecodeError{Name: "model", Err: err}
	}
	return Render(source, model, opts.FragWidth, opts.FragHeight, opts.Mosaic, opts.JPEGQuality)
}

// IsDecodeError reports whether err was caused by undecodable input
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
