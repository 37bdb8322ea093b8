package mosaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiesman99/mosaic/pkg/raster"
)

// blocks paints every fragW x fragH cell of a w x h raster with color(c, r)
func blocks(w, h, fragW, fragH int, color func(c, r int) raster.RGB) *raster.Raster {
	canvas := raster.NewCanvas(w, h, raster.Black)
	for c := 0; c*fragW < w; c++ {
		for r := 0; r*fragH < h; r++ {
			canvas.Draw(raster.New(fragW, fragH, color(c, r)), c*fragW, r*fragH)
		}
	}
	return canvas.Raster()
}

func TestComposeResultHasNormalizedModelSize(t *testing.T) {
	model := pattern(1000, 300, 1)
	source := pattern(50, 80, 2)

	out, err := Compose(source, model, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, 720, out.Width())
	assert.Equal(t, 216, out.Height())
}

func TestComposeIdenticalUniformTilesStaysBlack(t *testing.T) {
	tile := pattern(8, 8, 3)
	canvas := raster.NewCanvas(128, 128, raster.Black)
	for x := 0; x < 128; x += 8 {
		for y := 0; y < 128; y += 8 {
			canvas.Draw(tile, x, y)
		}
	}
	img := canvas.Raster()

	out, stats, err := DefaultConfig().ComposeStats(img, img, 8, 8)
	require.NoError(t, err)

	// every candidate scores 0 and a perfect match is never accepted
	assert.Equal(t, 225, stats.Positions)
	assert.Zero(t, stats.Filled)
	assert.Equal(t, 225, stats.Unmatched)
	assert.Equal(t, 256, stats.Unused)
	assert.True(t, out.Equal(raster.New(128, 128, raster.Black)))
}

func TestComposeFlatColors(t *testing.T) {
	red := raster.RGB{R: 255}
	source := raster.New(64, 64, red)
	model := raster.New(64, 64, raster.RGB{G: 255})

	out, stats, err := DefaultConfig().ComposeStats(source, model, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 225, stats.Filled)

	for c := 0; c < 16; c++ {
		for r := 0; r < 16; r++ {
			want := red
			if c == 0 || r == 0 {
				want = raster.Black
			}
			assert.Equal(t, want, out.RGB(c*4, r*4), "tile %d,%d", c, r)
			assert.Equal(t, want, out.RGB(c*4+3, r*4+3), "tile %d,%d", c, r)
		}
	}
}

func thresholdFixture() (source, model *raster.Raster) {
	model = raster.New(4, 4, raster.RGB{R: 10, G: 10, B: 10})
	source = blocks(4, 4, 2, 2, func(c, r int) raster.RGB {
		switch {
		case c == 0 && r == 0:
			return raster.RGB{R: 206, G: 10, B: 10} // scores 49
		case c == 0 && r == 1:
			return raster.RGB{R: 18, G: 10, B: 10} // scores 2
		}
		return raster.RGB{R: 110, G: 10, B: 10} // scores 25
	})
	return source, model
}

func TestComposeStopsBelowThreshold(t *testing.T) {
	source, model := thresholdFixture()

	out, stats, err := DefaultConfig().ComposeStats(source, model, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Positions)
	assert.Equal(t, 1, stats.Candidates)
	assert.Equal(t, raster.RGB{R: 206, G: 10, B: 10}, out.RGB(2, 2))
}

func TestComposeWithoutThresholdScansEverything(t *testing.T) {
	source, model := thresholdFixture()

	cfg := DefaultConfig()
	cfg.SimilarityThreshold = 0
	out, stats, err := cfg.ComposeStats(source, model, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Candidates)
	assert.Equal(t, raster.RGB{R: 18, G: 10, B: 10}, out.RGB(2, 2))
}

func TestComposeConsumesEachTileOnce(t *testing.T) {
	const size, frag = 20, 2
	source := blocks(size, size, frag, frag, func(c, r int) raster.RGB {
		return raster.RGB{R: uint8(c * 20), G: uint8(r * 20), B: 200}
	})
	model := blocks(size, size, frag, frag, func(c, r int) raster.RGB {
		return raster.RGB{R: uint8(255 - c*10), G: uint8(r * 25), B: 50}
	})

	out, stats, err := DefaultConfig().ComposeStats(source, model, frag, frag)
	require.NoError(t, err)
	assert.Equal(t, 81, stats.Positions)
	assert.Equal(t, 81, stats.Filled)
	assert.Zero(t, stats.Unmatched)
	assert.Equal(t, 100-81, stats.Unused)

	seen := map[raster.RGB]bool{}
	for c := 1; c < size/frag; c++ {
		for r := 1; r < size/frag; r++ {
			p := out.RGB(c*frag, r*frag)
			require.Equal(t, uint8(200), p.B, "tile %d,%d not drawn from source", c, r)
			require.False(t, seen[p], "donor %v used twice", p)
			seen[p] = true
		}
	}
}

func TestComposeFragmentWiderThanModel(t *testing.T) {
	out, stats, err := DefaultConfig().ComposeStats(pattern(30, 30, 1), pattern(30, 20, 2), 31, 2)
	require.NoError(t, err)
	assert.Zero(t, stats.Columns)
	assert.Zero(t, stats.Positions)
	assert.True(t, out.Equal(raster.New(30, 20, raster.Black)))
}

func TestComposeRejectsInvalidFragments(t *testing.T) {
	_, err := Compose(pattern(4, 4, 0), pattern(4, 4, 1), 0, 3)
	assert.ErrorIs(t, err, ErrFragmentSize)
	_, err = Compose(pattern(4, 4, 0), pattern(4, 4, 1), 3, -1)
	assert.ErrorIs(t, err, ErrFragmentSize)
}

func TestComposeSmallSourceIsUpscaled(t *testing.T) {
	out, stats, err := DefaultConfig().ComposeStats(pattern(10, 10, 4), pattern(40, 40, 5), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 40, out.Width())
	assert.Equal(t, 40, out.Height())
	assert.Equal(t, 81, stats.Positions)
	assert.Equal(t, stats.Positions, stats.Filled+stats.Unmatched)
}

func TestComposeIsDeterministic(t *testing.T) {
	source, model := pattern(60, 45, 7), pattern(60, 45, 8)
	a, err := Compose(source, model, 3, 3)
	require.NoError(t, err)
	b, err := Compose(source, model, 3, 3)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestComposeBackgroundOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Background = raster.RGB{R: 255, G: 255, B: 255}

	out, err := cfg.Compose(raster.New(8, 8, raster.RGB{R: 255}), raster.New(8, 8, raster.RGB{G: 255}), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, cfg.Background, out.RGB(0, 0))
	assert.Equal(t, raster.RGB{R: 255}, out.RGB(4, 4))
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"within cap", 300, 200, 300, 200},
		{"exact cap", 720, 720, 720, 720},
		{"wide", 2000, 100, 720, 36},
		{"tall", 100, 2000, 36, 720},
		{"wide then tall", 1440, 2880, 360, 720},
		{"degenerate", 3000, 1, 720, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := raster.New(tc.width, tc.height, raster.RGB{B: 80})
			n := Normalize(m)
			assert.Equal(t, tc.wantW, n.Width())
			assert.Equal(t, tc.wantH, n.Height())
			assert.Same(t, n, Normalize(n))
		})
	}
}

func TestNormalizeUnchangedWithinCap(t *testing.T) {
	m := pattern(720, 10, 0)
	assert.Same(t, m, Normalize(m))
}
