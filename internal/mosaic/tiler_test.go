package mosaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiesman99/mosaic/pkg/raster"
)

func TestPartitionGridShape(t *testing.T) {
	src := pattern(11, 7, 2)
	g := Partition(src, 3, 2)

	// 11/3 columns, 7/2 rows; border pixels ignored
	require.Equal(t, 3, g.Columns())
	assert.Equal(t, 9, g.Size())
	for k := 0; k < g.Columns(); k++ {
		require.Equal(t, 3, g.Len(k))
		for l := 0; l < g.Len(k); l++ {
			tile := g.At(k, l)
			assert.Equal(t, k, tile.Col)
			assert.Equal(t, l, tile.Row)
			assert.True(t, tile.Pixels.Equal(src.SubRect(k*3, l*2, 3, 2)))
		}
	}
}

func TestPartitionTooSmall(t *testing.T) {
	assert.True(t, Partition(pattern(4, 4, 0), 5, 1).Empty())
	assert.True(t, Partition(pattern(4, 4, 0), 1, 5).Empty())
	assert.Zero(t, Partition(pattern(4, 4, 0), 5, 5).Columns())
}

func TestTileGridRemoveDropsEmptyColumns(t *testing.T) {
	g := Partition(pattern(4, 4, 0), 2, 2)
	require.Equal(t, 2, g.Columns())

	removed := g.Remove(0, 1)
	assert.Equal(t, 0, removed.Col)
	assert.Equal(t, 1, removed.Row)
	assert.Equal(t, 1, g.Len(0))
	assert.Equal(t, 0, g.At(0, 0).Row)

	g.Remove(0, 0)
	require.Equal(t, 1, g.Columns())
	// former column 1 shifted to index 0
	assert.Equal(t, 1, g.At(0, 0).Col)
	assert.Equal(t, 2, g.Size())

	g.Remove(0, 0)
	g.Remove(0, 0)
	assert.True(t, g.Empty())
	assert.Zero(t, g.Columns())
}

func TestTileSharesSourcePixels(t *testing.T) {
	src := raster.New(4, 2, raster.RGB{G: 7})
	g := Partition(src, 2, 2)
	assert.Equal(t, src.RGB(2, 1), g.At(1, 0).Pixels.RGB(0, 1))
}
