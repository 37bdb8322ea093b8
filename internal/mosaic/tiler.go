package mosaic

import "github.com/kiesman99/mosaic/pkg/raster"

// Tile is a fragment cut from the source. Col and Row are its position in
// the original grid and identify it; Pixels shares storage with the source.
type Tile struct {
	Col, Row int
	Pixels   *raster.Raster
}

// TileGrid holds the donor tiles that have not been used yet, column by
// column. Removing the last tile of a column removes the column, shifting
// the following columns down by one index.
type TileGrid struct {
	columns [][]Tile
	size    int
}

// Partition cuts r into fragW x fragH tiles. Right and bottom border pixels
// that do not fill a whole tile are ignored.
func Partition(r *raster.Raster, fragW, fragH int) *TileGrid {
	cols, rows := r.Width()/fragW, r.Height()/fragH
	g := &TileGrid{}
	if cols == 0 || rows == 0 {
		return g
	}

	g.columns = make([][]Tile, cols)
	for c := 0; c < cols; c++ {
		column := make([]Tile, rows)
		for row := 0; row < rows; row++ {
			column[row] = Tile{
				Col:    c,
				Row:    row,
				Pixels: r.SubRect(c*fragW, row*fragH, fragW, fragH),
			}
		}
		g.columns[c] = column
	}
	g.size = cols * rows
	return g
}

// Columns returns the number of non-empty columns left
func (g *TileGrid) Columns() int { return len(g.columns) }

// Len returns the number of tiles left in column k
func (g *TileGrid) Len(k int) int { return len(g.columns[k]) }

// At returns the l-th remaining tile of column k
func (g *TileGrid) At(k, l int) Tile { return g.columns[k][l] }

// Size returns the total number of tiles left
func (g *TileGrid) Size() int { return g.size }

// Empty reports whether every tile has been consumed
func (g *TileGrid) Empty() bool { return g.size == 0 }

// Remove drops the l-th tile of column k and returns it
func (g *TileGrid) Remove(k, l int) Tile {
	column := g.columns[k]
	t := column[l]

	column = append(column[:l], column[l+1:]...)
	if len(column) == 0 {
		g.columns = append(g.columns[:k], g.columns[k+1:]...)
	} else {
		g.columns[k] = column
	}
	g.size--
	return t
}
