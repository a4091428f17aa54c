/*
Package tilemap loads orthogonal maps produced by the Tiled map editor (TMX)
into a fully occupied grid of cells suitable for rendering.

All layers of a map are merged into a single grid where a non-zero tile in a
later layer replaces whatever an earlier layer placed at the same position.
Every position must end up holding a tile. The grid is then rotated so that
cells are addressed by column first, with row 0 being the bottom row of the
map, which is the convention used by renderers with a bottom-left origin.

Tile images are sliced out of a single atlas image per tileset and share its
pixels.
*/
package tilemap

import (
	"image"
	"sort"
)

// Properties holds the name/value pairs attached to a map, tile or cell.
type Properties map[string]string

// Tile is a single tile image identified by its global id.
type Tile struct {
	ID         int
	Image      image.Image
	Properties Properties
}

// Cell is one position of the map grid.
type Cell struct {
	Col, Row      int
	Width, Height int
	Tile          *Tile
	Properties    Properties
}

// Tiles is the global id to tile table built from every tileset of a map.
type Tiles struct {
	m map[int]*Tile
}

// Get returns the tile with the given global id.
func (t *Tiles) Get(gid int) (*Tile, bool) {
	tile, ok := t.m[gid]
	return tile, ok
}

func (t *Tiles) Len() int {
	return len(t.m)
}

// GIDs returns every global id in the table in ascending order.
func (t *Tiles) GIDs() []int {
	gids := make([]int, 0, len(t.m))
	for gid := range t.m {
		gids = append(gids, gid)
	}
	sort.Ints(gids)
	return gids
}

// Map is an assembled tile map. Cells are stored column-major with row 0 at
// the bottom of the map.
type Map struct {
	TileWidth  int
	TileHeight int
	Properties Properties

	cells [][]*Cell
	tiles *Tiles
}

func (m *Map) Columns() int {
	return len(m.cells)
}

func (m *Map) Rows() int {
	if len(m.cells) == 0 {
		return 0
	}
	return len(m.cells[0])
}

// Cell returns the cell at the given column and row.
func (m *Map) Cell(col, row int) (*Cell, bool) {
	if col < 0 || col >= len(m.cells) || row < 0 || row >= len(m.cells[col]) {
		return nil, false
	}
	return m.cells[col][row], true
}

// Tiles returns every tile resolved from the map's tilesets, ordered by
// global id, including tiles that no cell uses.
func (m *Map) Tiles() []*Tile {
	gids := m.tiles.GIDs()
	tiles := make([]*Tile, 0, len(gids))
	for _, gid := range gids {
		tile, _ := m.tiles.Get(gid)
		tiles = append(tiles, tile)
	}
	return tiles
}
