package tilemap

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/bodgit/tilemap/atlas"
)

// tilesBuilder collects tiles from several tilesets and refuses to hand out
// the same global id twice.
type tilesBuilder struct {
	tiles map[int]*Tile
	owner map[int]string
}

func newTilesBuilder() *tilesBuilder {
	return &tilesBuilder{
		tiles: make(map[int]*Tile),
		owner: make(map[int]string),
	}
}

func (b *tilesBuilder) add(tileset string, tiles map[int]*Tile) error {
	for gid, tile := range tiles {
		if other, ok := b.owner[gid]; ok {
			return formatErrorf("tileset %q reuses gid %d of tileset %q", tileset, gid, other)
		}
		b.tiles[gid] = tile
		b.owner[gid] = tileset
	}
	return nil
}

func (b *tilesBuilder) build() *Tiles {
	t := &Tiles{m: b.tiles}
	b.tiles, b.owner = nil, nil
	return t
}

func resolvePath(dir, file string) string {
	file = filepath.FromSlash(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// ResolveTilesets loads every tileset referenced by the map element root and
// returns a single table of tiles keyed by global id. External tilesets are
// read relative to dir, the directory of the map file.
func ResolveTilesets(root *Node, dir string, logger *log.Logger) (*Tiles, error) {
	b := newTilesBuilder()

	for _, ref := range root.Children("tileset") {
		// The firstgid of an external tileset file has no meaning on its
		// own, only the one at the reference site does
		firstGID, err := ref.RequireIntAttr("firstgid")
		if err != nil {
			return nil, err
		}
		if firstGID <= 0 {
			return nil, formatErrorf("tileset firstgid must be positive, got %d", firstGID)
		}

		node, base := ref, dir
		if source := ref.Attr("source", ""); source != "" {
			file := resolvePath(dir, source)
			if node, err = ParseFile(file); err != nil {
				return nil, err
			}
			base = filepath.Dir(file)
		}

		name := node.Attr("name", "")
		tiles, err := loadTiles(node, firstGID, base)
		if err != nil {
			return nil, err
		}

		if err := b.add(name, tiles); err != nil {
			return nil, err
		}

		logger.Printf("Loaded tileset \"%s\" with %d tiles from gid %d\n", name, len(tiles), firstGID)
	}

	return b.build(), nil
}

func loadTiles(node *Node, firstGID int, dir string) (map[int]*Tile, error) {
	var (
		g   atlas.Geometry
		err error
	)
	if g.TileWidth, err = node.RequireIntAttr("tilewidth"); err != nil {
		return nil, err
	}
	if g.TileHeight, err = node.RequireIntAttr("tileheight"); err != nil {
		return nil, err
	}
	if g.Spacing, err = node.IntAttr("spacing", 0); err != nil {
		return nil, err
	}
	if g.Margin, err = node.IntAttr("margin", 0); err != nil {
		return nil, err
	}

	name := node.Attr("name", "")

	img := node.First("image")
	if img == nil || img.Attr("source", "") == "" {
		return nil, formatErrorf("tileset %q has no image", name)
	}

	m, err := atlas.Load(resolvePath(dir, img.Attr("source", "")))
	if err != nil {
		return nil, fmt.Errorf("tileset %q: %w", name, err)
	}

	regions, err := atlas.Slice(m, g, firstGID)
	if err != nil {
		if errors.Is(err, atlas.ErrGeometry) {
			return nil, &FormatError{Msg: fmt.Sprintf("tileset %q", name), Err: err}
		}
		return nil, err
	}

	properties, err := loadTileProperties(node, firstGID)
	if err != nil {
		return nil, err
	}

	tiles := make(map[int]*Tile, len(regions))
	for gid, region := range regions {
		p, ok := properties[gid]
		if !ok {
			p = make(Properties)
		}
		tiles[gid] = &Tile{
			ID:         gid,
			Image:      region,
			Properties: p,
		}
	}

	return tiles, nil
}

// loadTileProperties returns the properties of each <tile> of a tileset
// keyed by global id. The id attribute of a tile is local to its tileset.
func loadTileProperties(node *Node, firstGID int) (map[int]Properties, error) {
	properties := make(map[int]Properties)

	for _, tile := range node.Children("tile") {
		id, err := tile.RequireIntAttr("id")
		if err != nil {
			return nil, err
		}
		properties[id+firstGID] = LoadProperties(tile)
	}

	return properties, nil
}
