package tilemap

import (
	"io"
	"log"
	"path/filepath"
)

const orthogonal = "orthogonal"

type options struct {
	logger *log.Logger
}

// Option configures LoadMap and Decode.
type Option func(*options)

// WithLogger sets the logger that receives progress messages. By default
// nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadMap reads the TMX file and builds the map it describes. Tilesets and
// atlas images are located relative to the directory containing file, not
// the working directory.
func LoadMap(file string, opts ...Option) (*Map, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	root, err := ParseFile(abs)
	if err != nil {
		return nil, err
	}

	return assemble(root, filepath.Dir(abs), newOptions(opts))
}

// Decode reads a TMX document from r and builds the map it describes, dir
// being the directory relative to which tilesets and images are located.
func Decode(r io.Reader, dir string, opts ...Option) (*Map, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}

	return assemble(root, dir, newOptions(opts))
}

func assemble(root *Node, dir string, o *options) (*Map, error) {
	if root.Name() != "map" {
		return nil, formatErrorf("root element is <%s>, expected <map>", root.Name())
	}

	if orientation := root.Attr("orientation", ""); orientation != orthogonal {
		return nil, formatErrorf("only orthogonal maps are supported, got %q", orientation)
	}

	tileWidth, err := root.RequireIntAttr("tilewidth")
	if err != nil {
		return nil, err
	}
	tileHeight, err := root.RequireIntAttr("tileheight")
	if err != nil {
		return nil, err
	}

	tiles, err := ResolveTilesets(root, dir, o.logger)
	if err != nil {
		return nil, err
	}

	grid, err := BuildGrid(root)
	if err != nil {
		return nil, err
	}

	cells := make([][]*Cell, len(grid))
	for i, column := range grid {
		cells[i] = make([]*Cell, len(column))
		for j, gid := range column {
			tile, ok := tiles.Get(gid)
			if !ok {
				return nil, formatErrorf("cell (%d, %d) references unknown gid %d", i, j, gid)
			}
			cells[i][j] = &Cell{
				Col:        i,
				Row:        j,
				Width:      tileWidth,
				Height:     tileHeight,
				Tile:       tile,
				Properties: make(Properties),
			}
		}
	}

	o.logger.Printf("Assembled %dx%d map from %d tiles\n", len(cells), len(grid[0]), tiles.Len())

	return &Map{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Properties: LoadProperties(root),
		cells:      cells,
		tiles:      tiles,
	}, nil
}
