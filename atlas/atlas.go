/*
Package atlas implements slicing of a tileset atlas image into individual
tile images.

Tiles are packed in a regular grid, optionally separated by a fixed number of
pixels of spacing. They are numbered sequentially starting from the top row,
left to right, which is the numbering used by the Tiled map editor.

Margins are accepted but always treated as zero as Tiled did not write them
reliably.
*/
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF atlases
	_ "image/jpeg" // register JPEG atlases
	_ "image/png"  // register PNG atlases
	"os"

	_ "golang.org/x/image/bmp"  // register BMP atlases
	_ "golang.org/x/image/tiff" // register TIFF atlases
	_ "golang.org/x/image/webp" // register WebP atlases
)

// ErrGeometry is returned when no tile can be cut from an atlas using the
// given geometry.
var ErrGeometry = errors.New("atlas: invalid tile geometry")

// ErrDecode wraps any failure to decode an atlas image, whether the format is
// unknown or the data is truncated or corrupt.
var ErrDecode = errors.New("atlas: cannot decode image")

// Geometry describes how tiles are packed in an atlas.
type Geometry struct {
	TileWidth  int
	TileHeight int
	Spacing    int
	Margin     int // ignored
}

type subImager interface {
	SubImage(image.Rectangle) image.Image
}

// Load decodes the atlas image stored in file.
func Load(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, file, err)
	}

	return m, nil
}

func (g Geometry) validate(b image.Rectangle) error {
	switch {
	case g.TileWidth <= 0 || g.TileHeight <= 0:
		return fmt.Errorf("%w: tile size %dx%d", ErrGeometry, g.TileWidth, g.TileHeight)
	case g.Spacing < 0:
		return fmt.Errorf("%w: negative spacing %d", ErrGeometry, g.Spacing)
	case g.TileWidth > b.Dx() || g.TileHeight > b.Dy():
		return fmt.Errorf("%w: %dx%d tiles do not fit a %dx%d image", ErrGeometry, g.TileWidth, g.TileHeight, b.Dx(), b.Dy())
	}
	return nil
}

// Count returns the number of tiles Slice cuts from an image with bounds b.
func Count(b image.Rectangle, g Geometry) int {
	if g.validate(b) != nil {
		return 0
	}
	rows := (b.Dy()-g.TileHeight)/(g.TileHeight+g.Spacing) + 1
	cols := (b.Dx()-g.TileWidth)/(g.TileWidth+g.Spacing) + 1
	return rows * cols
}

// Slice cuts m into tiles and returns them keyed by global id, the first tile
// being assigned firstGID. Tile images share pixels with m.
func Slice(m image.Image, g Geometry, firstGID int) (map[int]image.Image, error) {
	b := m.Bounds()
	if err := g.validate(b); err != nil {
		return nil, err
	}

	si, ok := m.(subImager)
	if !ok {
		rgba := image.NewRGBA(b)
		draw.Draw(rgba, b, m, b.Min, draw.Src)
		si = rgba
	}

	tiles := make(map[int]image.Image, Count(b, g))
	gid := firstGID

	// y is the offset of a row's bottom edge from the bottom of the image,
	// starting with the top row
	for y := b.Dy() - g.TileHeight; y >= 0; y -= g.TileHeight + g.Spacing {
		top := b.Max.Y - y - g.TileHeight
		for x := 0; x+g.TileWidth <= b.Dx(); x += g.TileWidth + g.Spacing {
			left := b.Min.X + x
			tiles[gid] = si.SubImage(image.Rect(left, top, left+g.TileWidth, top+g.TileHeight))
			gid++
		}
	}

	return tiles, nil
}
