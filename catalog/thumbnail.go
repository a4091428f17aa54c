package catalog

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const thumbnailColors = 16

// EncodeThumbnail writes m to w as a paletted PNG of at most 16 colours
// with its top-left corner at the origin.
func EncodeThumbnail(w io.Writer, m image.Image) error {
	p, ok := m.ColorModel().(color.Palette)
	if !ok || len(p) == 0 || len(p) > thumbnailColors {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, thumbnailColors), m)
	}

	b := m.Bounds()
	thumb := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), p)
	draw.Draw(thumb, thumb.Rect, m, b.Min, draw.Src)

	return png.Encode(w, thumb)
}
