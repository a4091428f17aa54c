package catalog

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(r image.Rectangle) *image.NRGBA {
	m := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: uint8(x * y), A: 0xff})
		}
	}
	return m
}

func TestEncodeThumbnail(t *testing.T) {
	tables := []struct {
		name string
		m    image.Image
	}{
		{"truecolor", gradient(image.Rect(0, 0, 16, 16))},
		{"sub image", gradient(image.Rect(0, 0, 32, 32)).SubImage(image.Rect(16, 8, 32, 24))},
		{"paletted", image.NewPaletted(image.Rect(0, 0, 16, 16), palette.Plan9[:4])},
		{"large palette", image.NewPaletted(image.Rect(4, 4, 20, 20), palette.WebSafe)},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			b := new(bytes.Buffer)
			require.NoError(t, EncodeThumbnail(b, table.m))

			m, err := png.Decode(b)
			require.NoError(t, err)

			pm, ok := m.(*image.Paletted)
			require.True(t, ok)
			assert.Equal(t, image.Rect(0, 0, 16, 16), pm.Bounds())
			assert.LessOrEqual(t, len(pm.Palette), thumbnailColors)
		})
	}
}
