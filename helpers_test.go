package tilemap

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// tileColor is the fill colour of the n-th tile (0-based, scan order) of a
// test atlas.
func tileColor(n int) color.NRGBA {
	return color.NRGBA{R: uint8(n), G: 0x80, B: 0x40, A: 0xff}
}

func writeAtlas(t *testing.T, file string, cols, rows, tw, th int) {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, cols*tw, rows*th))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fill := tileColor(r*cols + c)
			for y := r * th; y < (r+1)*th; y++ {
				for x := c * tw; x < (c+1)*tw; x++ {
					m.SetNRGBA(x, y, fill)
				}
			}
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func writeFile(t *testing.T, file, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, os.WriteFile(file, []byte(contents), 0644))
}

// colorAt samples the top-left pixel of a tile image.
func colorAt(m image.Image) color.Color {
	b := m.Bounds()
	return m.At(b.Min.X, b.Min.Y)
}
