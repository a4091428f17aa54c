package catalog

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.0" orientation="orthogonal" width="2" height="1" tilewidth="8" tileheight="8">
 <properties><property name="creator" value="maikg"/></properties>
 <tileset firstgid="1" name="pair" tilewidth="8" tileheight="8">
  <image source="pair.png"/>
  <tile id="1"><properties><property name="gray" value="yes"/></properties></tile>
 </tileset>
 <layer><data><tile gid="1"/><tile gid="2"/></data></layer>
</map>`

// writeMap writes testMap and its 16x8 two tile atlas into dir.
func writeMap(t *testing.T, dir, name string) string {
	t.Helper()

	m := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			c := color.NRGBA{R: 0xff, A: 0xff}
			if x >= 8 {
				c = color.NRGBA{G: 0xff, B: uint8(x * y), A: 0xff}
			}
			m.SetNRGBA(x, y, c)
		}
	}

	require.NoError(t, os.MkdirAll(dir, 0755))
	f, err := os.Create(filepath.Join(dir, "pair.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(testMap), 0644))
	return file
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
