package catalog

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	a := writeMap(t, filepath.Join(dir, "world1"), "a.tmx")
	b := writeMap(t, filepath.Join(dir, "world2", "caves"), "b.TMX")
	writeMap(t, filepath.Join(dir, ".hidden"), "c.tmx")

	// Bad maps are skipped
	bad := filepath.Join(dir, "world1", "broken.tmx")
	require.NoError(t, os.WriteFile(bad, []byte(`<map orientation="isometric"/>`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world1", "truncated.tmx"), []byte(`<map`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "world1", "notes.txt"), []byte(`<map/>`), 0644))

	db := newTestDB(t)
	var buf bytes.Buffer
	c := New(db, log.New(&buf, "", 0))

	require.NoError(t, c.Scan(dir))

	maps, err := db.Maps()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, maps)

	assert.Contains(t, buf.String(), `Skipping "`+bad+`"`)
	assert.Contains(t, buf.String(), `Added "`+a+`" with 2 tiles`)

	r, err := db.FindTile(b, 2)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "yes", r.Properties["gray"])
}

func TestScanCorruptAtlas(t *testing.T) {
	dir := t.TempDir()
	good := writeMap(t, filepath.Join(dir, "a"), "good.tmx")
	bad := writeMap(t, filepath.Join(dir, "b"), "bad.tmx")
	after := writeMap(t, filepath.Join(dir, "c"), "after.tmx")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b", "pair.png"), []byte("\x89PNG\r\n\x1a\ngarbage"), 0644))

	db := newTestDB(t)
	var buf bytes.Buffer
	c := New(db, log.New(&buf, "", 0))

	require.NoError(t, c.Scan(dir))

	maps, err := db.Maps()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{good, after}, maps)
	assert.Contains(t, buf.String(), `Skipping "`+bad+`"`)
}

func TestScanMissing(t *testing.T) {
	db := newTestDB(t)
	c := New(db, log.New(&bytes.Buffer{}, "", 0))

	assert.Error(t, c.Scan(filepath.Join(t.TempDir(), "nowhere")))
}
