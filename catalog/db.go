package catalog

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"encoding/json"
	"fmt"
	"image"

	"github.com/bodgit/tilemap"
	_ "github.com/mattn/go-sqlite3" // register the sqlite3 driver
)

type DB struct {
	db *sql.DB
}

// TileRecord is a tile as stored in the catalog.
type TileRecord struct {
	Map        string
	GID        int
	Properties tilemap.Properties
	Thumbnail  []byte
}

func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// SQLite only allows one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS thumbnail (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, png BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tilemap (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, tile_width INTEGER NOT NULL, tile_height INTEGER NOT NULL, properties TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tile (tilemap_id INTEGER NOT NULL, gid INTEGER NOT NULL, thumbnail_id INTEGER NOT NULL, properties TEXT NOT NULL, PRIMARY KEY (tilemap_id, gid), FOREIGN KEY(tilemap_id) REFERENCES tilemap(id) ON DELETE CASCADE, FOREIGN KEY(thumbnail_id) REFERENCES thumbnail(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

// AddMap stores m under path, replacing anything previously stored for the
// same path, and returns its row id.
func (db *DB) AddMap(path string, m *tilemap.Map) (int64, error) {
	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM tilemap WHERE path = ?", path); err != nil {
		return 0, err
	}

	properties, err := json.Marshal(m.Properties)
	if err != nil {
		return 0, err
	}

	result, err := tx.Exec("INSERT INTO tilemap (path, width, height, tile_width, tile_height, properties) VALUES (?, ?, ?, ?, ?, ?)", path, m.Columns(), m.Rows(), m.TileWidth, m.TileHeight, string(properties))
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, tile := range m.Tiles() {
		thumbnail, err := addThumbnail(tx, tile.Image)
		if err != nil {
			return 0, err
		}

		properties, err := json.Marshal(tile.Properties)
		if err != nil {
			return 0, err
		}

		if _, err = tx.Exec("INSERT INTO tile (tilemap_id, gid, thumbnail_id, properties) VALUES (?, ?, ?, ?)", id, tile.ID, thumbnail, string(properties)); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

func addThumbnail(tx *sql.Tx, m image.Image) (int64, error) {
	b := new(bytes.Buffer)
	if err := EncodeThumbnail(b, m); err != nil {
		return 0, err
	}
	h := sha1.Sum(b.Bytes())
	sha := fmt.Sprintf("%X", h[:])

	var id int64
	switch err := tx.QueryRow("SELECT id FROM thumbnail WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO thumbnail (sha1, png) VALUES (?, ?)", sha, b.Bytes())
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// FindTile returns the tile with the given gid of the map stored under path,
// or nil if there is no such tile.
func (db *DB) FindTile(path string, gid int) (*TileRecord, error) {
	var properties string
	var thumbnail []byte
	switch err := db.db.QueryRow("SELECT t.properties, th.png FROM tile AS t JOIN tilemap AS m ON t.tilemap_id = m.id JOIN thumbnail AS th ON t.thumbnail_id = th.id WHERE m.path = ? AND t.gid = ?", path, gid).Scan(&properties, &thumbnail); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		r := &TileRecord{
			Map:       path,
			GID:       gid,
			Thumbnail: thumbnail,
		}
		if err := json.Unmarshal([]byte(properties), &r.Properties); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, err
	}
}

// Maps returns the paths of every stored map in order.
func (db *DB) Maps() ([]string, error) {
	rows, err := db.db.Query("SELECT path FROM tilemap ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, rows.Err()
}

func (db *DB) Thumbnails() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM thumbnail").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
