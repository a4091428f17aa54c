/*
Package catalog maintains a SQLite catalog of Tiled maps found on disk, with
each map's tiles, their properties and a small paletted thumbnail of every
tile.
*/
package catalog

import "log"

const workers = 10

type Catalog struct {
	db     *DB
	logger *log.Logger
}

// New returns a Catalog that stores into db and logs skipped maps and
// progress to logger.
func New(db *DB, logger *log.Logger) *Catalog {
	return &Catalog{
		db:     db,
		logger: logger,
	}
}
