package catalog

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/tilemap"
	"github.com/bodgit/tilemap/atlas"
)

const mapExt = ".tmx"

func (c *Catalog) findMaps(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || strings.ToLower(filepath.Ext(file)) != mapExt {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// skippable reports whether err only concerns the map being loaded.
func skippable(err error) bool {
	var fe *tilemap.FormatError
	var se *xml.SyntaxError
	return errors.As(err, &fe) || errors.As(err, &se) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, atlas.ErrDecode) || errors.Is(err, io.EOF)
}

func (c *Catalog) mapWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			m, err := tilemap.LoadMap(file, tilemap.WithLogger(c.logger))
			if err != nil {
				if skippable(err) {
					c.logger.Printf("Skipping \"%s\": %s\n", file, err)
					continue
				}
				errc <- err
				return
			}

			if _, err := c.db.AddMap(file, m); err != nil {
				errc <- err
				return
			}

			c.logger.Printf("Added \"%s\" with %d tiles\n", file, len(m.Tiles()))
		}
	}()
	return errc, nil
}

// waitForPipeline returns the first error reported by any stage. The caller
// cancels the walk so the remaining stages drain.
func waitForPipeline(errs ...<-chan error) error {
	for err := range mergeErrors(errs...) {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(in ...<-chan error) <-chan error {
	out := make(chan error, len(in))

	var wg sync.WaitGroup
	for _, errc := range in {
		errc := errc
		wg.Add(1)
		go func() {
			defer wg.Done()
			for err := range errc {
				out <- err
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Scan walks path and adds every map found to the catalog. Maps that cannot
// be loaded because of bad markup, bad data or missing or undecodable files
// are logged and skipped. Any other error stops the scan.
func (c *Catalog) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findMaps(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := c.mapWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
