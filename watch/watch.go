/*
Package watch reloads a map whenever the map file, or a tileset or image in
the same directory, changes on disk.
*/
package watch

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bodgit/tilemap"
	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher delivers a freshly loaded map on Maps after every relevant change.
// Load failures are delivered on Errors. Both channels are closed by Close.
type Watcher struct {
	Maps   chan *tilemap.Map
	Errors chan error

	file    string
	logger  *log.Logger
	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New starts watching the directory containing the map file.
func New(file string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		Maps:    make(chan *tilemap.Map, 1),
		Errors:  make(chan error, 1),
		file:    abs,
		logger:  logger,
		watcher: w,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching and closes Maps and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// run reloads the map once no relevant event has arrived for the debounce
// interval, so the last of a burst of writes is always the one loaded.
func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Maps)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var pending string
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isRelevant(event.Name) {
				continue
			}
			pending = event.Name
			timer.Reset(debounce)
		case <-timer.C:
			w.logger.Printf("Reloading \"%s\" after change to \"%s\"\n", w.file, pending)
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	m, err := tilemap.LoadMap(w.file, tilemap.WithLogger(w.logger))
	w.send(m, err)
}

func (w *Watcher) send(m *tilemap.Map, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Maps <- m:
	case <-w.closeCh:
	}
}

func isRelevant(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tmx", ".tsx", ".png", ".gif", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}
