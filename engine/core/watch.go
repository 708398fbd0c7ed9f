package core

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/hubastard/imgrove/engine/ui"
)

// FileWatcher flags writes to one file. The flag is read from the frame
// loop with Changed; events arrive on a background goroutine.
type FileWatcher struct {
	w       *fsnotify.Watcher
	name    string
	changed atomic.Bool
	done    chan struct{}
}

// WatchFile watches path's directory so editors that replace the file on
// save are still seen.
func WatchFile(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %q: %w", path, err)
	}
	fw := &FileWatcher{w: w, name: abs, done: make(chan struct{})}
	go fw.loop()
	return fw, nil
}

func (fw *FileWatcher) loop() {
	defer close(fw.done)
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				fw.changed.Store(true)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			ui.Logger().Warn("core: file watch error", "file", fw.name, "err", err)
		}
	}
}

// Changed reports whether the file changed since the last call.
func (fw *FileWatcher) Changed() bool { return fw.changed.Swap(false) }

func (fw *FileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}
