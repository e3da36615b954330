package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/dim"
)

// Watch reloads the file at path whenever it is written or replaced and
// passes the result to onChange. A file that fails to load is reported
// through onChange with a nil *File. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file are picked up.
func Watch(ctx context.Context, path string, onChange func(*File, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	log := dim.Logger()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			log.Debug("config: reloading", "path", abs, "op", ev.Op.String())
			f, err := Load(abs)
			onChange(f, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config: watcher error", "err", err)
		}
	}
}
