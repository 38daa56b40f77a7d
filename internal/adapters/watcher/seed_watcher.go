// Package watcher triggers catalog reloads when the seed file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// SeedWatcher calls OnChange after the seed file is created or written.
// Editors often emit several events per save, so calls are debounced.
type SeedWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(ctx context.Context) error
}

func NewSeedWatcher(path string, onChange func(ctx context.Context) error) (*SeedWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("new seed watcher: resolve %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new seed watcher: %w", err)
	}

	return &SeedWatcher{
		watcher:  w,
		path:     abs,
		debounce: defaultDebounce,
		onChange: onChange,
	}, nil
}

// Run watches the seed file's directory until ctx is done. Watching the
// directory keeps working when editors replace the file by rename.
func (w *SeedWatcher) Run(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("seed watcher: watch %q: %w", filepath.Dir(w.path), err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				log.Printf("seed watcher: reload failed path=%s err=%v", w.path, err)
				continue
			}
			log.Printf("seed watcher: reloaded path=%s", w.path)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("seed watcher: fsnotify error: %v", err)
		}
	}
}

func (w *SeedWatcher) Stop() error {
	return w.watcher.Close()
}
