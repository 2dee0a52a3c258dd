package fsutil

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events a single save produces.
const watchDebounce = 100 * time.Millisecond

// Watch calls onChange each time the file behind snap changes, until ctx is
// done. The parent directory is watched so that editors which save by
// renaming a temporary file are still seen. Events that leave the content
// unchanged are dropped, as is a file that is briefly missing mid-save.
//
// Watch returns nil when ctx is cancelled. An error from onChange stops the
// watch and is returned wrapped.
func Watch(ctx context.Context, snap *Snapshot, onChange func(content []byte, snap *Snapshot) error) error {
	if snap == nil {
		return ErrNilSnapshot
	}

	target, err := filepath.Abs(snap.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", snap.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	current := snap
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				settle = time.After(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", snap.Path, err)

		case <-settle:
			settle = nil

			changed, err := Changed(ctx, current)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if !changed {
				continue
			}

			content, next, err := ReadFile(ctx, current.Path)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			current = next

			if err := onChange(content, next); err != nil {
				return fmt.Errorf("on change: %w", err)
			}
		}
	}
}
