// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package store

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the slot of every profile or image file written,
// created, renamed or removed in the store directory. It blocks until ctx is
// done and then returns nil.
//
// fn runs on the watching goroutine; a slow fn delays later events.
func (s *Store) Watch(ctx context.Context, fn func(Slot)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("store: watching %s: %w", s.dir, err)
	}

	const changed = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(changed) {
				continue
			}
			if slot, ok := slotOf(ev.Name); ok {
				fn(slot)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("store: watching %s: %w", s.dir, err)
		}
	}
}
