// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package dfinit

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces a burst of filesystem events into one reload.
const watchDebounce = 100 * time.Millisecond

// A Watcher reports external changes to an init file by delivering freshly
// parsed snapshots of it. It is intended for tools that keep a file on
// screen while the game or another editor may rewrite it. Each snapshot is
// an independent File owned by the receiver.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	files   chan *File
}

// NewWatcher watches the init file at path. The file does not need to exist
// yet: the watch covers the file's directory, so it catches late creation as
// well as the write-temporary-then-rename saves that editors (and WriteFile)
// perform.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch init file: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch init file: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch init file %s: %w", path, err)
	}
	w := &Watcher{
		path:    abs,
		watcher: fsw,
		files:   make(chan *File, 1),
	}
	go w.run()
	return w, nil
}

// Files returns the channel on which the watcher delivers a parsed File
// after each change to the watched path. Deliveries are debounced: a burst
// of writes produces a single File. A change that cannot be read is skipped;
// a later change will be delivered. The channel is closed by Close.
func (w *Watcher) Files() <-chan *File {
	return w.files
}

// Close stops watching and closes the Files channel.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.files)
	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case <-timerC:
			f, err := ReadFile(w.path)
			if err != nil {
				continue
			}
			// Drop any undelivered snapshot in favor of the fresh one.
			select {
			case <-w.files:
			default:
			}
			select {
			case w.files <- f:
			default:
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
