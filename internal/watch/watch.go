// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// Package watch re-runs formatting when sftext files change on disk. It wraps
// fsnotify, watches directory trees recursively, and debounces bursts of
// write events so a file is handled once per save.
package watch

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the path of a changed file. Calls are serialized.
type Handler func(path string)

// Watcher delivers debounced change notifications for matching files.
type Watcher struct {
	w        *fsnotify.Watcher
	match    func(path string) bool
	explicit map[string]bool
	debounce time.Duration
}

// New watches roots. Directories are watched recursively and report files
// accepted by match; file roots are always reported.
func New(roots []string, match func(path string) bool, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		w:        fw,
		match:    match,
		explicit: make(map[string]bool),
		debounce: debounce,
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			fw.Close()
			return nil, err
		}
		if !info.IsDir() {
			w.explicit[filepath.Clean(root)] = true
			if err := fw.Add(filepath.Dir(root)); err != nil {
				fw.Close()
				return nil, err
			}
			continue
		}
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.w.Add(path)
		}
		return nil
	})
}

func (w *Watcher) wanted(path string) bool {
	path = filepath.Clean(path)
	if w.explicit[path] {
		return true
	}
	return w.match != nil && w.match(path)
}

// Run delivers changes to handle until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Printf("[WATCH] Failed to watch %s: %v", ev.Name, err)
					}
					continue
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !w.wanted(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WATCH] Watcher error: %v", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			sort.Strings(paths)
			for _, p := range paths {
				if _, err := os.Stat(p); err != nil {
					continue
				}
				handle(p)
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.w.Close()
}
