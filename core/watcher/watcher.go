// Package watcher rebuilds the bundle when project sources change.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ahiokk/dazzlepack/core/logger"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 500 * time.Millisecond

// SourceWatcher watches the project root recursively, excluding build output
// directories, and invokes onChange after events settle.
type SourceWatcher struct {
	root         string
	excludePaths []string
	onChange     func()

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	debounce *time.Timer
}

func New(root string, excludePaths []string, onChange func()) (*SourceWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &SourceWatcher{
		root:         root,
		excludePaths: excludePaths,
		onChange:     onChange,
		watcher:      fsWatcher,
	}, nil
}

// Watch blocks, dispatching debounced rebuilds until the watcher is closed.
func (sw *SourceWatcher) Watch() error {
	if err := sw.addWatchersRecursively(sw.root); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if sw.shouldExcludePath(event.Name) || event.Op.Has(fsnotify.Chmod) {
				continue
			}

			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					logger.Debug("Adding watcher for new directory: %s", event.Name)
					sw.watcher.Add(event.Name)
				}
			}

			sw.debounceChange()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (sw *SourceWatcher) debounceChange() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.debounce != nil {
		sw.debounce.Stop()
	}

	sw.debounce = time.AfterFunc(debounceInterval, func() {
		logger.Debug("Source changes detected, rebuilding...")
		sw.onChange()
	})
}

func (sw *SourceWatcher) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.debounce != nil {
		sw.debounce.Stop()
	}
	return sw.watcher.Close()
}

func (sw *SourceWatcher) shouldExcludePath(path string) bool {
	relPath, err := filepath.Rel(sw.root, path)
	if err != nil {
		return false
	}
	relPath = filepath.Clean(relPath)

	if strings.HasPrefix(filepath.Base(relPath), ".") && relPath != "." {
		return true
	}

	for _, excludePath := range sw.excludePaths {
		excludePath = filepath.Clean(excludePath)
		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (sw *SourceWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && sw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := sw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}
