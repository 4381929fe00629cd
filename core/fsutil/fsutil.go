package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ahiokk/dazzlepack/core/logger"
)

const (
	DefaultRemoveAttempts = 10
	DefaultRemoveDelay    = 500 * time.Millisecond
)

// Remover deletes build output directories that may still be held open by
// another process (Explorer, a running copy of the previously built app).
// It retries with a fixed delay up to a bounded attempt count.
type Remover struct {
	Attempts int
	Delay    time.Duration

	removeAll func(string) error
	sleep     func(time.Duration)
}

func NewRemover() *Remover {
	return &Remover{
		Attempts:  DefaultRemoveAttempts,
		Delay:     DefaultRemoveDelay,
		removeAll: os.RemoveAll,
		sleep:     time.Sleep,
	}
}

// Remove recursively deletes path. A path that does not exist is a no-op
// success. If every attempt fails, the error names the path and tells the
// operator what to do about it.
func (r *Remover) Remove(path string) error {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return nil
	}

	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			r.sleep(r.Delay)
		}
		if err := r.removeAll(path); err == nil {
			return nil
		} else {
			lastErr = err
			logger.Debug("Remove attempt %d/%d for %s failed: %v", i+1, attempts, path, err)
		}
	}

	return fmt.Errorf(
		"could not remove %s after %d attempts: %v; close any program holding it open (a file explorer window or a running copy of the app) and retry",
		path, attempts, lastErr,
	)
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NewestMatch returns the most recently modified path matching the glob
// pattern, or "" when nothing matches.
func NewestMatch(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad glob pattern %s: %w", pattern, err)
	}

	var newest string
	var newestMod time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = match
			newestMod = info.ModTime()
		}
	}
	return newest, nil
}

// RemoveMatches deletes every path matching the glob pattern via the remover.
func RemoveMatches(pattern string, r *Remover) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("bad glob pattern %s: %w", pattern, err)
	}
	for _, match := range matches {
		if err := r.Remove(match); err != nil {
			return err
		}
	}
	return nil
}
