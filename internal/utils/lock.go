package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileName = ".freedrops.lock"
)

// RunLock is a file-based lock that keeps two runs from touching the same
// data directory at once.
type RunLock struct {
	lock *flock.Flock
	path string
}

// NewRunLock creates a lock for the given data directory.
func NewRunLock(dataDir string) (*RunLock, error) {
	absPath, err := GetAbsDataDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("could not get absolute data dir: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data dir %s: %w", absPath, err)
	}
	lockPath := filepath.Join(absPath, lockFileName)
	return &RunLock{
		lock: flock.New(lockPath),
		path: lockPath,
	}, nil
}

// Lock acquires the lock, waiting if necessary.
// It will print a message if it has to wait.
func (l *RunLock) Lock() error {
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another freedrops run is using %s, waiting for it to finish...\n", filepath.Dir(l.path))
		if err := l.lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s after waiting: %w", l.path, err)
		}
	}
	return nil
}

// Unlock releases the lock.
func (l *RunLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		// Suppress error if the lock file doesn't exist, as it means we don't hold the lock.
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

// GetAbsDataDir resolves the data directory, defaulting to the working directory.
func GetAbsDataDir(dataDir string) (string, error) {
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Abs(dataDir)
}
