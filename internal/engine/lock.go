package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 10 * time.Millisecond
)

// ErrLocked is returned when another run holds the output tree lock.
var ErrLocked = errors.New("output directory is locked by another run")

// LockPath returns the lock file guarding dest. It sits next to dest rather
// than inside it so the output tree only ever holds locale directories.
func LockPath(dest string) string {
	dest = filepath.Clean(dest)
	return filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".lock")
}

// acquireLock takes an exclusive lock on path, retrying until timeout.
// The returned func releases it.
func acquireLock(ctx context.Context, path string, timeout time.Duration) (func() error, error) {
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	fl := flock.New(path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return nil, fmt.Errorf("could not acquire %s: %w", path, ErrLocked)
	}
	return fl.Unlock, nil
}
