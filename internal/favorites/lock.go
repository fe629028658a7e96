package favorites

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"

	"github.com/NeverVane/hsb/internal/logger"
)

// ErrLocked is returned when another process holds the favorites lock.
var ErrLocked = errors.New("favorites file is locked by another process")

// FileLock is an advisory flock on a sidecar file, used to serialize
// writers of the favorites file across hsb processes.
type FileLock struct {
	path    string
	file    *os.File
	logger  *logger.Logger
	locked  bool
	mu      sync.Mutex
	timeout time.Duration
}

// NewFileLock creates the lock and its directory. It does not acquire it.
func NewFileLock(lockPath string, timeout time.Duration) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create lock directory")
	}

	return &FileLock{
		path:    lockPath,
		logger:  logger.GetLogger().WithComponent("filelock"),
		timeout: timeout,
	}, nil
}

// Lock acquires the lock, retrying until the timeout or ctx expires.
func (fl *FileLock) Lock(ctx context.Context) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.locked {
		return errors.New("lock already acquired")
	}

	lockCtx, cancel := context.WithTimeout(ctx, fl.timeout)
	defer cancel()

	fl.logger.Debug().
		Str("lock_path", fl.path).
		Dur("timeout", fl.timeout).
		Msg("Attempting to acquire file lock")

	const retryInterval = 50 * time.Millisecond
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		err := fl.tryLockOnce()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrLocked) {
			return err
		}

		select {
		case <-lockCtx.Done():
			return errors.Wrapf(ErrLocked, "gave up after %s", fl.timeout)
		case <-ticker.C:
		}
	}
}

// Unlock releases the lock. Unlocking an unlocked lock is a no-op.
func (fl *FileLock) Unlock() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if !fl.locked {
		return nil
	}

	var err error
	if flockErr := unix.Flock(int(fl.file.Fd()), unix.LOCK_UN); flockErr != nil {
		fl.logger.Warn().Err(flockErr).Str("lock_path", fl.path).Msg("Failed to unlock file")
		err = errors.Wrap(flockErr, "failed to release file lock")
	}
	if closeErr := fl.file.Close(); closeErr != nil && err == nil {
		err = errors.Wrap(closeErr, "failed to close lock file")
	}

	fl.file = nil
	fl.locked = false

	fl.logger.Debug().Str("lock_path", fl.path).Msg("Released file lock")
	return err
}

// IsLocked reports whether this process holds the lock.
func (fl *FileLock) IsLocked() bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.locked
}

func (fl *FileLock) tryLockOnce() error {
	file, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return errors.Wrap(err, "failed to open lock file")
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return ErrLocked
		}
		return errors.Wrap(err, "failed to acquire file lock")
	}

	fl.file = file
	fl.locked = true

	fl.logger.Debug().
		Str("lock_path", fl.path).
		Int("pid", os.Getpid()).
		Msg("Acquired file lock")
	return nil
}
