package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	// OutputFilePermissions defines the permissions used when the output file is created
	OutputFilePermissions = 0644
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// OutputRepository writes named values for later workflow steps.
type OutputRepository interface {
	Write(ctx context.Context, name, value string) error
}

// ActionsOutputRepository appends multiline values to a GitHub Actions output file.
type ActionsOutputRepository struct {
	fs           afero.Fs
	path         string
	newDelimiter func() string
}

// NewActionsOutputRepository creates an output repository for path. An empty
// path turns every write into a no-op.
func NewActionsOutputRepository(fs afero.Fs, path string) *ActionsOutputRepository {
	return &ActionsOutputRepository{
		fs:           fs,
		path:         path,
		newDelimiter: func() string { return "ghadelimiter_" + uuid.New().String() },
	}
}

// Write appends name<<delimiter / value / delimiter under an exclusive lock.
func (r *ActionsOutputRepository) Write(ctx context.Context, name, value string) error {
	if r.path == "" {
		return nil
	}
	delimiter := r.newDelimiter()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %s collides with generated delimiter", name)
	}
	lock := flock.New(r.path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := acquireLockWithContext(lockCtx, lock)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
		}
	}()
	file, err := r.fs.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, OutputFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close()
	if _, err := fmt.Fprintf(file, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

// acquireLockWithContext attempts to acquire an exclusive lock with context support
func acquireLockWithContext(ctx context.Context, lock *flock.Flock) (bool, error) {
	locked, err := lock.TryLock()
	if err != nil || locked {
		return locked, err
	}
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
			locked, err := lock.TryLock()
			if err != nil {
				return false, err
			}
			if locked {
				return true, nil
			}
		}
	}
}
