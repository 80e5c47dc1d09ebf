package run

import (
	"errors"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked means a previous scheduled run is still going.
var ErrLocked = errors.New("another run holds the lock")

// AcquireLock takes a non-blocking file lock in the data dir. Runs are
// scheduled with plenty of spacing, so a held lock is a stuck or
// overlapping invocation and the new run should bail out untouched.
func AcquireLock(dataDir string) (*flock.Flock, error) {
	fl := flock.New(filepath.Join(dataDir, "watcher.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return fl, nil
}
