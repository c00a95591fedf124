package library

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the library write lock.
var ErrLocked = errors.New("library is locked by another parentwork run")

// Lock takes the advisory write lock that serializes batch runs against the
// same database. The returned function releases it.
func (s *Store) Lock() (func() error, error) {
	lock := flock.New(s.path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, lock.Path())
	}
	return lock.Unlock, nil
}
