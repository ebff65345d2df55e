package store

import "fmt"

// StorageError reports a failed durable mutation (set, remove, clear). Reads
// never produce one: a read that cannot be served degrades to a miss. Writes
// must not claim success, so the failure travels up to the caller.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store: %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
