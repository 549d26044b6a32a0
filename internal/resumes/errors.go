package resumes

import "fmt"

// StorageError reports a failed write to the record store. It is fatal to the
// request because the response promises a storage key.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
