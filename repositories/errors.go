package repositories

import (
	"errors"
	"fmt"
)

var ErrCorruptState = errors.New("persisted tournament state is corrupt")

// CorruptStateError wraps a blob that could not be decoded. The caller is
// expected to discard the blob and start over.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("%s (key %s): %v", ErrCorruptState, e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorruptState }
