package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets an id that has no
// catalog record.
var ErrNotFound = errors.New("file record not found")

// StoreError wraps underlying database faults so callers can tell them
// apart from domain conditions like ErrNotFound.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
