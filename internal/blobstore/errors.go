package blobstore

import "fmt"

// WriteError reports a failure to create or fill a new blob.
type WriteError struct {
	Name string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("blobstore: write %q: %v", e.Name, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError reports a deletion failure that is distinct from the
// target already being absent.
type DeleteError struct {
	Locator string
	Err     error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("blobstore: delete %q: %v", e.Locator, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// AccessError reports a read-time failure: the locator does not resolve
// or its bytes cannot be opened.
type AccessError struct {
	Locator string
	Err     error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("blobstore: open %q: %v", e.Locator, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }
