package blobstore

import (
	"context"
	"io"
)

// WriteResult describes one persisted blob payload.
type WriteResult struct {
	Locator   string
	SizeBytes int64
}

// BlobStore is the byte-storage abstraction used by the vault service.
// Locators are opaque, durable references that resolve independently of
// the source stream's lifetime.
type BlobStore interface {
	// WriteNew copies bytes from r into app-owned storage and returns a
	// durable locator. No partial output is ever reachable through the
	// returned locator: the write either fully lands or fails.
	WriteNew(ctx context.Context, r io.Reader, suggestedName string) (WriteResult, error)

	// Delete removes the underlying bytes. It returns (false, nil) when
	// the target is already absent, so repeated deletes are harmless.
	Delete(ctx context.Context, locator string) (bool, error)

	// Open yields a readable stream over the blob's bytes.
	Open(ctx context.Context, locator string) (io.ReadCloser, error)

	// Accessible is a best-effort open-then-close probe used to detect
	// missing files or revoked access before attempting a preview.
	Accessible(ctx context.Context, locator string) bool
}
