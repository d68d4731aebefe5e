package blobstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxBlobNameLength = 128
	writeMaxAttempts  = 10
)

// Local stores blob bytes as flat files under a single root directory.
// Locators are file:// URLs pointing at the stored copy, so they stay
// resolvable across process restarts regardless of the import source.
type Local struct {
	root string
}

// NewLocal creates a local blob store rooted at root.
func NewLocal(root string) (*Local, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

// Root returns the store's root directory.
func (l *Local) Root() string {
	if l == nil {
		return ""
	}
	return l.root
}

// WriteNew streams bytes into a temp file and publishes it under a
// unique name via rename. A failed copy leaves nothing referenced.
func (l *Local) WriteNew(ctx context.Context, r io.Reader, suggestedName string) (WriteResult, error) {
	var zero WriteResult
	if l == nil {
		return zero, &WriteError{Name: suggestedName, Err: fmt.Errorf("blob store is not configured")}
	}
	if r == nil {
		return zero, &WriteError{Name: suggestedName, Err: fmt.Errorf("reader is required")}
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	tmp, err := os.CreateTemp(filepath.Join(l.root, "tmp"), "import-*")
	if err != nil {
		return zero, &WriteError{Name: suggestedName, Err: err}
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return zero, &WriteError{Name: suggestedName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zero, &WriteError{Name: suggestedName, Err: err}
	}

	safe := sanitizeName(suggestedName)
	for attempt := 0; attempt < writeMaxAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			cleanup()
			return zero, &WriteError{Name: suggestedName, Err: err}
		}
		dst := filepath.Join(l.root, suffix+"-"+safe)

		// Claim the destination name first so a concurrent writer
		// cannot publish under the same path.
		claim, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			cleanup()
			return zero, &WriteError{Name: suggestedName, Err: err}
		}
		_ = claim.Close()

		if err := os.Rename(tmpPath, dst); err != nil {
			_ = os.Remove(dst)
			cleanup()
			return zero, &WriteError{Name: suggestedName, Err: err}
		}
		return WriteResult{Locator: locatorFromPath(dst), SizeBytes: n}, nil
	}

	cleanup()
	return zero, &WriteError{Name: suggestedName, Err: fmt.Errorf("unable to allocate unique blob name")}
}

// Delete removes the blob's bytes. Already-absent blobs report false
// without an error.
func (l *Local) Delete(ctx context.Context, locator string) (bool, error) {
	if l == nil {
		return false, &DeleteError{Locator: locator, Err: fmt.Errorf("blob store is not configured")}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := pathFromLocator(locator)
	if err != nil {
		return false, &DeleteError{Locator: locator, Err: err}
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &DeleteError{Locator: locator, Err: err}
	}
	return true, nil
}

// Open returns a reader over the blob's bytes.
func (l *Local) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if l == nil {
		return nil, &AccessError{Locator: locator, Err: fmt.Errorf("blob store is not configured")}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := pathFromLocator(locator)
	if err != nil {
		return nil, &AccessError{Locator: locator, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Locator: locator, Err: err}
	}
	return f, nil
}

// Accessible probes the locator with an open-then-close.
func (l *Local) Accessible(ctx context.Context, locator string) bool {
	rc, err := l.Open(ctx, locator)
	if err != nil {
		return false
	}
	_ = rc.Close()
	return true
}

var _ BlobStore = (*Local)(nil)

func locatorFromPath(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// pathFromLocator accepts file:// URLs and bare absolute paths.
func pathFromLocator(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", fmt.Errorf("locator is required")
	}
	path := locator
	if strings.HasPrefix(locator, "file://") {
		u, err := url.Parse(locator)
		if err != nil {
			return "", fmt.Errorf("invalid locator: %w", err)
		}
		path = u.Path
	}
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("locator must be absolute")
	}
	return filepath.Clean(path), nil
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		out = "blob"
	}
	if len(out) > maxBlobNameLength {
		out = out[len(out)-maxBlobNameLength:]
	}
	return out
}

func randomSuffix() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
