package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLocalWriteOpenDelete(t *testing.T) {
	bs, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	res, err := bs.WriteNew(ctx, bytes.NewBufferString("hello"), "notes.txt")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if res.SizeBytes != 5 {
		t.Fatalf("expected size 5, got %d", res.SizeBytes)
	}
	if !strings.HasPrefix(res.Locator, "file://") {
		t.Fatalf("expected file:// locator, got %q", res.Locator)
	}
	if !strings.Contains(res.Locator, "notes.txt") {
		t.Fatalf("expected suggested name in locator, got %q", res.Locator)
	}

	rc, err := bs.Open(ctx, res.Locator)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", string(data))
	}
	if !bs.Accessible(ctx, res.Locator) {
		t.Fatal("expected locator to be accessible")
	}

	removed, err := bs.Delete(ctx, res.Locator)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected first delete to remove bytes")
	}

	removed, err = bs.Delete(ctx, res.Locator)
	if err != nil {
		t.Fatalf("second delete should not error: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to report absent")
	}
	if bs.Accessible(ctx, res.Locator) {
		t.Fatal("expected deleted locator to be inaccessible")
	}
}

func TestLocalWriteDistinctLocators(t *testing.T) {
	bs, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	first, err := bs.WriteNew(ctx, bytes.NewBufferString("same"), "a.bin")
	if err != nil {
		t.Fatalf("write first: %v", err)
	}
	second, err := bs.WriteNew(ctx, bytes.NewBufferString("same"), "a.bin")
	if err != nil {
		t.Fatalf("write second: %v", err)
	}
	if first.Locator == second.Locator {
		t.Fatalf("expected distinct locators, both %q", first.Locator)
	}
}

func TestLocalOpenMissingIsAccessError(t *testing.T) {
	bs, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	_, err = bs.Open(context.Background(), "file:///nope/missing.bin")
	if err == nil {
		t.Fatal("expected error for missing blob")
	}
	var accessErr *AccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("expected AccessError, got %T: %v", err, err)
	}
}

func TestLocalRejectsRelativeLocator(t *testing.T) {
	bs, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	if _, err := bs.Delete(context.Background(), "relative/path.bin"); err == nil {
		t.Fatal("expected error for relative locator")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"notes.txt", "notes.txt"},
		{"../../etc/passwd", "passwd"},
		{"my photo (1).jpg", "my_photo__1_.jpg"},
		{"", "blob"},
		{"...", "blob"},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteFailurePropagates(t *testing.T) {
	bs, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	_, err = bs.WriteNew(context.Background(), failingReader{}, "broken.bin")
	if err == nil {
		t.Fatal("expected error from failing reader")
	}
	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected WriteError, got %T: %v", err, err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream interrupted")
}
