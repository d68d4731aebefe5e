package vault

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"filebin/internal/blobstore"
	"filebin/internal/store"
)

func TestSweepPurgesOnlyExpired(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	kept := mustImport(t, svc, "kept.png", "image/png", []byte("a"))
	fresh := mustImport(t, svc, "fresh.png", "image/png", []byte("b"))
	expired := mustImport(t, svc, "expired.png", "image/png", []byte("c"))

	svc.now = func() time.Time { return base }
	if err := svc.Trash(ctx, expired.ID); err != nil {
		t.Fatalf("trash expired: %v", err)
	}
	svc.now = func() time.Time { return base.Add(10 * time.Minute) }
	if err := svc.Trash(ctx, fresh.ID); err != nil {
		t.Fatalf("trash fresh: %v", err)
	}

	sweeper := NewSweeper(svc, 15*time.Minute, time.Hour, nil)
	result, err := sweeper.Sweep(ctx, base.Add(16*time.Minute))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Scanned != 2 || result.Purged != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := svc.Get(ctx, expired.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected expired record purged, got %v", err)
	}
	if _, err := svc.Get(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh trashed record must survive: %v", err)
	}
	if _, err := svc.Get(ctx, kept.ID); err != nil {
		t.Fatalf("active record must survive: %v", err)
	}
}

func TestSweepBoundaryIsStrict(t *testing.T) {
	svc, _, _ := testService(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	record := mustImport(t, svc, "edge.png", "image/png", []byte("x"))
	svc.now = func() time.Time { return base }
	if err := svc.Trash(ctx, record.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}

	window := 15 * time.Minute
	sweeper := NewSweeper(svc, window, time.Hour, nil)

	// Age exactly equal to the window is not yet expired.
	result, err := sweeper.Sweep(ctx, base.Add(window))
	if err != nil {
		t.Fatalf("sweep at boundary: %v", err)
	}
	if result.Purged != 0 {
		t.Fatalf("expected no purge at exact boundary, got %+v", result)
	}

	result, err = sweeper.Sweep(ctx, base.Add(window+time.Nanosecond))
	if err != nil {
		t.Fatalf("sweep past boundary: %v", err)
	}
	if result.Purged != 1 {
		t.Fatalf("expected purge past boundary, got %+v", result)
	}
}

func TestSweepContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	bs, err := blobstore.NewLocal(filepath.Join(dir, "blobs"))
	if err != nil {
		t.Fatalf("new blob store: %v", err)
	}

	flaky := &flakyBlobs{BlobStore: bs}
	svc := NewService(st, flaky, nil)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	stuck, err := svc.Import(ctx, ImportInput{Reader: bytes.NewBufferString("a"), Name: "stuck.bin"})
	if err != nil {
		t.Fatalf("import stuck: %v", err)
	}
	clean, err := svc.Import(ctx, ImportInput{Reader: bytes.NewBufferString("b"), Name: "clean.bin"})
	if err != nil {
		t.Fatalf("import clean: %v", err)
	}

	svc.now = func() time.Time { return base }
	for _, id := range []int64{stuck.ID, clean.ID} {
		if err := svc.Trash(ctx, id); err != nil {
			t.Fatalf("trash %d: %v", id, err)
		}
	}
	flaky.failLocator = stuck.Locator

	sweeper := NewSweeper(svc, time.Minute, time.Hour, nil)
	result, err := sweeper.Sweep(ctx, base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Scanned != 2 || result.Purged != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	// The failed record stays trashed; the clean one is gone.
	if _, err := svc.Get(ctx, stuck.ID); err != nil {
		t.Fatalf("failed purge must retain the record: %v", err)
	}
	if _, err := svc.Get(ctx, clean.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected clean record purged, got %v", err)
	}
}

func TestSweepEmitsExactlyOneNotification(t *testing.T) {
	svc, _, n := testService(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := mustImport(t, svc, "a.bin", "application/octet-stream", []byte("a"))
	second := mustImport(t, svc, "b.bin", "application/octet-stream", []byte("b"))
	svc.now = func() time.Time { return base }
	for _, id := range []int64{first.ID, second.ID} {
		if err := svc.Trash(ctx, id); err != nil {
			t.Fatalf("trash %d: %v", id, err)
		}
	}

	events, cancel := n.Subscribe()
	defer cancel()

	sweeper := NewSweeper(svc, time.Minute, time.Hour, nil)
	if _, err := sweeper.Sweep(ctx, base.Add(time.Hour)); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	count := 0
	for {
		select {
		case <-events:
			count++
		default:
			if count != 1 {
				t.Fatalf("expected exactly one notification, got %d", count)
			}
			return
		}
	}
}

func TestSweeperDefaults(t *testing.T) {
	svc, _, _ := testService(t)
	sweeper := NewSweeper(svc, 0, 0, nil)
	if sweeper.Retention() != DefaultRetention {
		t.Fatalf("expected default retention, got %v", sweeper.Retention())
	}
	if sweeper.Interval() != DefaultSweepInterval {
		t.Fatalf("expected default interval, got %v", sweeper.Interval())
	}
}

func TestScenarioImportTrashSweep(t *testing.T) {
	svc, bs, _ := testService(t)
	ctx := context.Background()
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }

	record, err := svc.Import(ctx, ImportInput{
		Reader:    bytes.NewReader(bytes.Repeat([]byte{7}, 1024)),
		Name:      "A",
		MediaType: "image/png",
		SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if record.PreviewKind != "image" {
		t.Fatalf("expected preview kind image, got %q", record.PreviewKind)
	}

	if err := svc.Trash(ctx, record.ID); err != nil {
		t.Fatalf("trash: %v", err)
	}
	trashed, _ := svc.ListTrashed(ctx)
	if len(trashed) != 1 || !trashed[0].TrashedAt.Equal(t0) {
		t.Fatalf("unexpected trash state: %+v", trashed)
	}

	sweeper := NewSweeper(svc, 900*time.Second, time.Hour, nil)
	result, err := sweeper.Sweep(ctx, t0.Add(1000*time.Second))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if result.Purged != 1 {
		t.Fatalf("expected one purge, got %+v", result)
	}

	active, _ := svc.ListActive(ctx)
	trashed, _ = svc.ListTrashed(ctx)
	if len(active)+len(trashed) != 0 {
		t.Fatalf("expected empty catalog, got %d active %d trashed", len(active), len(trashed))
	}
	if bs.Accessible(ctx, record.Locator) {
		t.Fatal("expected blob to be gone")
	}
}
