// Package vault orchestrates the file lifecycle: import into app-owned
// storage, trash, restore, and permanent purge. It owns the ordering
// contract between catalog rows and blob bytes: a record is never
// visible without backing bytes, and metadata is never removed for
// bytes that could not be confirmed gone.
package vault

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"filebin/internal/blobstore"
	"filebin/internal/models"
	"filebin/internal/notify"
	"filebin/internal/store"
)

const fallbackMediaType = "application/octet-stream"

// Service is the lifecycle manager over one catalog and one blob store.
type Service struct {
	catalog  store.FileCatalog
	blobs    blobstore.BlobStore
	notifier *notify.Notifier
	locks    *recordLocks
	now      func() time.Time
}

// NewService constructs a Service. The notifier may be nil when no
// listener cares about catalog changes.
func NewService(catalog store.FileCatalog, blobs blobstore.BlobStore, notifier *notify.Notifier) *Service {
	return &Service{
		catalog:  catalog,
		blobs:    blobs,
		notifier: notifier,
		locks:    newRecordLocks(),
		now:      time.Now,
	}
}

// ImportInput describes one file supplied by an import source.
type ImportInput struct {
	Reader    io.Reader
	Name      string
	MediaType string
	SizeBytes int64
}

// Content is an open stream over a record's stored bytes.
type Content struct {
	Reader io.ReadCloser
	Record models.FileRecord
}

// Import copies the source stream into app-owned storage and creates
// the catalog record, in that order: on blob-write failure no record
// exists, and on catalog failure the freshly written blob is removed
// again so no orphan bytes stay behind.
func (s *Service) Import(ctx context.Context, in ImportInput) (models.FileRecord, error) {
	var zero models.FileRecord
	if s == nil || s.catalog == nil || s.blobs == nil {
		return zero, fmt.Errorf("vault service is not configured")
	}
	if in.Reader == nil {
		return zero, fmt.Errorf("source stream is required")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "unnamed"
	}

	res, err := s.blobs.WriteNew(ctx, in.Reader, name)
	if err != nil {
		return zero, err
	}

	mediaType := strings.ToLower(strings.TrimSpace(in.MediaType))
	if mediaType == "" {
		mediaType = s.sniffMediaType(ctx, res.Locator)
	}

	sizeBytes := in.SizeBytes
	if sizeBytes <= 0 {
		sizeBytes = res.SizeBytes
	}

	record := &models.FileRecord{
		Name:        name,
		Locator:     res.Locator,
		MediaType:   mediaType,
		PreviewKind: models.DerivePreviewKind(mediaType),
		SizeBytes:   sizeBytes,
		ImportedAt:  s.now().UTC(),
		State:       models.FileActive,
	}

	if err := s.catalog.CreateFile(ctx, record); err != nil {
		_, _ = s.blobs.Delete(ctx, res.Locator)
		return zero, err
	}

	s.publish()
	return *record, nil
}

// Trash moves one record into the recycle bin. Trashing an already
// trashed record refreshes its trashed_at timestamp.
func (s *Service) Trash(ctx context.Context, id int64) error {
	release := s.locks.acquire(id)
	defer release()

	if err := s.catalog.MarkTrashed(ctx, id, s.now().UTC()); err != nil {
		return err
	}
	s.publish()
	return nil
}

// Restore moves one trashed record back to the active set.
func (s *Service) Restore(ctx context.Context, id int64) error {
	release := s.locks.acquire(id)
	defer release()

	if err := s.catalog.MarkRestored(ctx, id); err != nil {
		return err
	}
	s.publish()
	return nil
}

// Purge permanently deletes one record and its bytes. It is allowed
// from both Active (delete forever) and Trashed.
func (s *Service) Purge(ctx context.Context, id int64) error {
	if err := s.purgeRecord(ctx, id); err != nil {
		return err
	}
	s.publish()
	return nil
}

// purgeRecord deletes the blob first, then the catalog row. When blob
// deletion fails hard the row is retained and the error surfaced; an
// already-absent blob is cleaned up as metadata-only.
func (s *Service) purgeRecord(ctx context.Context, id int64) error {
	release := s.locks.acquire(id)
	defer release()

	record, err := s.catalog.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.blobs.Delete(ctx, record.Locator); err != nil {
		return err
	}

	return s.catalog.DeleteFile(ctx, id)
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id int64) (models.FileRecord, error) {
	record, err := s.catalog.GetFile(ctx, id)
	if err != nil {
		return models.FileRecord{}, err
	}
	return *record, nil
}

// ListActive lists non-trashed records in catalog insertion order.
func (s *Service) ListActive(ctx context.Context) ([]models.FileRecord, error) {
	return s.catalog.ListActive(ctx)
}

// ListTrashed lists recycle-bin records in catalog insertion order.
func (s *Service) ListTrashed(ctx context.Context) ([]models.FileRecord, error) {
	return s.catalog.ListTrashed(ctx)
}

// OpenContent opens the stored bytes of one record for preview or
// export. The caller owns the returned reader.
func (s *Service) OpenContent(ctx context.Context, id int64) (*Content, error) {
	record, err := s.catalog.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	rc, err := s.blobs.Open(ctx, record.Locator)
	if err != nil {
		return nil, err
	}
	return &Content{Reader: rc, Record: *record}, nil
}

// Accessible probes whether a record's bytes can currently be opened.
func (s *Service) Accessible(ctx context.Context, id int64) (bool, error) {
	record, err := s.catalog.GetFile(ctx, id)
	if err != nil {
		return false, err
	}
	return s.blobs.Accessible(ctx, record.Locator), nil
}

// SaveTo copies a record's bytes into dir under the record's display
// name and returns the written path.
func (s *Service) SaveTo(ctx context.Context, id int64, dir string) (string, error) {
	content, err := s.OpenContent(ctx, id)
	if err != nil {
		return "", err
	}
	defer content.Reader.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, filepath.Base(content.Record.Name))
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, content.Reader); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

// Counts reports active and trashed record totals.
func (s *Service) Counts(ctx context.Context) (active, trashed int64, err error) {
	return s.catalog.CountFiles(ctx)
}

func (s *Service) sniffMediaType(ctx context.Context, locator string) string {
	rc, err := s.blobs.Open(ctx, locator)
	if err != nil {
		return fallbackMediaType
	}
	defer rc.Close()

	mt, err := mimetype.DetectReader(rc)
	if err != nil || mt == nil {
		return fallbackMediaType
	}
	return strings.ToLower(strings.TrimSpace(mt.String()))
}

func (s *Service) publish() {
	if s.notifier != nil {
		s.notifier.Publish(notify.CatalogChanged)
	}
}
