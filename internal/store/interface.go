package store

import (
	"context"
	"time"

	"filebin/internal/models"
)

// FileCatalog abstracts the durable file record store. All mutations
// are atomic at the single-record level; no operation spans multiple
// records in one transaction.
type FileCatalog interface {
	CreateFile(ctx context.Context, record *models.FileRecord) error
	GetFile(ctx context.Context, id int64) (*models.FileRecord, error)
	ListActive(ctx context.Context) ([]models.FileRecord, error)
	ListTrashed(ctx context.Context) ([]models.FileRecord, error)
	MarkTrashed(ctx context.Context, id int64, at time.Time) error
	MarkRestored(ctx context.Context, id int64) error
	DeleteFile(ctx context.Context, id int64) error
	CountFiles(ctx context.Context) (active, trashed int64, err error)
}

var _ FileCatalog = (*Store)(nil)
