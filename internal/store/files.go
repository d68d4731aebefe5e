package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"filebin/internal/models"
)

const fileColumns = "id, name, locator, media_type, preview_kind, size_bytes, imported_at, trashed_at, state"

// CreateFile inserts one file record and assigns its id.
func (s *Store) CreateFile(ctx context.Context, record *models.FileRecord) error {
	if record == nil {
		return storeErr("create", errors.New("record is required"))
	}
	if record.ImportedAt.IsZero() {
		record.ImportedAt = time.Now().UTC()
	}
	if record.State == "" {
		record.State = models.FileActive
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO files (name, locator, media_type, preview_kind, size_bytes, imported_at, trashed_at, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.Name,
		record.Locator,
		record.MediaType,
		string(record.PreviewKind),
		record.SizeBytes,
		dbFormatTime(record.ImportedAt),
		nullTime(record.TrashedAt),
		string(record.State),
	)
	if err != nil {
		return storeErr("create", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storeErr("create", err)
	}
	record.ID = id
	return nil
}

// GetFile returns one file record by id.
func (s *Store) GetFile(ctx context.Context, id int64) (*models.FileRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM files WHERE id = ?`, id)
	record, err := scanFile(row)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	return record, nil
}

// ListActive lists non-trashed records in insertion order.
func (s *Store) ListActive(ctx context.Context) ([]models.FileRecord, error) {
	return s.listByState(ctx, models.FileActive)
}

// ListTrashed lists trashed records in insertion order.
func (s *Store) ListTrashed(ctx context.Context) ([]models.FileRecord, error) {
	return s.listByState(ctx, models.FileTrashed)
}

// MarkTrashed moves one record into the trashed state. Trashing an
// already-trashed record refreshes its trashed_at timestamp.
func (s *Store) MarkTrashed(ctx context.Context, id int64, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE files SET state = ?, trashed_at = ? WHERE id = ?",
		string(models.FileTrashed), dbFormatTime(at.UTC()), id)
	if err != nil {
		return storeErr("trash", err)
	}
	return requireRow(res, "trash")
}

// MarkRestored moves one record back to the active state and clears
// its trashed_at timestamp in the same statement.
func (s *Store) MarkRestored(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE files SET state = ?, trashed_at = NULL WHERE id = ?",
		string(models.FileActive), id)
	if err != nil {
		return storeErr("restore", err)
	}
	return requireRow(res, "restore")
}

// DeleteFile removes one record entirely. Deletion is terminal: ids are
// never reused.
func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return storeErr("delete", err)
	}
	return requireRow(res, "delete")
}

// CountFiles reports active and trashed record counts.
func (s *Store) CountFiles(ctx context.Context) (active, trashed int64, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN state = ? THEN 1 END),
			COUNT(CASE WHEN state = ? THEN 1 END)
		FROM files
	`, string(models.FileActive), string(models.FileTrashed)).Scan(&active, &trashed)
	if err != nil {
		return 0, 0, storeErr("count", err)
	}
	return active, trashed, nil
}

func (s *Store) listByState(ctx context.Context, state models.FileState) ([]models.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM files WHERE state = ? ORDER BY id ASC`, string(state))
	if err != nil {
		return nil, storeErr("list", err)
	}
	defer rows.Close()

	records := []models.FileRecord{}
	for rows.Next() {
		record, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*models.FileRecord, error) {
	var (
		record     models.FileRecord
		kind       string
		state      string
		importedAt string
		trashedAt  sql.NullString
	)

	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Locator,
		&record.MediaType,
		&kind,
		&record.SizeBytes,
		&importedAt,
		&trashedAt,
		&state,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("scan", err)
	}

	record.PreviewKind = models.PreviewKind(kind)
	record.State = models.FileState(state)

	if record.ImportedAt, err = dbParseTime(importedAt); err != nil {
		return nil, storeErr("scan", err)
	}
	if trashedAt.Valid && trashedAt.String != "" {
		t, err := dbParseTime(trashedAt.String)
		if err != nil {
			return nil, storeErr("scan", err)
		}
		record.TrashedAt = &t
	}

	return &record, nil
}

func requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func dbFormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func dbParseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}

func nullTime(value *time.Time) any {
	if value == nil || value.IsZero() {
		return nil
	}
	return dbFormatTime(*value)
}
