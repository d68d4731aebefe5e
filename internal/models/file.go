package models

import (
	"fmt"
	"strings"
	"time"
)

// FileState describes the lifecycle state persisted for a file record.
// Deleted is not a state: purging a record removes its row entirely.
type FileState string

const (
	FileActive  FileState = "active"
	FileTrashed FileState = "trashed"
)

// PreviewKind is the coarse content classification used to pick a
// preview rendering strategy. It is derived once at import and never
// recomputed afterwards.
type PreviewKind string

const (
	PreviewImage    PreviewKind = "image"
	PreviewVideo    PreviewKind = "video"
	PreviewAudio    PreviewKind = "audio"
	PreviewDocument PreviewKind = "document"
)

var validFileStates = map[FileState]struct{}{
	FileActive:  {},
	FileTrashed: {},
}

var validPreviewKinds = map[PreviewKind]struct{}{
	PreviewImage:    {},
	PreviewVideo:    {},
	PreviewAudio:    {},
	PreviewDocument: {},
}

// FileRecord is the sole catalog entity: one imported file with its
// metadata and the locator of its stored bytes.
type FileRecord struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Locator     string      `json:"locator"`
	MediaType   string      `json:"media_type"`
	PreviewKind PreviewKind `json:"preview_kind"`
	SizeBytes   int64       `json:"size_bytes"`
	ImportedAt  time.Time   `json:"imported_at"`
	TrashedAt   *time.Time  `json:"trashed_at,omitempty"`
	State       FileState   `json:"state"`
}

// IsTrashed reports whether the record currently sits in the recycle bin.
func (r FileRecord) IsTrashed() bool {
	return r.State == FileTrashed
}

func ParseFileState(raw string) (FileState, error) {
	value := FileState(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("file state is required")
	}
	if _, ok := validFileStates[value]; !ok {
		return "", fmt.Errorf("invalid file state: %s", value)
	}
	return value, nil
}

func ParsePreviewKind(raw string) (PreviewKind, error) {
	value := PreviewKind(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("preview kind is required")
	}
	if _, ok := validPreviewKinds[value]; !ok {
		return "", fmt.Errorf("invalid preview kind: %s", value)
	}
	return value, nil
}

// DerivePreviewKind maps a media type to its preview kind by prefix.
// Anything that is not image, video, or audio renders as a document.
func DerivePreviewKind(mediaType string) PreviewKind {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	switch {
	case strings.HasPrefix(mediaType, "image"):
		return PreviewImage
	case strings.HasPrefix(mediaType, "video"):
		return PreviewVideo
	case strings.HasPrefix(mediaType, "audio"):
		return PreviewAudio
	default:
		return PreviewDocument
	}
}
