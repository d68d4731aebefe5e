package api

import "time"

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// FileResponse is the wire representation of a catalog record.
type FileResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	MediaType   string     `json:"media_type"`
	PreviewKind string     `json:"preview_kind"`
	SizeBytes   int64      `json:"size_bytes"`
	ImportedAt  time.Time  `json:"imported_at"`
	TrashedAt   *time.Time `json:"trashed_at,omitempty"`
	State       string     `json:"state"`
}

// InfoResponse describes the running server.
type InfoResponse struct {
	DBPath        string `json:"db_path"`
	BlobRoot      string `json:"blob_root"`
	SchemaVersion int    `json:"schema_version"`
	ActiveFiles   int64  `json:"active_files"`
	TrashedFiles  int64  `json:"trashed_files"`
}

// SweepResponse reports the outcome of one expiry sweep.
type SweepResponse struct {
	Scanned int `json:"scanned"`
	Purged  int `json:"purged"`
	Failed  int `json:"failed"`
}
