package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Files collection.
	mux.HandleFunc("POST /v1/files", s.handleUpload)
	mux.HandleFunc("GET /v1/files", s.handleListFiles)

	// Single file.
	mux.HandleFunc("GET /v1/files/{id}", s.handleGetFile)
	mux.HandleFunc("GET /v1/files/{id}/content", s.handleGetFileContent)
	mux.HandleFunc("DELETE /v1/files/{id}", s.handlePurgeFile)

	// Lifecycle transitions.
	mux.HandleFunc("POST /v1/files/{id}/trash", s.handleTrashFile)
	mux.HandleFunc("POST /v1/files/{id}/restore", s.handleRestoreFile)

	// Maintenance.
	mux.HandleFunc("POST /v1/sweep", s.handleSweep)

	return s.withRequestLogging(s.withAuth(mux))
}
