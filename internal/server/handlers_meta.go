package server

import (
	"net/http"

	"filebin/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	active, trashed, err := s.service.Counts(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := api.InfoResponse{
		DBPath:        s.info.DBPath,
		BlobRoot:      s.info.BlobRoot,
		SchemaVersion: s.info.SchemaVersion,
		ActiveFiles:   active,
		TrashedFiles:  trashed,
	}

	s.writeJSON(w, http.StatusOK, resp)
}
