package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"filebin/internal/models"
	"filebin/internal/vault"
)

const (
	uploadMaxBody         = 100 << 20 // 100 MiB
	uploadMultipartMemory = 8 << 20   // 8 MiB
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.uploadLimiter, "upload", func() {
		r.Body = http.MaxBytesReader(w, r.Body, int64(uploadMaxBody))
		if err := r.ParseMultipartForm(uploadMultipartMemory); err != nil {
			s.writeErrorReq(w, r, http.StatusBadRequest, classifyMultipartError(err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("file is required"), ErrCodeMissingRequired))
			return
		}
		defer file.Close()

		name := firstNonEmpty(strings.TrimSpace(r.FormValue("name")), header.Filename)
		if name == "" {
			s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("name is required"), ErrCodeMissingRequired))
			return
		}

		record, err := s.service.Import(r.Context(), vault.ImportInput{
			Reader:    file,
			Name:      name,
			MediaType: strings.TrimSpace(r.FormValue("media_type")),
		})
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, fileResponse(record))
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	state, err := stateFilter(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	var records []models.FileRecord
	switch state {
	case models.FileTrashed:
		records, err = s.service.ListTrashed(r.Context())
	default:
		records, err = s.service.ListActive(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, fileResponses(records))
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	record, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, fileResponse(record))
}

func (s *Server) handleGetFileContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	content, err := s.service.OpenContent(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer content.Reader.Close()

	w.Header().Set("Content-Type", content.Record.MediaType)
	if content.Record.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(content.Record.SizeBytes, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.Record.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content.Reader); err != nil {
		s.log().Error("stream file content", "id", id, "error", err)
	}
}

func (s *Server) handleTrashFile(w http.ResponseWriter, r *http.Request) {
	s.mutateFile(w, r, s.service.Trash)
}

func (s *Server) handleRestoreFile(w http.ResponseWriter, r *http.Request) {
	s.mutateFile(w, r, s.service.Restore)
}

func (s *Server) mutateFile(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) error) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := op(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	record, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, fileResponse(record))
}

func (s *Server) handlePurgeFile(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	if err := s.service.Purge(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"id": id})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	s.withLimiter(w, r, s.sweepLimiter, "sweep", func() {
		if s.sweeper == nil {
			s.writeServiceError(w, r, internalError(fmt.Errorf("sweeper is not configured")))
			return
		}

		result, err := s.sweeper.Sweep(r.Context(), time.Now().UTC())
		if err != nil {
			s.writeErrorReq(w, r, http.StatusInternalServerError, makeAPIError(http.StatusInternalServerError, "internal", ErrCodeSweepFailed, err))
			return
		}

		s.writeJSON(w, http.StatusOK, result)
	})
}

func classifyMultipartError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "request body too large") {
		return badRequestCode(fmt.Errorf("request body too large"), ErrCodeRequestTooLarge)
	}
	return badRequestCode(err, ErrCodeInvalidUpload)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}
