package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"filebin/internal/api"
	"filebin/internal/blobstore"
	"filebin/internal/models"
	"filebin/internal/store"
)

func (s *Server) writeErrorReq(w http.ResponseWriter, r *http.Request, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	code := errorCode(status, err)
	numericCode := errorNumericCode(status, err)
	message := err.Error()

	fields := []any{"status", status, "code", code, "error_code", numericCode, "error", err}
	if r != nil {
		fields = append(fields, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	}

	switch {
	case status >= 500:
		s.log().Error("request error", fields...)
		message = "internal error"
	case status >= 400 && shouldWarnClientError(status):
		s.log().Warn("request rejected", fields...)
	case status >= 400:
		s.log().Debug("request rejected", fields...)
	}

	s.writeJSON(w, status, api.ErrorResponse{Error: message, Code: code, ErrorCode: numericCode})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("write json response", "status", status, "error", err)
	}
}

type apiError struct {
	status  int
	code    string
	errCode int
	err     error
}

func (e apiError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e apiError) Unwrap() error {
	return e.err
}

func makeAPIError(status int, code string, errCode int, err error) error {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}

	var existing apiError
	if errors.As(err, &existing) {
		if existing.status != 0 {
			return existing
		}
	}

	return apiError{status: status, code: code, errCode: errCode, err: err}
}

func badRequest(err error) error {
	return badRequestCode(err, ErrCodeInvalidArgument)
}

func badRequestCode(err error, code int) error {
	return makeAPIError(http.StatusBadRequest, "invalid_argument", code, err)
}

func notFound(err error) error {
	return makeAPIError(http.StatusNotFound, "not_found", ErrCodeFileNotFound, err)
}

func internalError(err error) error {
	return makeAPIError(http.StatusInternalServerError, "internal", ErrCodeInternal, err)
}

func storeFailure(err error) error {
	return makeAPIError(http.StatusInternalServerError, "internal", ErrCodeStoreFailure, err)
}

func blobFailure(err error) error {
	return makeAPIError(http.StatusInternalServerError, "internal", ErrCodeBlobFailure, err)
}

func httpStatusFromError(err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) {
		return apiErr.status
	}
	return http.StatusInternalServerError
}

func errorCode(status int, err error) string {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.code != "" {
		return apiErr.code
	}
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "resource_exhausted"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return ""
	}
}

func errorNumericCode(status int, err error) int {
	var apiErr apiError
	if errors.As(err, &apiErr) && apiErr.errCode > 0 {
		return apiErr.errCode
	}
	return defaultErrorCodeByStatus(status)
}

func shouldWarnClientError(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

// classifyServiceError maps lifecycle errors onto HTTP-level api errors.
func classifyServiceError(err error) error {
	if err == nil {
		return nil
	}
	var existing apiError
	if errors.As(err, &existing) {
		return existing
	}
	if errors.Is(err, store.ErrNotFound) {
		return notFound(fmt.Errorf("file not found"))
	}
	var deleteErr *blobstore.DeleteError
	if errors.As(err, &deleteErr) {
		return blobFailure(err)
	}
	var writeErr *blobstore.WriteError
	if errors.As(err, &writeErr) {
		return blobFailure(err)
	}
	var accessErr *blobstore.AccessError
	if errors.As(err, &accessErr) {
		return makeAPIError(http.StatusNotFound, "not_found", ErrCodeBlobMissing, err)
	}
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		return storeFailure(err)
	}
	return internalError(err)
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	classified := classifyServiceError(err)
	s.writeErrorReq(w, r, httpStatusFromError(classified), classified)
}

func (s *Server) withLimiter(w http.ResponseWriter, r *http.Request, limiter chan struct{}, name string, fn func()) {
	if !s.acquireLimiter(limiter, w, r, name) {
		return
	}
	defer s.releaseLimiter(limiter)
	fn()
}

func (s *Server) pathIDOrBadRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := requirePathID(r)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}

func requirePathID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequestCode(fmt.Errorf("invalid id"), ErrCodeInvalidID)
	}
	return id, nil
}

func stateFilter(r *http.Request) (models.FileState, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("state"))
	if raw == "" {
		return models.FileActive, nil
	}
	state, err := models.ParseFileState(raw)
	if err != nil {
		return "", badRequestCode(err, ErrCodeInvalidState)
	}
	return state, nil
}

func fileResponse(record models.FileRecord) api.FileResponse {
	return api.FileResponse{
		ID:          record.ID,
		Name:        record.Name,
		MediaType:   record.MediaType,
		PreviewKind: string(record.PreviewKind),
		SizeBytes:   record.SizeBytes,
		ImportedAt:  record.ImportedAt,
		TrashedAt:   record.TrashedAt,
		State:       string(record.State),
	}
}

func fileResponses(records []models.FileRecord) []api.FileResponse {
	out := make([]api.FileResponse, 0, len(records))
	for _, record := range records {
		out = append(out, fileResponse(record))
	}
	return out
}
