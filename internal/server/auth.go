package server

import (
	"fmt"
	"net/http"
	"strings"

	"filebin/internal/auth"
)

// withAuth enforces bearer-token auth when an API token hash is
// configured. Without a configured hash the API stays open, which is
// the expected mode for a loopback-only server.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.tokenHash == "" || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok || !auth.VerifyToken(s.tokenHash, token) {
			err := makeAPIError(http.StatusUnauthorized, "unauthorized", ErrCodeUnauthorized, fmt.Errorf("invalid or missing API token"))
			s.writeErrorReq(w, r, http.StatusUnauthorized, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
