package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/matchclub-api/internal/application/authn"
	"github.com/matchclub-api/internal/domain"
)

// SessionHeader carries the opaque session token on protected requests.
const SessionHeader = "Authentication-Session-Id"

// Session returns middleware gating every protected operation. It compares
// the presented token against the stored session token of the member named
// in the request body's email field — an equality check, nothing
// cryptographic. The body is restored so handlers can decode it again.
func Session(svc authn.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionHeader)
			if token == "" {
				http.Error(w, `{"error":"not authenticated"}`, http.StatusForbidden)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var peek struct {
				Email string `json:"email"`
			}
			if err := json.Unmarshal(body, &peek); err != nil || peek.Email == "" {
				http.Error(w, `{"error":"email required"}`, http.StatusBadRequest)
				return
			}

			ok, err := svc.Check(r.Context(), peek.Email, token)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					http.Error(w, `{"error":"member not found"}`, http.StatusNotFound)
					return
				}
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, `{"error":"not authenticated"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
