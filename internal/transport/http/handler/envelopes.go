package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/matchclub-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SessionEnvelope wraps a successful login response.
type SessionEnvelope struct {
	SessionID string `json:"session_id"`
}

// SafeMember is the member view returned to clients: profile fields only,
// never the entry code or session token.
type SafeMember struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarKey string    `json:"avatar_key,omitempty"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

func toSafeMember(m *domain.Member) *SafeMember {
	if m == nil {
		return nil
	}
	return &SafeMember{
		Email:     m.Email,
		Name:      m.Name,
		AvatarKey: m.AvatarKey,
		Created:   m.CreatedAt,
		Updated:   m.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinels onto the wire contract. The two code
// failures answer with a message body so the frontend can show the exact
// phrasing; everything unexpected collapses to an internal failure.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "member not found")
	case errors.Is(err, domain.ErrInvalidCode):
		writeJSON(w, http.StatusForbidden, MessageEnvelope{Message: "Invalid authorization code"})
	case errors.Is(err, domain.ErrCodeExpired):
		writeJSON(w, http.StatusForbidden, MessageEnvelope{Message: "Expired authorization code"})
	case errors.Is(err, domain.ErrNotAuthenticated):
		writeError(w, http.StatusForbidden, "not authenticated")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
