package handler

import (
	"encoding/json"
	"net/http"

	"github.com/matchclub-api/internal/application/authn"
	"github.com/matchclub-api/internal/domain"
	"github.com/matchclub-api/internal/pkg/validate"
)

// AuthHandler handles the passwordless login endpoints.
type AuthHandler struct {
	svc authn.Service
}

func NewAuthHandler(svc authn.Service) *AuthHandler { return &AuthHandler{svc: svc} }

// RequestCode issues (or refreshes) an entry code and emails it.
func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.IssueCode(r.Context(), req.Email); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "authorization code sent"})
}

// Login verifies the submitted code and answers with a fresh session id.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	token, err := h.svc.Authenticate(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{SessionID: token})
}
