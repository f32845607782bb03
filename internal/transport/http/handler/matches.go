package handler

import (
	"encoding/json"
	"net/http"

	"github.com/matchclub-api/internal/application/match"
	"github.com/matchclub-api/internal/domain"
	"github.com/matchclub-api/internal/pkg/validate"
)

// MatchHandler handles the protected match record endpoints.
type MatchHandler struct {
	svc match.Service
}

func NewMatchHandler(svc match.Service) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	matches, err := h.svc.ListByMember(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	m, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
