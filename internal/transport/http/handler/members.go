package handler

import (
	"encoding/json"
	"net/http"

	"github.com/matchclub-api/internal/application/member"
	"github.com/matchclub-api/internal/domain"
	"github.com/matchclub-api/internal/pkg/validate"
)

// MemberHandler handles the protected member profile endpoints.
type MemberHandler struct {
	svc member.Service
}

func NewMemberHandler(svc member.Service) *MemberHandler { return &MemberHandler{svc: svc} }

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	var req domain.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.svc.Get(r.Context(), req.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSafeMember(m))
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.Update(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MemberHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.svc.UpdateAvatar(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
