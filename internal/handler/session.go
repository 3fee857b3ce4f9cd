package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rvanes/boodschappen/internal/model"
	"github.com/rvanes/boodschappen/internal/store"
)

// deviceHeader identifies the device whose identity selection is being read
// or changed; each device holds its selection under this single key.
const deviceHeader = "X-Device-ID"

// SessionHandler serves the household member set and the per-device
// identity selection.
type SessionHandler struct {
	sessions *store.SessionStore
	members  *store.MemberStore
	logger   *slog.Logger
}

func NewSessionHandler(sessions *store.SessionStore, members *store.MemberStore, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, members: members, logger: logger}
}

func (h *SessionHandler) Members(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List()
	if err != nil {
		h.logger.Error("list members", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []model.HouseholdMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get(deviceHeader)
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "missing "+deviceHeader+" header")
		return
	}

	name, err := h.sessions.Get(deviceID)
	if err != nil {
		h.logger.Error("get session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"member": name})
}

func (h *SessionHandler) Set(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get(deviceHeader)
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "missing "+deviceHeader+" header")
		return
	}

	var req struct {
		Member string `json:"member"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	known, err := h.members.Exists(req.Member)
	if err != nil {
		h.logger.Error("check member", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set session")
		return
	}
	if !known {
		writeError(w, http.StatusBadRequest, "unknown household member")
		return
	}

	if err := h.sessions.Set(deviceID, req.Member); err != nil {
		h.logger.Error("set session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"member": req.Member})
}

func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get(deviceHeader)
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "missing "+deviceHeader+" header")
		return
	}

	if err := h.sessions.Clear(deviceID); err != nil {
		h.logger.Error("clear session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
