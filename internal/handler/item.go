package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rvanes/boodschappen/internal/listsync"
	"github.com/rvanes/boodschappen/internal/model"
	"github.com/rvanes/boodschappen/internal/store"
)

// ItemHandler serves the shopping list. All mutations go through the
// synchronizer, so every response body is the freshly refetched snapshot —
// the client renders what the store holds, never a locally patched guess.
type ItemHandler struct {
	list    *listsync.Synchronizer
	members *store.MemberStore
	logger  *slog.Logger
}

func NewItemHandler(list *listsync.Synchronizer, members *store.MemberStore, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{list: list, members: members, logger: logger}
}

type itemRequest struct {
	Product  string `json:"product"`
	Quantity *int64 `json:"quantity"`
	AddedBy  string `json:"added_by"`
}

func (h *ItemHandler) snapshot() []model.ShoppingItem {
	items := h.list.Snapshot()
	if items == nil {
		items = []model.ShoppingItem{}
	}
	return items
}

// writeSyncError maps synchronizer errors onto HTTP statuses.
func (h *ItemHandler) writeSyncError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, listsync.ErrEmptyProduct), errors.Is(err, listsync.ErrNoMember):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, listsync.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, listsync.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	default:
		h.logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.AddedBy != "" {
		known, err := h.members.Exists(req.AddedBy)
		if err != nil {
			h.logger.Error("check member", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create item")
			return
		}
		if !known {
			writeError(w, http.StatusBadRequest, "unknown household member")
			return
		}
	}

	if err := h.list.AddItem(req.Product, req.Quantity, req.AddedBy); err != nil {
		h.writeSyncError(w, "create item", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.snapshot())
}

func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.list.Toggle(id); err != nil {
		h.writeSyncError(w, "toggle item", err)
		return
	}
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.list.Remove(id); err != nil {
		h.writeSyncError(w, "delete item", err)
		return
	}
	writeJSON(w, http.StatusOK, h.snapshot())
}

func (h *ItemHandler) ClearPurchased(w http.ResponseWriter, r *http.Request) {
	count, err := h.list.ClearPurchased()
	if err != nil {
		h.writeSyncError(w, "clear purchased", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": count,
		"items":   h.snapshot(),
	})
}
