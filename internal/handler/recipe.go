package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rvanes/boodschappen/internal/listsync"
	"github.com/rvanes/boodschappen/internal/recipe"
)

// RecipeHandler searches the external recipe API and pushes a recipe's
// ingredients onto the shopping list.
type RecipeHandler struct {
	client *recipe.Client
	list   *listsync.Synchronizer
	itemH  *ItemHandler
	logger *slog.Logger
}

func NewRecipeHandler(client *recipe.Client, list *listsync.Synchronizer, itemH *ItemHandler, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{client: client, list: list, itemH: itemH, logger: logger}
}

func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.Term) == "" {
		writeError(w, http.StatusBadRequest, "term is required")
		return
	}

	recipes, err := h.client.Search(r.Context(), req.Term)
	if err != nil {
		h.logger.Error("recipe search", "term", req.Term, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Add looks a recipe up by id and inserts its ingredients as one batch.
func (h *RecipeHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID      string `json:"id"`
		AddedBy string `json:"added_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	rec, err := h.client.Lookup(r.Context(), req.ID)
	if err != nil {
		h.logger.Error("recipe lookup", "id", req.ID, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := recipe.AddToList(h.list, rec, req.AddedBy); err != nil {
		h.itemH.writeSyncError(w, "add ingredients", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.itemH.snapshot())
}
