package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rvanes/boodschappen/internal/chat"
	"github.com/rvanes/boodschappen/internal/listsync"
)

// ChatHandler forwards prompts to the chat completion endpoint.
type ChatHandler struct {
	client *chat.Client
	list   *listsync.Synchronizer
	logger *slog.Logger
}

func NewChatHandler(client *chat.Client, list *listsync.Synchronizer, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{client: client, list: list, logger: logger}
}

// Ask sends a single-turn prompt. An empty prompt falls back to the canned
// recipe question.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Prompt == "" {
		req.Prompt = chat.DefaultQuestion
	}

	answer, err := h.client.Ask(r.Context(), req.Prompt)
	if err != nil {
		h.logger.Error("chat ask", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// Suggest asks for recipe ideas based on the current snapshot's products.
func (h *ChatHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	items := h.list.Snapshot()
	products := make([]string, len(items))
	for i, it := range items {
		products[i] = it.Product
	}

	answer, err := h.client.SuggestFromList(r.Context(), products)
	if err != nil {
		h.logger.Error("chat suggest", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
