package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rvanes/boodschappen/internal/chat"
	"github.com/rvanes/boodschappen/internal/handler"
	"github.com/rvanes/boodschappen/internal/listsync"
	"github.com/rvanes/boodschappen/internal/middleware"
	"github.com/rvanes/boodschappen/internal/recipe"
	"github.com/rvanes/boodschappen/internal/store"
	ws "github.com/rvanes/boodschappen/internal/websocket"
)

// Server wires the stores, the list synchronizer, the external-API clients
// and the HTTP surface together for one household.
type Server struct {
	db       *sql.DB
	hub      *ws.Hub
	list     *listsync.Synchronizer
	itemH    *handler.ItemHandler
	sessionH *handler.SessionHandler
	recipeH  *handler.RecipeHandler
	chatH    *handler.ChatHandler
	logger   *slog.Logger
}

func New(db *sql.DB, recipeClient *recipe.Client, chatClient *chat.Client, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	itemStore := store.NewItemStore(db)
	memberStore := store.NewMemberStore(db)
	sessionStore := store.NewSessionStore(db)

	// The synchronizer owns the hub subscription for the lifetime of the
	// process; Close releases it on shutdown.
	list := listsync.New(
		listsync.NewLocalStore(itemStore, hub),
		listsync.NewLocalSubscription(hub),
		logger.With("component", "listsync"),
	)

	itemH := handler.NewItemHandler(list, memberStore, logger.With("component", "item"))

	return &Server{
		db:       db,
		hub:      hub,
		list:     list,
		itemH:    itemH,
		sessionH: handler.NewSessionHandler(sessionStore, memberStore, logger.With("component", "session")),
		recipeH:  handler.NewRecipeHandler(recipeClient, list, itemH, logger.With("component", "recipe")),
		chatH:    handler.NewChatHandler(chatClient, list, logger.With("component", "chat")),
		logger:   logger,
	}
}

// Synchronizer returns the list synchronizer for teardown.
func (s *Server) Synchronizer() *listsync.Synchronizer {
	return s.list
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Shopping list
	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("POST /api/items", s.itemH.Create)
	mux.HandleFunc("POST /api/items/{id}/toggle", s.itemH.Toggle)
	mux.HandleFunc("DELETE /api/items/{id}", s.itemH.Delete)
	mux.HandleFunc("POST /api/items/clear-purchased", s.itemH.ClearPurchased)

	// Household identity
	mux.HandleFunc("GET /api/members", s.sessionH.Members)
	mux.HandleFunc("GET /api/session", s.sessionH.Get)
	mux.HandleFunc("PUT /api/session", s.sessionH.Set)
	mux.HandleFunc("DELETE /api/session", s.sessionH.Clear)

	// Recipe search and ingestion
	mux.HandleFunc("POST /api/recipes/search", s.recipeH.Search)
	mux.HandleFunc("POST /api/recipes/add", s.recipeH.Add)

	// Chat suggestions
	mux.HandleFunc("POST /api/chat/ask", s.chatH.Ask)
	mux.HandleFunc("POST /api/chat/suggest", s.chatH.Suggest)

	// Realtime change notifications
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
