package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rvanes/boodschappen/internal/chat"
	"github.com/rvanes/boodschappen/internal/database"
	"github.com/rvanes/boodschappen/internal/logging"
	"github.com/rvanes/boodschappen/internal/recipe"
	"github.com/rvanes/boodschappen/internal/server"
)

func main() {
	// .env is optional; real env vars win either way.
	godotenv.Load()

	logger := logging.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	port := os.Getenv("BOODSCHAPPEN_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("BOODSCHAPPEN_DB_PATH")
	if dbPath == "" {
		dbPath = "boodschappen.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var recipeOpts []recipe.Option
	if u := os.Getenv("MEALDB_BASE_URL"); u != "" {
		recipeOpts = append(recipeOpts, recipe.WithBaseURL(u))
	}
	recipeClient := recipe.NewClient(recipeOpts...)

	var chatOpts []chat.Option
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		chatOpts = append(chatOpts, chat.WithBaseURL(u))
	}
	if m := os.Getenv("OPENAI_MODEL"); m != "" {
		chatOpts = append(chatOpts, chat.WithModel(m))
	}
	chatClient := chat.NewClient(os.Getenv("OPENAI_API_KEY"), chatOpts...)
	if !chatClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, chat suggestions disabled")
	}

	srv := server.New(db, recipeClient, chatClient, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("boodschappen running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}

	// Release the change-notification subscription exactly once.
	if err := srv.Synchronizer().Close(); err != nil {
		logger.Error("close synchronizer", "error", err)
	}
}
