package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/flickpick/server/cliparse"
	"github.com/flickpick/server/db"
	"github.com/flickpick/server/middleware"
	"github.com/flickpick/server/models"
	"github.com/flickpick/server/realtime"
	"github.com/flickpick/server/router"
	"github.com/flickpick/server/store"
	"github.com/flickpick/server/tmdb"
)

func main() {
	var err error

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}

	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	st := store.New(dbConn)

	// Realtime fanout: every store mutation is broadcast to session
	// subscribers, and swipe bursts trigger a debounced match recompute.
	hub := realtime.NewHub()
	relay := realtime.NewRelay(hub, realtime.MatchDebounceWindow, func(sessionID string) ([]models.Match, error) {
		return st.ComputeMatches(context.Background(), sessionID)
	})
	defer relay.Stop()
	st.SetNotifier(relay)

	var tmdbClient *tmdb.Client
	if cfg.TMDBAPIKey != "" {
		tmdbClient = tmdb.NewClient(cfg.TMDBAPIKey)
	} else {
		slog.Warn("TMDB_API_KEY not set, catalog building disabled")
	}

	// Create router
	mux := router.NewRouter(dbConn, st, hub, tmdbClient)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
