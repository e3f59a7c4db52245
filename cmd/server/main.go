package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flipcard/backend/internal/api"
	"github.com/flipcard/backend/internal/infrastructure/config"
	"github.com/flipcard/backend/internal/service"
	"github.com/flipcard/backend/internal/source"
	"github.com/flipcard/backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seedExamples(db); err != nil {
		logger.Warn("failed to seed examples", "error", err)
	}

	fetcher := source.NewHTTPFetcher(cfg.FetchTimeout)
	loader := service.NewLoader(db, fetcher, logger)
	state := service.NewState()
	sessions := service.NewSessions()
	handler := api.NewHandler(db, loader, state, sessions, cfg.BaseURL, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// seedExamples installs the built-in sample data sets on first start.
func seedExamples(db *store.SQLiteStore) error {
	existing, err := db.ListExamples()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	examples := []store.Example{
		{
			ID:        "simple",
			Name:      "Exemple simple",
			Delimiter: ",",
			RawText: "bonjour,hello,greeting\n" +
				"chat,cat\n" +
				"chien,dog\n" +
				"maison,house\n" +
				"merci,thank you",
		},
		{
			ID:        "multiplication",
			Name:      "Tables de multiplication",
			Delimiter: ",",
			RawText: "3 x 4,12\n" +
				"6 x 7,42\n" +
				"8 x 9,72\n" +
				"7 x 7,49\n" +
				"9 x 6,54",
		},
	}

	for i := range examples {
		if err := db.SaveExample(&examples[i]); err != nil {
			return err
		}
	}
	return nil
}
