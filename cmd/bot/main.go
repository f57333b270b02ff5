package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/redditlens/persona-bot/internal/analysis"
	"github.com/redditlens/persona-bot/internal/config"
	"github.com/redditlens/persona-bot/internal/notifications"
	"github.com/redditlens/persona-bot/internal/persona"
	"github.com/redditlens/persona-bot/internal/reddit"
	"github.com/redditlens/persona-bot/internal/scheduler"
	"github.com/redditlens/persona-bot/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Reddit Persona Bot")

	// Initialize report storage
	storageClient, err := newStorage(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize notification service (optional)
	var notifier notifications.NotificationInterface
	if svc := notifications.NewService(cfg); svc.Enabled() {
		notifier = svc
	}

	// Initialize the persona pipeline
	redditClient := reddit.NewClient(cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent)
	personaService := persona.NewService(cfg, redditClient, storageClient, notifier)

	// Initialize report cleanup scheduler
	schedulerService := scheduler.NewService(cfg)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	// Set up HTTP server
	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(personaService)).Methods("GET")
	router.HandleFunc("/analyze", analyzeHandler(personaService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func newStorage(cfg *config.Config) (storage.StorageInterface, error) {
	if cfg.StorageBackend == "azure" {
		return storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
	}
	return storage.NewLocalStorage(cfg.OutputDir)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(personaService *persona.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := personaService.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func analyzeHandler(personaService *persona.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "missing 'url' in request body")
			return
		}

		filename, report, err := personaService.Analyze(r.Context(), req.URL)
		if err != nil {
			logrus.Errorf("Analysis failed for %s: %v", req.URL, err)
			writeError(w, statusForError(err), err.Error())
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(report)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidProfileURL):
		return http.StatusBadRequest
	case errors.Is(err, reddit.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, persona.ErrWriteFailure):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
