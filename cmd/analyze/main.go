package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/redditlens/persona-bot/internal/config"
	"github.com/redditlens/persona-bot/internal/persona"
	"github.com/redditlens/persona-bot/internal/reddit"
	"github.com/redditlens/persona-bot/internal/storage"
)

// One-shot persona analysis for a single profile URL.
// Usage: go run ./cmd/analyze -url https://reddit.com/user/someone
func main() {
	url := flag.String("url", "", "Reddit profile URL to analyze")
	limit := flag.Int("limit", 0, "max posts and comments to fetch (default from FETCH_LIMIT)")
	out := flag.String("out", "", "output directory (default from OUTPUT_DIR)")
	flag.Parse()

	if *url == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -url <reddit profile URL> [-limit N] [-out DIR]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *limit > 0 {
		cfg.FetchLimit = *limit
	}
	if *out != "" {
		cfg.OutputDir = *out
	}

	store, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	redditClient := reddit.NewClient(cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent)
	service := persona.NewService(cfg, redditClient, store, nil)

	filename, _, err := service.Analyze(context.Background(), *url)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Println("Persona saved to:", filepath.Join(cfg.OutputDir, filename))
}
