package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/crisuscata/nutriscan-ai/config"
	"github.com/crisuscata/nutriscan-ai/routes"
	"github.com/crisuscata/nutriscan-ai/services"
	"github.com/crisuscata/nutriscan-ai/storage"
)

func main() {
	cfg := config.Load()

	if cfg.GeminiAPIKey == "" {
		log.Printf("warning: GEMINI_API_KEY is not set; image analysis will fail")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data directory: %v", err)
	}

	var store storage.Store
	switch cfg.StorageBackend {
	case "sqlite":
		s, err := storage.NewGormStore(filepath.Join(cfg.DataDir, "nutriscan.db"))
		if err != nil {
			log.Fatalf("open sqlite store: %v", err)
		}
		store = s
	case "file":
		store = storage.NewFileStore(filepath.Join(cfg.DataDir, "entries.json"))
	default:
		log.Fatalf("unknown storage backend %q", cfg.StorageBackend)
	}

	logSvc, err := services.NewLogService(store)
	if err != nil {
		log.Fatalf("load entry log: %v", err)
	}

	gemini := services.NewGeminiService(cfg)
	app := services.NewAppState(gemini, logSvc)

	r := routes.SetupRouter(app, gemini, filepath.Join(cfg.DataDir, "thumbs"))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
