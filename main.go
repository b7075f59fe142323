package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"statease/api"
	"statease/internal"
	"statease/internal/config"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := api.NewApp(cfg)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	internal.DefaultLogger.Info("upload limits: %d bytes, %d rows", cfg.Upload.MaxBytes, cfg.Upload.MaxRows)
	log.Printf("🚀 Starting StatEase server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, app.Handler()))
}
