package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"netmonitor/internal/config"
	"netmonitor/internal/httpapi"
	"netmonitor/internal/logging"
	"netmonitor/internal/repo/sqlite"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file: %v", err)
	}
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := sqlite.New(context.Background(), cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	api := httpapi.NewServer(logger, store, store)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
