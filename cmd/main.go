package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/person-backend/internal/app"
	"github.com/yungbote/person-backend/internal/config"
	"github.com/yungbote/person-backend/internal/platform/logger"
	"github.com/yungbote/person-backend/internal/platform/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to init app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	log.Info("Starting person-backend",
		"addr", cfg.HTTP.Addr,
		"person_store", cfg.Stores.Person,
		"person_record_store", cfg.Stores.PersonRecord,
	)
	if err := a.Run(ctx); err != nil {
		log.Error("Server stopped with error", "error", err)
		a.Close()
		os.Exit(1)
	}
	log.Info("Server stopped")
}
