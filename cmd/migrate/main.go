package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joedev/portfolio-api/internal/config"
	"github.com/joedev/portfolio-api/internal/db/migrate"
	"github.com/joedev/portfolio-api/internal/logging"
	"github.com/joedev/portfolio-api/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up (default)  apply pending postgres migrations (DATABASE_URL)
  down          roll back all postgres migrations
  indexes       create the mongo collection indexes (MONGODB_URI)`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Read()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up", "down":
		if err := migrate.Run(cfg.DatabaseURL, cmd); err != nil {
			logging.Fatal("migration failed", "direction", cmd, "error", err)
		}
		slog.Info("migrations completed", "direction", cmd)
	case "indexes":
		ensureMongoIndexes(cfg)
	default:
		usage()
	}
}

func ensureMongoIndexes(cfg *config.Config) {
	if cfg.MongoURI == "" {
		logging.Fatal("MONGODB_URI is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repository.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	repo := repository.NewMongoContactRepository(store.Collection(cfg.MongoCollection))
	if err := repo.EnsureIndexes(ctx); err != nil {
		logging.Fatal("create indexes failed", "error", err)
	}
	slog.Info("indexes ensured", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)
}
