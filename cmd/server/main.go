package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joedev/portfolio-api/internal/config"
	"github.com/joedev/portfolio-api/internal/handler"
	"github.com/joedev/portfolio-api/internal/logging"
	"github.com/joedev/portfolio-api/internal/repository"
	"github.com/joedev/portfolio-api/internal/service"
	"github.com/joedev/portfolio-api/internal/telemetry"
	"github.com/joedev/portfolio-api/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	providers, err := telemetry.NewProviders(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.OTLPInsecure)
	if err != nil {
		logging.Fatal("telemetry setup failed", "error", err)
	}
	providers.SetGlobal()
	metrics, err := telemetry.NewMetrics(providers.MeterProvider)
	if err != nil {
		logging.Fatal("register metrics failed", "error", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to connect to store", "driver", cfg.StoreDriver, "error", err)
	}

	if cfg.SharesSecret() {
		slog.Warn("ADMIN_TOKEN_SECRET not set; admin tokens are signed with the login secret")
	}
	if cfg.PublicListingEnabled {
		slog.Warn("public contact listing is enabled; GET /api/contacts exposes submissions without credentials")
	}

	tokens := auth.NewTokenManager([]byte(cfg.SigningSecret()), cfg.TokenTTL())
	contactService := service.NewContactService(store.contacts, metrics)
	adminAuthService := service.NewAdminAuthService(
		auth.NewSecretVerifier(cfg.AdminSecret, cfg.AdminPasswordHash), tokens, metrics)

	h := handler.New(store.db, cfg.CORSAllowedOrigin)
	contactHandler := handler.NewContactHandler(contactService, cfg.PublicListingEnabled)
	adminHandler := handler.NewAdminHandler(adminAuthService, contactService, tokens)
	mux := handler.Routes(h, contactHandler, adminHandler)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      telemetry.Middleware(providers.TracerProvider)(handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	store.close(shutdownCtx)
	if err := providers.Shutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

// contactStore bundles the repository selected by STORE_DRIVER with its
// health check and cleanup.
type contactStore struct {
	contacts repository.ContactRepository
	db       repository.DB
	close    func(ctx context.Context)
}

func openStore(ctx context.Context, cfg *config.Config) (*contactStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StoreMongo:
		ms, err := repository.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMongoContactRepository(ms.Collection(cfg.MongoCollection))
		if err := repo.EnsureIndexes(connectCtx); err != nil {
			slog.Warn("ensure mongo indexes failed", "error", err)
		}
		return &contactStore{
			contacts: repo,
			db:       ms,
			close: func(ctx context.Context) {
				if err := ms.Close(ctx); err != nil {
					slog.Warn("mongo disconnect", "error", err)
				}
			},
		}, nil

	case config.StorePostgres:
		pool, err := repository.NewPool(connectCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &contactStore{
			contacts: repository.NewPgContactRepository(pool),
			db:       pool,
			close:    func(context.Context) { pool.Close() },
		}, nil

	case config.StoreMemory:
		slog.Warn("using in-memory store; submissions are lost on restart")
		repo := repository.NewMemoryContactRepository()
		return &contactStore{contacts: repo, db: repo, close: func(context.Context) {}}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
