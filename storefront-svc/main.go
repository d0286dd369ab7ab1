package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"foodcourt/config"
	"foodcourt/logger"
	"foodcourt/shutdown"
	httpapi "foodcourt/storefront-svc/internal/api/http"
	"foodcourt/storefront-svc/internal/assistant"
	"foodcourt/storefront-svc/internal/service"
	"foodcourt/storefront-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront-svc", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	sessionOpts, err := sessionOptions(cfg)
	if err != nil {
		log.Error("invalid assistant configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg, cfg.OrderTopic)
	defer writer.Close()

	catalogSvc := service.NewCatalogService(repo, storage.NewCatalogCache(rdb, cfg.CatalogCacheTTL), log)
	sessions := service.NewSessionService(catalogSvc, sessionOpts, log)
	defer sessions.CloseAll()
	orderSvc := service.NewOrderService(
		repo,
		storage.NewKafkaPublisher(writer),
		service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		log,
	)

	handler := httpapi.NewHandler(catalogSvc, sessions, orderSvc)
	srv := &http.Server{
		Addr:              config.ListenAddr(cfg.StorefrontPort),
		Handler:           httpapi.NewRouter(handler, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("storefront service starting", slog.String("addr", srv.Addr))
		return shutdown.Serve(gctx, srv, 10*time.Second)
	})
	if cfg.SessionIdleTTL > 0 {
		g.Go(func() error {
			return sessions.RunEviction(gctx, cfg.SessionIdleTTL, evictionInterval(cfg.SessionIdleTTL))
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("storefront service stopped", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("storefront service stopped")
}

func sessionOptions(cfg config.Config) (service.SessionOptions, error) {
	policy, err := assistant.ParseConfirmationPolicy(cfg.ConfirmPolicy)
	if err != nil {
		return service.SessionOptions{}, err
	}
	if cfg.AssistantMaxUnits <= 0 {
		return service.SessionOptions{}, fmt.Errorf("assistant max quantity must be positive, got %d", cfg.AssistantMaxUnits)
	}
	return service.SessionOptions{
		Pacer: assistant.RandomPacer{Min: cfg.ThinkingMin, Max: cfg.ThinkingMax},
		ResolverOptions: []assistant.Option{
			assistant.WithConfirmationPolicy(policy),
			assistant.WithQuantityLimit(cfg.AssistantMaxUnits),
		},
	}, nil
}

func evictionInterval(idle time.Duration) time.Duration {
	interval := idle / 4
	if interval < time.Second {
		return time.Second
	}
	return interval
}
