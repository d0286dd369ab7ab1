package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"foodcourt/config"
	"foodcourt/logger"
	httpapi "foodcourt/rate-svc/internal/api/http"
	"foodcourt/rate-svc/internal/service"
	"foodcourt/rate-svc/internal/storage"
	"foodcourt/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "rate-svc", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg, cfg.ReviewTopic)
	defer writer.Close()

	reviews := service.NewReviewService(
		repo,
		storage.NewRedisCache(rdb, cfg.ReviewMarkerTTL),
		storage.NewKafkaPublisher(writer),
		log,
	)

	srv := &http.Server{
		Addr:              config.ListenAddr(cfg.RatePort),
		Handler:           httpapi.NewRouter(httpapi.NewHandler(reviews)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("rate service starting", slog.String("addr", srv.Addr))
		return shutdown.Serve(gctx, srv, 10*time.Second)
	})
	if err := g.Wait(); err != nil {
		log.Error("rate service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
