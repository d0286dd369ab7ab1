package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	httpapi "foodcourt/analytics-svc/internal/api/http"
	"foodcourt/analytics-svc/internal/service"
	"foodcourt/analytics-svc/internal/storage"
	"foodcourt/config"
	"foodcourt/logger"
	"foodcourt/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "analytics-svc", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	analytics := service.NewAnalyticsService(
		storage.NewPostgresRepository(db),
		storage.NewRedisBoards(rdb),
		log,
	)

	srv := &http.Server{
		Addr:              config.ListenAddr(cfg.AnalyticsPort),
		Handler:           httpapi.NewRouter(httpapi.NewHandler(analytics)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("analytics service starting", slog.String("addr", srv.Addr))
		return shutdown.Serve(gctx, srv, 10*time.Second)
	})
	if err := g.Wait(); err != nil {
		log.Error("analytics service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
