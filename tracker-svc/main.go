package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"foodcourt/config"
	"foodcourt/logger"
	"foodcourt/shutdown"
	"foodcourt/tracker-svc/internal/service"
	"foodcourt/tracker-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "tracker-svc", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	store := storage.NewStore(db, rdb, cfg.TimelineTTL)

	orderReader := config.NewKafkaReader(cfg, cfg.OrderTopic, cfg.TrackerGroup)
	defer orderReader.Close()
	reviewReader := config.NewKafkaReader(cfg, cfg.ReviewTopic, cfg.TrackerGroup)
	defer reviewReader.Close()

	srv := &http.Server{
		Addr:              config.ListenAddr(cfg.TrackerPort),
		Handler:           healthRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return service.NewConsumer(orderReader, store, log.With(slog.String("topic", cfg.OrderTopic))).Start(gctx)
	})
	g.Go(func() error {
		return service.NewConsumer(reviewReader, store, log.With(slog.String("topic", cfg.ReviewTopic))).Start(gctx)
	})
	g.Go(func() error {
		log.Info("tracker health endpoint starting", slog.String("addr", srv.Addr))
		return shutdown.Serve(gctx, srv, 5*time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Error("tracker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func healthRouter() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "tracker-svc",
		})
	}).Methods("GET")
	return r
}
