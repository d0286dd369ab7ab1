package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"foodcourt/api-gateway/internal/gateway"
	"foodcourt/config"
	"foodcourt/logger"
	"foodcourt/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api-gateway", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(cfg, &http.Client{Timeout: 30 * time.Second}, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api gateway starting", slog.String("addr", srv.Addr))
		return shutdown.Serve(gctx, srv, 10*time.Second)
	})
	if err := g.Wait(); err != nil {
		log.Error("api gateway stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func newHandler(cfg config.Config, client gateway.HTTPClient, log *slog.Logger) http.Handler {
	gw := gateway.NewGateway(gateway.Config{
		StorefrontSvcURL: cfg.StorefrontSvcURL,
		RateSvcURL:       cfg.RateSvcURL,
		AnalyticsSvcURL:  cfg.AnalyticsSvcURL,
	}, client, log)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(gw.SetupRoutes())
}
