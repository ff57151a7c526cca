package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radiodns/core-go/internal/config"
	"radiodns/core-go/internal/dnsclient"
	"radiodns/core-go/internal/httpapi"
	"radiodns/core-go/internal/lookup"
	"radiodns/core-go/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := httpapi.NewLogger("info", "json")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := httpapi.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	client := dnsclient.NewClient(logger, dnsclient.Config{
		Server:  cfg.DNSServer,
		Net:     cfg.DNSNet,
		Timeout: cfg.DNSTimeout,
		Retries: cfg.DNSRetries,
	}, m)
	logger.Info().
		Str("server", client.Server()).
		Str("net", cfg.DNSNet).
		Dur("timeout", cfg.DNSTimeout).
		Int("retries", cfg.DNSRetries).
		Msg("dns resolver configured")

	h := httpapi.NewHandler(logger, client, m, lookup.Options{MaxConcurrency: cfg.ResolveConcurrency})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("radiodns listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("shutdown complete")
}
