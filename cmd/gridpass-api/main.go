// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gridpass/internal/ai"
	"gridpass/internal/config"
	httptransport "gridpass/internal/http"
	"gridpass/internal/infra"
	"gridpass/internal/logging"
	"gridpass/internal/maps"
	"gridpass/internal/metrics"
	"gridpass/internal/modules/anchor"
	"gridpass/internal/modules/battery"
	"gridpass/internal/modules/negotiator"
	"gridpass/internal/modules/pricing"
	"gridpass/internal/modules/registry"
	"gridpass/internal/modules/session"
	"gridpass/internal/modules/telemetry"
)

func main() {
	log := logging.New("gridpass-api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var telemetryStore telemetry.Store = telemetry.NewMemoryStore()
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("db init failed")
		}
		defer dbPool.Close()
		telemetryStore = telemetry.NewPGStore(dbPool)
		log.Info().Msg("telemetry backed by postgres")
	}

	var anchorStore anchor.Store = anchor.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		defer redisClient.Close()
		anchorStore = anchor.NewRedisStore(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("anchors backed by redis")
	}

	reg := registry.NewStore(registry.Seed())
	pricingSvc := pricing.NewService(telemetryStore, logging.New("pricing"))
	batterySvc := battery.NewService(telemetryStore, logging.New("battery"))

	var selector negotiator.Selector = negotiator.BaselineSelector{}
	if cfg.Oracle.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.Oracle.GeminiKey)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini init failed")
		}
		defer provider.Close()
		timeout := time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second
		selector = negotiator.NewOracleSelector(provider, timeout, logging.New("oracle"))
		log.Info().Msg("oracle-assisted selection enabled")
	}

	defaultStrategy, err := negotiator.ParseStrategy(cfg.Negotiator.DefaultStrategy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid default strategy")
	}

	negotiationMetrics := metrics.NewNegotiationMetrics(prometheus.DefaultRegisterer)
	negotiatorSvc := negotiator.NewService(
		reg, batterySvc, pricingSvc, selector, negotiationMetrics, logging.New("negotiator"),
	)

	if cfg.Maps.APIKey != "" {
		travel, err := maps.NewTravelService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("maps init failed")
		}
		negotiatorSvc.WithTravelService(travel)
		log.Info().Msg("drive-time enrichment enabled")
	}

	sessionSvc := session.NewService(
		session.NewStore(), reg, pricingSvc, anchorStore, logging.New("session"),
	)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Registry:        reg,
		Telemetry:       telemetryStore,
		Negotiator:      negotiatorSvc,
		Sessions:        sessionSvc,
		DefaultStrategy: defaultStrategy,
		Log:             logging.New("http"),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}
