package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"cheapeats/internal/adapters/bigdatacloud"
	"cheapeats/internal/adapters/geoapify"
	"cheapeats/internal/adapters/googleplaces"
	server "cheapeats/internal/adapters/http_server"
	"cheapeats/internal/adapters/observability"
	redisad "cheapeats/internal/adapters/redis"
	"cheapeats/internal/adapters/zippopotam"
	"cheapeats/internal/app"
	"cheapeats/internal/domain"
	"cheapeats/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// upstream clients
	geo := geoapify.New(cfg.GeoapifyBase, cfg.GeoapifyKey, cfg.UpstreamRPS)
	var source domain.PlaceSource = geo
	if cfg.PlacesProvider == "google" {
		source = googleplaces.New(cfg.GoogleBase, cfg.GoogleKey, cfg.UpstreamRPS)
	}
	zips := zippopotam.New(cfg.ZippopotamBase)
	locality := bigdatacloud.New(cfg.BigDataCloudBase)

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	rng := app.NewLockedRand(time.Now().UnixNano())
	synth := app.NewSynthesizer(rng, cfg.DealProbability)
	norm := app.NewNormalizer(rng)
	fb := app.NewFallbackProvider()
	pipeline := app.NewPipeline(source, synth, norm, fb, cache, cfg.CacheTTL, cfg.MaxDeals)
	resolver := app.NewLocationResolver(zips, locality, cache)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Pipeline:      pipeline,
		Resolver:      resolver,
		Geocoder:      geo,
		DefaultRadius: cfg.DefaultRadius,
	})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("provider", cfg.PlacesProvider).
		Float64("deal_probability", cfg.DealProbability).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
