// Command warmup pre-resolves a set of popular zip codes and primes the
// deals cache for each, so the first users in those areas get warm
// responses.
package main

import (
	"context"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"cheapeats/internal/adapters/geoapify"
	"cheapeats/internal/adapters/googleplaces"
	"cheapeats/internal/adapters/observability"
	redisad "cheapeats/internal/adapters/redis"
	"cheapeats/internal/adapters/zippopotam"
	"cheapeats/internal/app"
	"cheapeats/internal/domain"
	"cheapeats/internal/shared"
)

// popularZips mirrors the suggestions shown in the location picker.
var popularZips = []string{"10001", "90210", "60601", "77001", "33101", "98101"}

const workers = 3

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	log.Info().Int("zips", len(popularZips)).Int("workers", workers).Msg("warmup starting")

	var source domain.PlaceSource = geoapify.New(cfg.GeoapifyBase, cfg.GeoapifyKey, cfg.UpstreamRPS)
	if cfg.PlacesProvider == "google" {
		source = googleplaces.New(cfg.GoogleBase, cfg.GoogleKey, cfg.UpstreamRPS)
	}
	zips := zippopotam.New(cfg.ZippopotamBase)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	rng := app.NewLockedRand(time.Now().UnixNano())
	synth := app.NewSynthesizer(rng, cfg.DealProbability)
	norm := app.NewNormalizer(rng)
	pipeline := app.NewPipeline(source, synth, norm, app.NewFallbackProvider(), cache, cfg.CacheTTL, cfg.MaxDeals)

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for _, zip := range popularZips {
		zip := zip

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			loc, err := zips.Lookup(ctx, zip)
			if err != nil {
				log.Warn().Str("zip", zip).Err(err).Msg("zip resolve failed")
				return
			}
			resp := pipeline.Deals(ctx, loc, cfg.DefaultRadius)
			log.Info().
				Str("zip", zip).
				Str("area", loc.DisplayName).
				Int("deals", len(resp.Deals)).
				Bool("real", resp.IsRealData).
				Msg("warmed")
		}()
	}

	wg.Wait()
	log.Info().Msg("warmup completed")
}
