package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"cheapeats/internal/adapters/observability"
	"cheapeats/internal/domain"
)

// DealsResponse is the /api/nearby-deals payload.
type DealsResponse struct {
	Success    bool          `json:"success"`
	Deals      []domain.Deal `json:"deals"`
	IsRealData bool          `json:"isRealData"`
}

// RestaurantsResponse is the /api/restaurants payload.
type RestaurantsResponse struct {
	Success     bool           `json:"success"`
	Restaurants []domain.Place `json:"restaurants"`
	IsMockData  bool           `json:"isMockData,omitempty"`
}

// Pipeline composes the place source, synthesizer, and fallback into
// the one aggregation flow every deals route shares.
type Pipeline struct {
	source   domain.PlaceSource
	synth    *Synthesizer
	norm     *Normalizer
	fallback *FallbackProvider
	cache    domain.Cache // may be nil
	cacheTTL time.Duration
	maxDeals int
	sf       singleflight.Group
}

func NewPipeline(source domain.PlaceSource, synth *Synthesizer, norm *Normalizer, fb *FallbackProvider, cache domain.Cache, ttl time.Duration, maxDeals int) *Pipeline {
	if maxDeals <= 0 {
		maxDeals = 15
	}
	return &Pipeline{
		source:   source,
		synth:    synth,
		norm:     norm,
		fallback: fb,
		cache:    cache,
		cacheTTL: ttl,
		maxDeals: maxDeals,
	}
}

// Deals aggregates nearby deals for a resolved location. Upstream
// failures and empty synthesis both degrade to the fallback provider;
// the response is never an error and never empty.
func (p *Pipeline) Deals(ctx context.Context, loc domain.ResolvedLocation, radiusMeters int) DealsResponse {
	key := fmt.Sprintf("deals:%.2f:%.2f:%d", loc.Lat, loc.Lng, radiusMeters)
	if p.cache != nil {
		var cached DealsResponse
		if ok, _ := p.cache.Get(ctx, key, &cached); ok {
			return cached
		}
	}

	// collapse concurrent identical aggregations into one upstream call
	v, _, _ := p.sf.Do(key, func() (any, error) {
		return p.aggregate(ctx, loc, radiusMeters, key), nil
	})
	return v.(DealsResponse)
}

func (p *Pipeline) aggregate(ctx context.Context, loc domain.ResolvedLocation, radiusMeters int, key string) DealsResponse {
	places, err := p.source.Nearby(ctx, loc.Coordinates, radiusMeters)
	if err != nil {
		log.Warn().Err(err).Msg("place source failed; serving fallback deals")
		observability.ObserveFallback("/api/nearby-deals", fallbackReason(err))
		return DealsResponse{Success: true, Deals: p.fallback.MockDeals(&loc), IsRealData: false}
	}

	deals := make([]domain.Deal, 0, p.maxDeals)
	for _, place := range p.norm.Finish(places, p.maxDeals) {
		if deal := p.synth.Synthesize(place); deal != nil {
			deals = append(deals, *deal)
		}
	}
	if len(deals) == 0 {
		observability.ObserveFallback("/api/nearby-deals", "empty")
		return DealsResponse{Success: true, Deals: p.fallback.MockDeals(&loc), IsRealData: false}
	}

	resp := DealsResponse{Success: true, Deals: deals, IsRealData: true}
	if p.cache != nil {
		if err := p.cache.Set(ctx, key, resp, int(p.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Msg("deals cache write failed")
		}
	}
	return resp
}

// Restaurants returns normalized nearby places, degrading to the
// curated sample on any adapter failure.
func (p *Pipeline) Restaurants(ctx context.Context, center domain.Coordinates, radiusMeters int) RestaurantsResponse {
	places, err := p.source.Nearby(ctx, center, radiusMeters)
	if err != nil || len(places) == 0 {
		if err != nil {
			log.Warn().Err(err).Msg("place source failed; serving mock restaurants")
			observability.ObserveFallback("/api/restaurants", fallbackReason(err))
		} else {
			observability.ObserveFallback("/api/restaurants", "empty")
		}
		return RestaurantsResponse{Success: true, Restaurants: p.fallback.MockRestaurants(), IsMockData: true}
	}
	return RestaurantsResponse{Success: true, Restaurants: p.norm.Finish(places, 20)}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	default:
		return "upstream"
	}
}
