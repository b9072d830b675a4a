package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv           string
	HTTPAddr         string
	MetricsAddr      string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	PlacesProvider   string // geoapify|google
	GeoapifyBase     string
	GeoapifyKey      string
	GoogleBase       string
	GoogleKey        string
	ZippopotamBase   string
	BigDataCloudBase string
	DealProbability  float64
	MaxDeals         int
	DefaultRadius    int
	UpstreamRPS      int
	CacheTTL         time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		MetricsAddr:      env("METRICS_ADDR", ""),
		RedisAddr:        env("REDIS_ADDR", "localhost:6379"),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		PlacesProvider:   env("PLACES_PROVIDER", "geoapify"),
		GeoapifyBase:     env("GEOAPIFY_BASE_URL", "https://api.geoapify.com"),
		GeoapifyKey:      env("GEOAPIFY_API_KEY", ""),
		GoogleBase:       env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com"),
		GoogleKey:        env("GOOGLE_PLACES_API_KEY", ""),
		ZippopotamBase:   env("ZIPPOPOTAM_BASE_URL", "https://api.zippopotam.us"),
		BigDataCloudBase: env("BIGDATACLOUD_BASE_URL", "https://api.bigdatacloud.net"),
		DealProbability:  atof("DEAL_PROBABILITY", 0.5),
		MaxDeals:         clamp(atoi("MAX_DEALS", 15), 1, 50),
		DefaultRadius:    atoi("DEFAULT_RADIUS_METERS", 16000),
		UpstreamRPS:      atoi("UPSTREAM_RPS", 5),
		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 120)) * time.Second,
	}
	if c.GeoapifyKey == "" && c.GoogleKey == "" {
		log.Warn().Msg("no places API key configured; deal responses will use fallback data")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
