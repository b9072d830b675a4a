package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"cheapeats/internal/adapters/observability"
	"cheapeats/internal/domain"
)

type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, _ := json.Marshal(v)
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key).Err()
}

const recentKey = "locations:recent"

// PushRecent prepends a resolved location to the recent-locations list,
// deduping by display name and keeping the newest max entries.
func (r *Cache) PushRecent(ctx context.Context, loc domain.ResolvedLocation, max int) error {
	existing, err := r.Recent(ctx, max)
	if err != nil {
		return err
	}
	pipe := r.c.TxPipeline()
	pipe.Del(ctx, recentKey)
	b, _ := json.Marshal(loc)
	pipe.RPush(ctx, recentKey, b)
	for _, e := range existing {
		if e.DisplayName == loc.DisplayName {
			continue
		}
		eb, _ := json.Marshal(e)
		pipe.RPush(ctx, recentKey, eb)
	}
	pipe.LTrim(ctx, recentKey, 0, int64(max-1))
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to max recent locations, newest first.
func (r *Cache) Recent(ctx context.Context, max int) ([]domain.ResolvedLocation, error) {
	vals, err := r.c.LRange(ctx, recentKey, 0, int64(max-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]domain.ResolvedLocation, 0, len(vals))
	for _, v := range vals {
		var loc domain.ResolvedLocation
		if err := json.Unmarshal([]byte(v), &loc); err != nil {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}
