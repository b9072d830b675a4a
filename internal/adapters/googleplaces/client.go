package googleplaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"cheapeats/internal/adapters/observability"
	"cheapeats/internal/domain"
)

const fallbackImage = "https://images.unsplash.com/photo-1550547660-d9450f859349?w=400&h=300&fit=crop&q=80"

// Client wraps the Google Places nearby-search API.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 5 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ---- wire shapes (nearby search) ----

type searchResponse struct {
	Status  string   `json:"status"`
	Results []result `json:"results"`
}

type result struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level"`
	Types            []string `json:"types"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

// Nearby searches restaurants around the center.
func (c *Client) Nearby(ctx context.Context, center domain.Coordinates, radiusMeters int) ([]domain.Place, error) {
	if c.key == "" {
		return nil, fmt.Errorf("googleplaces: %w", domain.ErrNotConfigured)
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%g,%g", center.Lat, center.Lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("type", "restaurant")
	q.Set("key", c.key)
	u := c.base + "/maps/api/place/nearbysearch/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cheapeats/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("googleplaces", "nearbysearch", 0, time.Since(start))
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("googleplaces: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("googleplaces", "nearbysearch", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("googleplaces: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}
	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("googleplaces: %w: %v", domain.ErrParse, err)
	}
	switch sr.Status {
	case "OK", "ZERO_RESULTS":
	case "REQUEST_DENIED", "INVALID_REQUEST":
		return nil, fmt.Errorf("googleplaces: %w: status %s", domain.ErrNotConfigured, sr.Status)
	default:
		return nil, fmt.Errorf("googleplaces: %w: status %s", domain.ErrUpstream, sr.Status)
	}

	places := make([]domain.Place, 0, len(sr.Results))
	for i, r := range sr.Results {
		places = append(places, c.mapResult(r, i))
	}
	return places, nil
}

func (c *Client) mapResult(r result, idx int) domain.Place {
	id := r.PlaceID
	if id == "" {
		id = fmt.Sprintf("restaurant_%d", idx)
	}
	out := domain.Place{
		ID:          id,
		Name:        r.Name,
		Address:     r.Vicinity,
		Rating:      r.Rating,
		RatingCount: r.UserRatingsTotal,
		PriceLevel:  r.PriceLevel,
		CuisineTags: r.Types,
		Coordinates: domain.Coordinates{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Image:       c.photoURL(r),
	}
	if r.OpeningHours != nil {
		out.OpenNow = r.OpeningHours.OpenNow
	}
	return out
}

func (c *Client) photoURL(r result) string {
	if len(r.Photos) == 0 || r.Photos[0].PhotoReference == "" {
		return fallbackImage
	}
	q := url.Values{}
	q.Set("maxwidth", "400")
	q.Set("photoreference", r.Photos[0].PhotoReference)
	q.Set("key", c.key)
	return c.base + "/maps/api/place/photo?" + q.Encode()
}
