package geoapify

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

// Client wraps the Geoapify Places and reverse-geocoding APIs.
// A missing key is not a construction error: every call degrades to
// domain.ErrNotConfigured so callers can substitute fallback data.
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

// ---- wire shapes ----

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties properties `json:"properties"`
	Geometry   struct {
		Coordinates []float64 `json:"coordinates"` // [lng, lat]
	} `json:"geometry"`
}

type properties struct {
	PlaceID      string        `json:"place_id"`
	OSMID        int64         `json:"osm_id"`
	Name         string        `json:"name"`
	Formatted    string        `json:"formatted"`
	AddressLine1 string        `json:"address_line1"`
	Street       string        `json:"street"`
	City         string        `json:"city"`
	State        string        `json:"state"`
	Country      string        `json:"country"`
	Postcode     string        `json:"postcode"`
	Rating       float64       `json:"rating"`
	RatingCount  int           `json:"rating_count"`
	PriceLevel   *int          `json:"price_level"`
	Distance     *float64      `json:"distance"`
	Categories   []string      `json:"categories"`
	Cuisine      cuisineList   `json:"cuisine"`
	Facilities   []string      `json:"facilities"`
	OpeningHours *openingHours `json:"opening_hours"`
	Contact      *contact      `json:"contact"`
}

type openingHours struct {
	OpenNow *bool `json:"open_now"`
}

type contact struct {
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// cuisineList tolerates both shapes Geoapify emits: a JSON array and a
// semicolon-joined string ("pizza;italian").
type cuisineList []string

func (c *cuisineList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*c = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, part := range strings.Split(s, ";") {
		if t := strings.TrimSpace(part); t != "" {
			*c = append(*c, t)
		}
	}
	return nil
}

// ---- public API ----

// Nearby runs a circular catering.restaurant search biased to the center.
func (c *Client) Nearby(ctx context.Context, center domain.Coordinates, radiusMeters int) ([]domain.Place, error) {
	if c.key == "" {
		return nil, fmt.Errorf("geoapify: %w", domain.ErrNotConfigured)
	}
	q := url.Values{}
	q.Set("categories", "catering.restaurant")
	q.Set("filter", fmt.Sprintf("circle:%g,%g,%d", center.Lng, center.Lat, radiusMeters))
	q.Set("bias", fmt.Sprintf("proximity:%g,%g", center.Lng, center.Lat))
	q.Set("limit", "20")
	q.Set("apiKey", c.key)

	var fc featureCollection
	if err := c.get(ctx, "places", c.base+"/v2/places?"+q.Encode(), &fc); err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(fc.Features))
	for _, f := range fc.Features {
		places = append(places, mapFeature(f))
	}
	return places, nil
}

// Reverse resolves a coordinate to a postal address.
func (c *Client) Reverse(ctx context.Context, coord domain.Coordinates) (domain.Address, error) {
	if c.key == "" {
		return domain.Address{}, fmt.Errorf("geoapify: %w", domain.ErrNotConfigured)
	}
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", coord.Lat))
	q.Set("lon", fmt.Sprintf("%g", coord.Lng))
	q.Set("apiKey", c.key)

	var fc featureCollection
	if err := c.get(ctx, "reverse", c.base+"/v1/geocode/reverse?"+q.Encode(), &fc); err != nil {
		return domain.Address{}, err
	}
	if len(fc.Features) == 0 {
		return domain.Address{}, domain.ErrNoAddress
	}
	p := fc.Features[0].Properties
	return domain.Address{
		Formatted: p.Formatted,
		Street:    p.Street,
		City:      p.City,
		State:     p.State,
		Country:   p.Country,
		Postcode:  p.Postcode,
	}, nil
}

func mapFeature(f feature) domain.Place {
	p := f.Properties
	id := p.PlaceID
	if id == "" && p.OSMID != 0 {
		id = fmt.Sprintf("osm_%d", p.OSMID)
	}
	address := p.Formatted
	if address == "" {
		address = p.AddressLine1
	}
	out := domain.Place{
		ID:           id,
		Name:         p.Name,
		Address:      address,
		Rating:       p.Rating,
		RatingCount:  p.RatingCount,
		PriceLevel:   p.PriceLevel,
		CuisineTags:  p.Cuisine,
		FacilityTags: p.Facilities,
	}
	if len(f.Geometry.Coordinates) == 2 {
		out.Coordinates = domain.Coordinates{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]}
	}
	if p.Distance != nil {
		d := *p.Distance
		out.DistanceMeters = &d
	}
	if p.OpeningHours != nil {
		out.OpenNow = p.OpeningHours.OpenNow
	}
	if p.Contact != nil {
		if p.Contact.Phone != "" {
			phone := p.Contact.Phone
			out.Phone = &phone
		}
		if p.Contact.Website != "" {
			site := p.Contact.Website
			out.Website = &site
		}
	}
	return out
}

// get performs one rate-limited GET and decodes JSON into out.
// No retries: a single failed call is the caller's cue to fall back.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cheapeats/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("geoapify", endpoint, 0, time.Since(start))
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ctx.Err()
		}
		return fmt.Errorf("geoapify %s: %w: %v", endpoint, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("geoapify", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("geoapify %s: %w: status %d", endpoint, domain.ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geoapify %s: %w: %v", endpoint, domain.ErrParse, err)
	}
	return nil
}
