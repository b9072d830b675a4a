package zippopotam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cheapeats/internal/adapters/observability"
	"cheapeats/internal/domain"
)

// Client resolves US zip codes to coordinates via api.zippopotam.us.
// The service is keyless.
type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 5 * time.Second},
	}
}

type response struct {
	Places []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state abbreviation"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// Lookup resolves a zip to a coordinate plus a "City, ST 12345" label.
// The zip is assumed pre-validated by the resolver.
func (c *Client) Lookup(ctx context.Context, zip string) (domain.ResolvedLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/us/"+zip, nil)
	if err != nil {
		return domain.ResolvedLocation{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cheapeats/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("zippopotam", "lookup", 0, time.Since(start))
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.ResolvedLocation{}, ctx.Err()
		}
		return domain.ResolvedLocation{}, fmt.Errorf("zippopotam: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("zippopotam", "lookup", resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ResolvedLocation{}, domain.ErrZipNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.ResolvedLocation{}, fmt.Errorf("zippopotam: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("zippopotam: %w: %v", domain.ErrParse, err)
	}
	if len(out.Places) == 0 {
		return domain.ResolvedLocation{}, domain.ErrZipNotFound
	}

	p := out.Places[0]
	lat, latErr := strconv.ParseFloat(p.Latitude, 64)
	lng, lngErr := strconv.ParseFloat(p.Longitude, 64)
	if latErr != nil || lngErr != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("zippopotam: %w: bad coordinates %q,%q", domain.ErrParse, p.Latitude, p.Longitude)
	}
	return domain.ResolvedLocation{
		Coordinates: domain.Coordinates{Lat: lat, Lng: lng},
		DisplayName: fmt.Sprintf("%s, %s %s", p.PlaceName, p.State, zip),
	}, nil
}
