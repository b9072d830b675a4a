package bigdatacloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cheapeats/internal/adapters/observability"
	"cheapeats/internal/domain"
)

// Client wraps BigDataCloud's keyless client-side reverse geocoder.
// Used on the GPS resolution path only; the richer Geoapify reverse
// geocoder backs /api/geocode.
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
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	Postcode             string `json:"postcode"`
	CountryName          string `json:"countryName"`
}

// Reverse resolves a coordinate to a locality-level address.
func (c *Client) Reverse(ctx context.Context, coord domain.Coordinates) (domain.Address, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%g", coord.Lat))
	q.Set("longitude", fmt.Sprintf("%g", coord.Lng))
	q.Set("localityLanguage", "en")
	u := c.base + "/data/reverse-geocode-client?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Address{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cheapeats/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("bigdatacloud", "reverse", 0, time.Since(start))
		if ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Address{}, ctx.Err()
		}
		return domain.Address{}, fmt.Errorf("bigdatacloud: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("bigdatacloud", "reverse", resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Address{}, fmt.Errorf("bigdatacloud: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}
	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Address{}, fmt.Errorf("bigdatacloud: %w: %v", domain.ErrParse, err)
	}

	city := out.City
	if city == "" {
		city = out.Locality
	}
	if city == "" && out.PrincipalSubdivision == "" {
		return domain.Address{}, domain.ErrNoAddress
	}
	addr := domain.Address{
		City:     city,
		State:    out.PrincipalSubdivision,
		Country:  out.CountryName,
		Postcode: out.Postcode,
	}
	addr.Formatted = formatLabel(addr)
	return addr, nil
}

// formatLabel renders "City, State 12345", dropping empty parts.
func formatLabel(a domain.Address) string {
	label := a.City
	if a.State != "" {
		if label != "" {
			label += ", "
		}
		label += a.State
	}
	if a.Postcode != "" {
		label += " " + a.Postcode
	}
	return strings.TrimSpace(label)
}
