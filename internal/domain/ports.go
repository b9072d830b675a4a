package domain

import (
	"context"
	"errors"
)

// Adapter error taxonomy. All three mean "use fallback" to callers; the
// distinction only matters for logs and metrics.
var (
	ErrNotConfigured = errors.New("provider not configured")
	ErrUpstream      = errors.New("upstream unavailable")
	ErrParse         = errors.New("unexpected upstream payload")
)

// Location resolution failures surfaced to the HTTP layer as 4xx.
var (
	ErrInvalidZip  = errors.New("invalid zip code format")
	ErrZipNotFound = errors.New("zip code not found")
	ErrNoAddress   = errors.New("no address found for coordinates")
)

// PlaceSource is a category-filtered circular place search against one
// third-party provider.
type PlaceSource interface {
	Nearby(ctx context.Context, center Coordinates, radiusMeters int) ([]Place, error)
}

// ZipGeocoder turns a validated US zip code into a coordinate.
type ZipGeocoder interface {
	Lookup(ctx context.Context, zip string) (ResolvedLocation, error)
}

// ReverseGeocoder turns a coordinate into a human-readable locality.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, c Coordinates) (Address, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
