package app

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"cheapeats/internal/domain"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// DefaultLocation anchors every request that arrives without a usable
// location.
var DefaultLocation = domain.ResolvedLocation{
	Coordinates: domain.Coordinates{Lat: 40.7128, Lng: -74.0060},
	DisplayName: "New York, NY",
}

const recentMax = 5

// RecentStore keeps the short list of recently resolved locations.
type RecentStore interface {
	PushRecent(ctx context.Context, loc domain.ResolvedLocation, max int) error
	Recent(ctx context.Context, max int) ([]domain.ResolvedLocation, error)
}

// LocationResolver canonicalizes user locations from zip codes or raw
// coordinates.
type LocationResolver struct {
	zips    domain.ZipGeocoder
	reverse domain.ReverseGeocoder
	recents RecentStore // may be nil
}

func NewLocationResolver(zips domain.ZipGeocoder, reverse domain.ReverseGeocoder, recents RecentStore) *LocationResolver {
	return &LocationResolver{zips: zips, reverse: reverse, recents: recents}
}

// ResolveZip validates and geocodes a US zip code. Lookups hit the zip
// service with the 5-digit prefix only.
func (r *LocationResolver) ResolveZip(ctx context.Context, zip string) (domain.ResolvedLocation, error) {
	zip = strings.TrimSpace(zip)
	if !zipPattern.MatchString(zip) {
		return domain.ResolvedLocation{}, domain.ErrInvalidZip
	}
	loc, err := r.zips.Lookup(ctx, zip[:5])
	if err != nil {
		return domain.ResolvedLocation{}, err
	}
	r.remember(ctx, loc)
	return loc, nil
}

// ResolveCoords labels a device coordinate with a locality name.
// Reverse-geocode failures degrade to a generic label instead of
// failing the operation.
func (r *LocationResolver) ResolveCoords(ctx context.Context, c domain.Coordinates) domain.ResolvedLocation {
	loc := domain.ResolvedLocation{Coordinates: c, DisplayName: "Current Location"}
	addr, err := r.reverse.Reverse(ctx, c)
	if err != nil {
		log.Debug().Err(err).Msg("reverse geocode failed; using generic label")
		return loc
	}
	if addr.Formatted != "" {
		loc.DisplayName = addr.Formatted
	}
	r.remember(ctx, loc)
	return loc
}

// Default returns the fixed fallback location.
func (r *LocationResolver) Default() domain.ResolvedLocation { return DefaultLocation }

// RecentLocations lists the newest resolved locations, if a store is
// wired.
func (r *LocationResolver) RecentLocations(ctx context.Context) []domain.ResolvedLocation {
	if r.recents == nil {
		return nil
	}
	locs, err := r.recents.Recent(ctx, recentMax)
	if err != nil {
		log.Warn().Err(err).Msg("recent locations read failed")
		return nil
	}
	return locs
}

func (r *LocationResolver) remember(ctx context.Context, loc domain.ResolvedLocation) {
	if r.recents == nil {
		return
	}
	if err := r.recents.PushRecent(ctx, loc, recentMax); err != nil {
		log.Warn().Err(err).Msg("recent locations write failed")
	}
}
