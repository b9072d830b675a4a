package app

import (
	"fmt"
	"math"
	"sort"

	"github.com/nyaruka/phonenumbers"

	"cheapeats/internal/domain"
)

const defaultImage = "https://images.unsplash.com/photo-1550547660-d9450f859349?w=400&h=300&fit=crop&q=80"

// areaCodes feeds placeholder phone synthesis; the 555-01XX block is
// reserved and never routes to a real subscriber.
var areaCodes = []string{"212", "310", "312", "713", "305", "206", "404", "617"}

// Normalizer fills the gaps providers leave in place records so every
// Place handed to the synthesizer or the restaurants endpoint is
// complete.
type Normalizer struct {
	rng Rand
}

func NewNormalizer(rng Rand) *Normalizer {
	return &Normalizer{rng: rng}
}

// Finish normalizes a provider place in ranked order: sorts by distance
// when distances exist, truncates to max, and fills missing fields.
func (n *Normalizer) Finish(places []domain.Place, max int) []domain.Place {
	sort.SliceStable(places, func(i, j int) bool {
		di, dj := places[i].DistanceMeters, places[j].DistanceMeters
		if di == nil || dj == nil {
			return false
		}
		return *di < *dj
	})
	if max > 0 && len(places) > max {
		places = places[:max]
	}
	out := make([]domain.Place, len(places))
	for i, p := range places {
		out[i] = n.fill(p)
	}
	return out
}

func (n *Normalizer) fill(p domain.Place) domain.Place {
	if p.Name == "" {
		p.Name = "Unknown Restaurant"
	}
	if p.Address == "" {
		p.Address = "Address not available"
	}
	if p.Rating == 0 {
		// plausible 3.5-5.0, one decimal
		p.Rating = math.Round((3.5+n.rng.Float64()*1.5)*10) / 10
	}
	if p.Phone == nil {
		phone := n.placeholderPhone()
		p.Phone = &phone
	}
	if p.Image == "" {
		p.Image = defaultImage
	}
	return p
}

// placeholderPhone builds a well-formed but fictional US number.
func (n *Normalizer) placeholderPhone() string {
	area := areaCodes[n.rng.Intn(len(areaCodes))]
	raw := fmt.Sprintf("+1%s555%04d", area, 100+n.rng.Intn(100))
	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}
