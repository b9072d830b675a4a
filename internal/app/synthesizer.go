package app

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cheapeats/internal/domain"
)

// Rand is the injectable random source behind all synthesized fields.
// *rand.Rand satisfies it for seeded tests; production wiring uses
// LockedRand because handlers run concurrently.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// LockedRand is a mutex-guarded math/rand source.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand(seed int64) *LockedRand {
	return &LockedRand{r: rand.New(rand.NewSource(seed))}
}

func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

const (
	featuredProbability = 0.15
	minPoints           = 50
	maxPoints           = 300
)

// Synthesizer decides whether a place carries a deal and, if so, joins
// it with a template from the catalog.
type Synthesizer struct {
	rng  Rand
	prob float64 // deal probability per place
}

func NewSynthesizer(rng Rand, prob float64) *Synthesizer {
	if prob < 0 || prob > 1 {
		prob = 0.5
	}
	return &Synthesizer{rng: rng, prob: prob}
}

// Synthesize returns a deal for the place or nil. Callers filter nils.
// Repeated calls over the same place are intentionally not idempotent.
func (s *Synthesizer) Synthesize(place domain.Place) *domain.Deal {
	if s.rng.Float64() >= s.prob {
		return nil
	}

	category, brand := classify(place.Name, place.CuisineTags)
	tpl := s.pickTemplate(category, brand)

	deal := &domain.Deal{
		ID:            uuid.NewString(),
		Title:         tpl.Title,
		Description:   tpl.Description,
		Price:         tpl.Price,
		OriginalPrice: tpl.OriginalPrice,
		Discount:      domain.Discount(tpl.Price, tpl.OriginalPrice),
		Category:      tpl.Category,
		Instructions:  tpl.Instructions,
		ValidUntil:    tpl.Validity,
		Location:      place.Name,
		Address:       place.Address,
		Coordinates:   place.Coordinates,
		Phone:         place.Phone,
		Website:       place.Website,
		Rating:        place.Rating,
		Image:         place.Image,
		DistanceLabel: s.distanceLabel(place.DistanceMeters),
		TimeLeftLabel: s.timeLeft(tpl.Validity),
		IsFeatured:    s.rng.Float64() < featuredProbability,
		Points:        minPoints + s.rng.Intn(maxPoints-minPoints+1),
		SubmittedBy:   scoutNames[s.rng.Intn(len(scoutNames))],
		IsOfficial:    brand != "",
	}
	return deal
}

func (s *Synthesizer) pickTemplate(category domain.Category, brand string) domain.DealTemplate {
	if brand != "" {
		if list := brandTemplates[brand]; len(list) > 0 {
			return list[s.rng.Intn(len(list))]
		}
	}
	list := genericTemplates[category]
	if len(list) == 0 {
		list = genericTemplates[domain.CategoryDiner]
	}
	return list[s.rng.Intn(len(list))]
}

func (s *Synthesizer) distanceLabel(meters *float64) string {
	if meters != nil {
		return domain.MilesLabel(*meters)
	}
	// plausible 0.3-9.9 miles when the provider gave no distance
	miles := 0.3 + s.rng.Float64()*9.6
	return fmt.Sprintf("%.1f miles", math.Round(miles*10)/10)
}

func (s *Synthesizer) timeLeft(validity string) string {
	if strings.Contains(validity, "Ongoing") || strings.Contains(validity, "Daily") {
		return "Ongoing"
	}
	return fmt.Sprintf("%dh %dm", 1+s.rng.Intn(8), s.rng.Intn(60))
}
