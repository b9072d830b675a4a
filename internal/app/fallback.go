package app

import (
	"fmt"

	"cheapeats/internal/domain"
)

// region maps a coordinate bounding box to the label used to
// parameterize fallback addresses.
type region struct {
	name           string
	minLat, maxLat float64
	minLng, maxLng float64
}

var regions = []region{
	{"New York, NY", 40.4, 41.0, -74.3, -73.6},
	{"Los Angeles, CA", 33.6, 34.4, -118.7, -117.9},
	{"Chicago, IL", 41.6, 42.1, -88.0, -87.4},
	{"Houston, TX", 29.5, 30.2, -95.8, -95.0},
	{"Miami, FL", 25.6, 26.0, -80.5, -80.0},
	{"Seattle, WA", 47.4, 47.8, -122.5, -122.1},
}

func regionFor(c domain.Coordinates) string {
	for _, r := range regions {
		if c.Lat >= r.minLat && c.Lat <= r.maxLat && c.Lng >= r.minLng && c.Lng <= r.maxLng {
			return r.name
		}
	}
	return "Your Area"
}

// FallbackProvider serves curated content when live providers are
// unavailable. It never fails and never touches the network.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider { return &FallbackProvider{} }

type mockSeed struct {
	title, description, price, origPrice string
	category                             domain.Category
	location, street                     string
	instructions, validity               string
	distance, timeLeft                   string
	rating                               float64
	featured                             bool
	points                               int
	submittedBy                          string
}

var mockSeeds = []mockSeed{
	{"Half-Price Happy Hour Wings", "All wing flavors 50% off at the bar.", "$6.00", "$12.00", domain.CategoryHappyHr, "The Copper Tap", "88 Main St", "Sit in the bar area and order from the happy hour menu.", "Weekdays 4-7pm", "0.8 miles", "2h 15m", 4.5, true, 250, "WingLover23"},
	{"Two Slices & a Soda", "Lunchtime classic at a throwback price.", "$5.99", "$8.50", domain.CategoryPizza, "Corner Slice Pizzeria", "7 Carmine St", "Mention the lunch combo at the counter before 3pm.", "Daily until 3pm", "1.2 miles", "Ongoing", 4.6, false, 150, "PizzaFan"},
	{"Taco Tuesday $1.50 Street Tacos", "Carnitas, al pastor, or veggie.", "$1.50", "$3.00", domain.CategoryMexican, "La Cantina Azul", "205 E Houston St", "Dine-in only on Tuesdays; no coupon needed.", "Every Tuesday", "2.1 miles", "5h 40m", 4.3, false, 200, "TacoTuesday"},
	{"Free Egg Rolls over $25", "Two free egg rolls with any big order.", "FREE", "", domain.CategoryChinese, "Golden Wok Kitchen", "81 St Marks Pl", "Ask when placing a pickup or delivery order over $25.", "Ongoing", "1.7 miles", "Ongoing", 4.2, false, 120, "SushiMaster"},
	{"Bento Box Lunch Special", "Chef's bento with miso soup and salad.", "$11.95", "$16.95", domain.CategorySushi, "Sakura Garden", "32 Spring St", "Order the lunch bento before 2:30pm.", "Daily until 2:30pm", "3.4 miles", "Ongoing", 4.7, true, 280, "SushiMaster"},
	{"BOGO Lattes Afternoon", "Second latte of equal or lesser value free.", "BOGO", "", domain.CategoryCoffee, "Daily Grind Coffee", "14 Bleecker St", "Show this deal at the register; one per customer.", "Weekdays 2-5pm", "0.5 miles", "3h 5m", 4.4, false, 100, "PastaLover"},
	{"Early Bird Breakfast Plate", "Two eggs, toast, home fries and coffee.", "$6.99", "$10.50", domain.CategoryDiner, "Starlite Diner", "501 7th Ave", "Order the early bird special before 9am.", "Daily until 9am", "4.9 miles", "Ongoing", 4.1, false, 90, "BBQMaster"},
	{"Second Scoop Half Off", "Add another scoop for 50% off.", "50% OFF", "", domain.CategoryDesserts, "Sweet Spot Creamery", "290 Mulberry St", "Mention the deal when ordering; waffle cones excluded.", "Ongoing", "2.8 miles", "Ongoing", 4.8, false, 110, "CocktailConnoisseur"},
}

// MockDeals returns the curated deal list with addresses parameterized
// by the resolved region.
func (f *FallbackProvider) MockDeals(hint *domain.ResolvedLocation) []domain.Deal {
	area := "Your Area"
	center := DefaultLocation.Coordinates
	if hint != nil {
		area = regionFor(hint.Coordinates)
		center = hint.Coordinates
	}
	deals := make([]domain.Deal, 0, len(mockSeeds))
	for i, s := range mockSeeds {
		deals = append(deals, domain.Deal{
			ID:            fmt.Sprintf("mock_%d", i+1),
			Title:         s.title,
			Description:   s.description,
			Price:         s.price,
			OriginalPrice: s.origPrice,
			Discount:      domain.Discount(s.price, s.origPrice),
			Category:      s.category,
			Instructions:  s.instructions,
			ValidUntil:    s.validity,
			Location:      s.location,
			Address:       fmt.Sprintf("%s, %s", s.street, area),
			Coordinates:   center,
			DistanceLabel: s.distance,
			TimeLeftLabel: s.timeLeft,
			Rating:        s.rating,
			IsFeatured:    s.featured,
			Points:        s.points,
			SubmittedBy:   s.submittedBy,
			Image:         defaultImage,
		})
	}
	return deals
}

// MockRestaurants returns the curated NYC sample used when the places
// provider is unavailable.
func (f *FallbackProvider) MockRestaurants() []domain.Place {
	return []domain.Place{
		{ID: "1", Name: "Joe's Pizza", Address: "7 Carmine St, New York, NY 10014, United States", Rating: 4.5, RatingCount: 1250, PriceLevel: intp(2), OpenNow: boolp(true), Coordinates: domain.Coordinates{Lat: 40.7303, Lng: -74.0034}, DistanceMeters: floatp(245), Phone: strp("+1 212-366-1182"), CuisineTags: []string{"pizza", "italian"}, FacilityTags: []string{"takeaway", "delivery"}},
		{ID: "2", Name: "Katz's Delicatessen", Address: "205 E Houston St, New York, NY 10002, United States", Rating: 4.3, RatingCount: 8900, PriceLevel: intp(3), OpenNow: boolp(true), Coordinates: domain.Coordinates{Lat: 40.7223, Lng: -73.9873}, DistanceMeters: floatp(890), Phone: strp("+1 212-254-2246"), CuisineTags: []string{"deli", "american"}, FacilityTags: []string{"takeaway", "dine_in"}},
		{ID: "3", Name: "Xi'an Famous Foods", Address: "81 St Marks Pl, New York, NY 10003, United States", Rating: 4.2, RatingCount: 2100, PriceLevel: intp(2), OpenNow: boolp(false), Coordinates: domain.Coordinates{Lat: 40.7282, Lng: -73.9857}, DistanceMeters: floatp(1200), Phone: strp("+1 212-786-2068"), CuisineTags: []string{"chinese", "noodles"}, FacilityTags: []string{"takeaway", "delivery"}},
		{ID: "4", Name: "The Halal Guys", Address: "307 E 14th St, New York, NY 10003, United States", Rating: 4.1, RatingCount: 3400, PriceLevel: intp(1), OpenNow: boolp(true), Coordinates: domain.Coordinates{Lat: 40.7331, Lng: -73.9857}, DistanceMeters: floatp(650), Phone: strp("+1 347-527-1505"), CuisineTags: []string{"halal", "middle_eastern"}, FacilityTags: []string{"takeaway", "delivery", "outdoor_seating"}},
		{ID: "5", Name: "Lombardi's Pizza", Address: "32 Spring St, New York, NY 10012, United States", Rating: 4.4, RatingCount: 5600, PriceLevel: intp(2), OpenNow: boolp(true), Coordinates: domain.Coordinates{Lat: 40.7214, Lng: -73.9958}, DistanceMeters: floatp(1100), Phone: strp("+1 212-941-7994"), CuisineTags: []string{"pizza", "italian"}, FacilityTags: []string{"dine_in", "takeaway"}},
	}
}

func intp(i int) *int           { return &i }
func boolp(b bool) *bool        { return &b }
func floatp(f float64) *float64 { return &f }
func strp(s string) *string     { return &s }
