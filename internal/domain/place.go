package domain

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a normalized restaurant record from a places provider.
// Immutable once built; optional provider fields stay nil rather than
// zero so synthesis can tell "absent" from "0".
type Place struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Address        string      `json:"address"`
	Coordinates    Coordinates `json:"coordinates"`
	Rating         float64     `json:"rating"`
	RatingCount    int         `json:"userRatingsTotal"`
	DistanceMeters *float64    `json:"distance,omitempty"`
	Phone          *string     `json:"phone,omitempty"`
	Website        *string     `json:"website,omitempty"`
	PriceLevel     *int        `json:"priceLevel,omitempty"`
	OpenNow        *bool       `json:"isOpen,omitempty"`
	CuisineTags    []string    `json:"cuisine,omitempty"`
	FacilityTags   []string    `json:"facilities,omitempty"`
	Image          string      `json:"image,omitempty"`
}

type ResolvedLocation struct {
	Coordinates
	DisplayName string `json:"name"`
}

// Address is the reverse-geocoded shape returned by /api/geocode.
type Address struct {
	Formatted string `json:"formatted"`
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Country   string `json:"country,omitempty"`
	Postcode  string `json:"postcode,omitempty"`
}
