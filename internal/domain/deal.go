package domain

import (
	"math"
	"strconv"
	"strings"
)

// Category is the closed set of labels the deal filter UI offers.
// Every synthesized or mocked deal must carry one of these, otherwise
// it becomes unreachable through category filters.
type Category string

const (
	CategoryPizza    Category = "Pizza & Italian"
	CategoryChinese  Category = "Chinese Cuisine"
	CategoryMexican  Category = "Mexican"
	CategoryBurgers  Category = "Burgers & Fast Food"
	CategorySushi    Category = "Sushi & Japanese"
	CategoryCoffee   Category = "Coffee & Bakery"
	CategoryHealthy  Category = "Healthy"
	CategoryDesserts Category = "Desserts"
	CategoryHappyHr  Category = "Happy Hour"
	CategoryDiner    Category = "American Diner"
)

// Categories lists every valid category in filter-display order.
func Categories() []Category {
	return []Category{
		CategoryPizza, CategoryChinese, CategoryMexican, CategoryBurgers,
		CategorySushi, CategoryCoffee, CategoryHealthy, CategoryDesserts,
		CategoryHappyHr, CategoryDiner,
	}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// DealTemplate is static curated offer content. Read-only reference data.
type DealTemplate struct {
	Title         string
	Description   string
	Price         string
	OriginalPrice string
	Category      Category
	Instructions  string
	Validity      string
}

// Deal joins one Place with one DealTemplate. Built per request, never
// mutated, never persisted.
type Deal struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Price         string      `json:"price"`
	OriginalPrice string      `json:"originalPrice,omitempty"`
	Discount      string      `json:"discount"`
	Category      Category    `json:"category"`
	Instructions  string      `json:"instructions,omitempty"`
	ValidUntil    string      `json:"validUntil,omitempty"`
	Location      string      `json:"location"`
	Address       string      `json:"address,omitempty"`
	Coordinates   Coordinates `json:"coordinates"`
	Phone         *string     `json:"phone,omitempty"`
	Website       *string     `json:"website,omitempty"`
	DistanceLabel string      `json:"distance"`
	TimeLeftLabel string      `json:"timeLeft"`
	Rating        float64     `json:"rating"`
	IsFeatured    bool        `json:"isFeatured"`
	Points        int         `json:"points"`
	SubmittedBy   string      `json:"submittedBy"`
	Image         string      `json:"image,omitempty"`
	IsOfficial    bool        `json:"isOfficialDeal"`
}

const metersPerMile = 1609.34

// MilesLabel renders a metric distance as "X.Y miles".
func MilesLabel(meters float64) string {
	return strconv.FormatFloat(math.Round(meters/metersPerMile*10)/10, 'f', 1, 64) + " miles"
}

// Discount derives the badge text shown next to a deal's price.
// "FREE" and percent prices pass through; unparsable dollar amounts
// degrade to "Special Price" rather than failing.
func Discount(price, originalPrice string) string {
	if price == "FREE" {
		return "FREE"
	}
	if strings.Contains(price, "%") {
		return price
	}
	if originalPrice == "" {
		return "Special Price"
	}
	orig, err1 := strconv.ParseFloat(strings.TrimPrefix(originalPrice, "$"), 64)
	cur, err2 := strconv.ParseFloat(strings.TrimPrefix(price, "$"), 64)
	if err1 != nil || err2 != nil || orig <= 0 {
		return "Special Price"
	}
	return strconv.Itoa(int(math.Round((orig-cur)/orig*100))) + "% OFF"
}
