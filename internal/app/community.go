package app

import (
	"errors"
	"strings"

	"cheapeats/internal/domain"
)

// Gamification is presentation-only: nothing here persists. The
// leaderboard is a fixed ranking and submissions only echo a points
// award back to the client.

// ScoutRank is one leaderboard row.
type ScoutRank struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Deals  int    `json:"deals"`
}

var leaderboard = []ScoutRank{
	{1, "PizzaFan", 2450, 15},
	{2, "BBQMaster", 2280, 14},
	{3, "SushiMaster", 2200, 12},
	{4, "CocktailConnoisseur", 1950, 11},
	{5, "TacoTuesday", 1800, 10},
	{6, "WingLover23", 1650, 9},
	{7, "BurgerKing", 1500, 8},
	{8, "PastaLover", 1350, 7},
}

// Leaderboard returns the top limit scouts.
func Leaderboard(limit int) []ScoutRank {
	if limit <= 0 || limit > len(leaderboard) {
		limit = len(leaderboard)
	}
	out := make([]ScoutRank, limit)
	copy(out, leaderboard[:limit])
	return out
}

// DealSubmission is the user-submitted deal payload.
type DealSubmission struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Address  string `json:"address,omitempty"`
}

var ErrInvalidSubmission = errors.New("invalid deal submission")

const submissionPoints = 100

// SubmitDeal validates a community submission and returns the points
// award. Nothing is stored.
func SubmitDeal(sub DealSubmission) (int, error) {
	if strings.TrimSpace(sub.Title) == "" || strings.TrimSpace(sub.Location) == "" {
		return 0, ErrInvalidSubmission
	}
	if sub.Category != "" && !domain.Category(sub.Category).Valid() {
		return 0, ErrInvalidSubmission
	}
	return submissionPoints, nil
}
