package app

import (
	"errors"
	"testing"
)

func TestLeaderboard(t *testing.T) {
	top := Leaderboard(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(top))
	}
	if top[0].Rank != 1 || top[0].Name != "PizzaFan" {
		t.Fatalf("unexpected first row: %+v", top[0])
	}
	for i := 1; i < len(top); i++ {
		if top[i].Points > top[i-1].Points {
			t.Fatalf("ranking not descending at %d", i)
		}
	}

	all := Leaderboard(0)
	if len(all) != 8 {
		t.Fatalf("limit 0 should return the full board, got %d", len(all))
	}
	if got := Leaderboard(100); len(got) != 8 {
		t.Fatalf("oversized limit should clamp, got %d", len(got))
	}

	// callers must not be able to mutate the board
	top[0].Points = 0
	if Leaderboard(1)[0].Points == 0 {
		t.Fatal("leaderboard rows leaked by reference")
	}
}

func TestSubmitDeal(t *testing.T) {
	points, err := SubmitDeal(DealSubmission{Title: "Half-price pies", Location: "Sal's", Category: "Pizza & Italian"})
	if err != nil || points != 100 {
		t.Fatalf("valid submission: points=%d err=%v", points, err)
	}

	bad := []DealSubmission{
		{Title: "", Location: "Sal's"},
		{Title: "   ", Location: "Sal's"},
		{Title: "Deal", Location: ""},
		{Title: "Deal", Location: "Sal's", Category: "Not A Category"},
	}
	for i, sub := range bad {
		if _, err := SubmitDeal(sub); !errors.Is(err, ErrInvalidSubmission) {
			t.Errorf("case %d: expected ErrInvalidSubmission, got %v", i, err)
		}
	}
}
