package bigdatacloud

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cheapeats/internal/domain"
)

func TestReverse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("localityLanguage"); got != "en" {
			t.Errorf("localityLanguage = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city":"Brooklyn","principalSubdivision":"New York","postcode":"11201","countryName":"United States"}`))
	}))
	defer ts.Close()

	addr, err := New(ts.URL).Reverse(context.Background(), domain.Coordinates{Lat: 40.69, Lng: -73.99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Formatted != "Brooklyn, New York 11201" {
		t.Fatalf("formatted = %q", addr.Formatted)
	}
	if addr.City != "Brooklyn" || addr.State != "New York" {
		t.Fatalf("address: %+v", addr)
	}
}

func TestReverse_LocalityFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"locality":"Astoria","principalSubdivision":"New York"}`))
	}))
	defer ts.Close()

	addr, err := New(ts.URL).Reverse(context.Background(), domain.Coordinates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.City != "Astoria" || addr.Formatted != "Astoria, New York" {
		t.Fatalf("address: %+v", addr)
	}
}

func TestReverse_NoAddress(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"countryName":"United States"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).Reverse(context.Background(), domain.Coordinates{Lat: 0, Lng: 0})
	if !errors.Is(err, domain.ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestReverse_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := New(ts.URL).Reverse(context.Background(), domain.Coordinates{})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
