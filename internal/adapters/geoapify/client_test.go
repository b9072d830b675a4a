package geoapify_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cheapeats/internal/adapters/geoapify"
	"cheapeats/internal/domain"
)

const placesPayload = `{
  "features": [
    {
      "properties": {
        "place_id": "p1",
        "name": "Joe's Pizza",
        "formatted": "7 Carmine St, New York, NY 10014",
        "rating": 4.5,
        "rating_count": 1250,
        "distance": 245,
        "cuisine": "pizza;italian",
        "facilities": ["takeaway", "delivery"],
        "opening_hours": {"open_now": true},
        "contact": {"phone": "+1 212-366-1182"}
      },
      "geometry": {"coordinates": [-74.0034, 40.7303]}
    },
    {
      "properties": {
        "osm_id": 991,
        "name": "Katz's Delicatessen",
        "address_line1": "205 E Houston St",
        "cuisine": ["deli", "american"]
      },
      "geometry": {"coordinates": [-73.9873, 40.7223]}
    }
  ]
}`

func TestNearby_NormalizesFeatures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/places" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("categories") != "catering.restaurant" {
			t.Errorf("categories = %q", q.Get("categories"))
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("apiKey = %q", q.Get("apiKey"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(placesPayload))
	}))
	defer ts.Close()

	cl := geoapify.New(ts.URL, "test-key", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	places, err := cl.Nearby(ctx, domain.Coordinates{Lat: 40.7128, Lng: -74.0060}, 1500)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}

	joe := places[0]
	if joe.ID != "p1" || joe.Name != "Joe's Pizza" {
		t.Fatalf("unexpected place: %+v", joe)
	}
	if joe.Coordinates.Lat != 40.7303 || joe.Coordinates.Lng != -74.0034 {
		t.Fatalf("coordinates not flipped from geojson order: %+v", joe.Coordinates)
	}
	if joe.DistanceMeters == nil || *joe.DistanceMeters != 245 {
		t.Fatalf("distance: %+v", joe.DistanceMeters)
	}
	if len(joe.CuisineTags) != 2 || joe.CuisineTags[0] != "pizza" {
		t.Fatalf("semicolon cuisine not split: %+v", joe.CuisineTags)
	}
	if joe.OpenNow == nil || !*joe.OpenNow {
		t.Fatalf("open_now lost")
	}
	if joe.Phone == nil || *joe.Phone != "+1 212-366-1182" {
		t.Fatalf("phone lost")
	}

	katz := places[1]
	if katz.ID != "osm_991" {
		t.Fatalf("expected osm fallback id, got %q", katz.ID)
	}
	if katz.Address != "205 E Houston St" {
		t.Fatalf("expected address_line1 fallback, got %q", katz.Address)
	}
	if len(katz.CuisineTags) != 2 || katz.CuisineTags[0] != "deli" {
		t.Fatalf("array cuisine: %+v", katz.CuisineTags)
	}
}

func TestNearby_MissingKeyIsNotConfigured(t *testing.T) {
	cl := geoapify.New("https://api.geoapify.com", "", 10)
	_, err := cl.Nearby(context.Background(), domain.Coordinates{}, 1500)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNearby_UpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	cl := geoapify.New(ts.URL, "test-key", 100)
	_, err := cl.Nearby(context.Background(), domain.Coordinates{}, 1500)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestNearby_MalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features": "nope"`))
	}))
	defer ts.Close()

	cl := geoapify.New(ts.URL, "test-key", 100)
	_, err := cl.Nearby(context.Background(), domain.Coordinates{}, 1500)
	if !errors.Is(err, domain.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestReverse_EmptyFeaturesIsNoAddress(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/geocode/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer ts.Close()

	cl := geoapify.New(ts.URL, "test-key", 100)
	_, err := cl.Reverse(context.Background(), domain.Coordinates{Lat: 40.7, Lng: -74.0})
	if !errors.Is(err, domain.ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestReverse_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[{"properties":{
			"formatted":"350 5th Ave, New York, NY 10118",
			"street":"5th Ave","city":"New York","state":"New York",
			"country":"United States","postcode":"10118"}}]}`))
	}))
	defer ts.Close()

	cl := geoapify.New(ts.URL, "test-key", 100)
	addr, err := cl.Reverse(context.Background(), domain.Coordinates{Lat: 40.748, Lng: -73.985})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if addr.City != "New York" || addr.Postcode != "10118" {
		t.Fatalf("unexpected address: %+v", addr)
	}
}
