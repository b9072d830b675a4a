package httpserver

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cheapeats/internal/app"
	"cheapeats/internal/domain"
)

type stubSource struct {
	places []domain.Place
	err    error
}

func (s *stubSource) Nearby(ctx context.Context, c domain.Coordinates, r int) ([]domain.Place, error) {
	return s.places, s.err
}

type stubZips struct {
	loc domain.ResolvedLocation
	err error
}

func (s *stubZips) Lookup(ctx context.Context, zip string) (domain.ResolvedLocation, error) {
	return s.loc, s.err
}

type stubReverse struct {
	addr domain.Address
	err  error
}

func (s *stubReverse) Reverse(ctx context.Context, c domain.Coordinates) (domain.Address, error) {
	return s.addr, s.err
}

func testServer(t *testing.T, source domain.PlaceSource, zips domain.ZipGeocoder, rev domain.ReverseGeocoder) *httptest.Server {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	pipeline := app.NewPipeline(source, app.NewSynthesizer(rng, 1), app.NewNormalizer(rng), app.NewFallbackProvider(), nil, time.Minute, 15)
	resolver := app.NewLocationResolver(zips, rev, nil)

	srv := New()
	srv.MountHandlers(&Handlers{Pipeline: pipeline, Resolver: resolver, Geocoder: rev, DefaultRadius: 16000})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, dst any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestNearbyDeals_LiveData(t *testing.T) {
	d := 400.0
	src := &stubSource{places: []domain.Place{
		{ID: "p1", Name: "Joe's Pizza", Address: "7 Carmine St", Rating: 4.5, DistanceMeters: &d},
	}}
	ts := testServer(t, src, &stubZips{}, &stubReverse{})

	var body app.DealsResponse
	getJSON(t, ts.URL+"/api/nearby-deals?lat=40.71&lng=-74.00", http.StatusOK, &body)
	if !body.Success || !body.IsRealData || len(body.Deals) != 1 {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestNearbyDeals_UpstreamFailureStill200(t *testing.T) {
	ts := testServer(t, &stubSource{err: domain.ErrUpstream}, &stubZips{}, &stubReverse{})

	var body app.DealsResponse
	getJSON(t, ts.URL+"/api/nearby-deals?lat=40.71&lng=-74.00", http.StatusOK, &body)
	if body.IsRealData || len(body.Deals) == 0 {
		t.Fatalf("expected fallback deals, got %+v", body)
	}
	// NYC coordinates should regionalize the curated addresses
	if !strings.HasSuffix(body.Deals[0].Address, "New York, NY") {
		t.Fatalf("address %q not regionalized", body.Deals[0].Address)
	}
}

func TestNearbyDeals_MissingCoordsUseDefault(t *testing.T) {
	ts := testServer(t, &stubSource{err: domain.ErrNotConfigured}, &stubZips{}, &stubReverse{})

	var body app.DealsResponse
	getJSON(t, ts.URL+"/api/nearby-deals", http.StatusOK, &body)
	if len(body.Deals) == 0 {
		t.Fatal("default location must still produce deals")
	}
	if !strings.HasSuffix(body.Deals[0].Address, "New York, NY") {
		t.Fatalf("default location should regionalize to NYC, got %q", body.Deals[0].Address)
	}
}

func TestRestaurants_MockOnEmpty(t *testing.T) {
	ts := testServer(t, &stubSource{}, &stubZips{}, &stubReverse{})

	var body app.RestaurantsResponse
	getJSON(t, ts.URL+"/api/restaurants?lat=40.71&lng=-74.00", http.StatusOK, &body)
	if !body.IsMockData || len(body.Restaurants) == 0 {
		t.Fatalf("expected curated restaurants, got %+v", body)
	}
}

func TestGeocode_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		rev    *stubReverse
		query  string
		status int
	}{
		{"missing params", &stubReverse{}, "", http.StatusBadRequest},
		{"non-numeric", &stubReverse{}, "?lat=abc&lng=-74", http.StatusBadRequest},
		{"no address", &stubReverse{err: domain.ErrNoAddress}, "?lat=40.71&lng=-74.00", http.StatusNotFound},
		{"provider down", &stubReverse{err: domain.ErrUpstream}, "?lat=40.71&lng=-74.00", http.StatusInternalServerError},
		{"ok", &stubReverse{addr: domain.Address{Formatted: "Brooklyn, NY 11201"}}, "?lat=40.69&lng=-73.99", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := testServer(t, &stubSource{}, &stubZips{}, c.rev)
			resp, err := http.Get(ts.URL + "/api/geocode" + c.query)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != c.status {
				t.Fatalf("status %d, want %d", resp.StatusCode, c.status)
			}
			if c.status >= 400 {
				if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
					t.Fatalf("content type %q", ct)
				}
			}
		})
	}
}

func TestGeocode_OKPayload(t *testing.T) {
	rev := &stubReverse{addr: domain.Address{Formatted: "Brooklyn, NY 11201", City: "Brooklyn", State: "New York"}}
	ts := testServer(t, &stubSource{}, &stubZips{}, rev)

	var body struct {
		Success bool           `json:"success"`
		Address domain.Address `json:"address"`
	}
	getJSON(t, ts.URL+"/api/geocode?lat=40.69&lng=-73.99", http.StatusOK, &body)
	if !body.Success || body.Address.Formatted != "Brooklyn, NY 11201" {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestZipcode_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		zips   *stubZips
		query  string
		status int
	}{
		{"bad format", &stubZips{}, "?zip=abcde", http.StatusBadRequest},
		{"missing", &stubZips{}, "", http.StatusBadRequest},
		{"not found", &stubZips{err: domain.ErrZipNotFound}, "?zip=00000", http.StatusNotFound},
		{"provider down", &stubZips{err: domain.ErrUpstream}, "?zip=10001", http.StatusInternalServerError},
		{"ok", &stubZips{loc: domain.ResolvedLocation{DisplayName: "New York, NY 10001"}}, "?zip=10001", http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := testServer(t, &stubSource{}, c.zips, &stubReverse{})
			resp, err := http.Get(ts.URL + "/api/zipcode" + c.query)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != c.status {
				t.Fatalf("status %d, want %d", resp.StatusCode, c.status)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	ts := testServer(t, &stubSource{}, &stubZips{}, &stubReverse{})

	var body struct {
		Success     bool            `json:"success"`
		Leaderboard []app.ScoutRank `json:"leaderboard"`
	}
	getJSON(t, ts.URL+"/api/leaderboard?limit=3", http.StatusOK, &body)
	if !body.Success || len(body.Leaderboard) != 3 {
		t.Fatalf("unexpected payload: %+v", body)
	}

	resp, err := http.Get(ts.URL + "/api/leaderboard?limit=0")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("limit=0 status %d, want 400", resp.StatusCode)
	}
}

func TestRecentLocations_EmptyList(t *testing.T) {
	ts := testServer(t, &stubSource{}, &stubZips{}, &stubReverse{})

	var body struct {
		Success   bool                      `json:"success"`
		Locations []domain.ResolvedLocation `json:"locations"`
	}
	getJSON(t, ts.URL+"/api/locations/recent", http.StatusOK, &body)
	if !body.Success || body.Locations == nil {
		t.Fatalf("expected empty list, not null: %+v", body)
	}
}

func TestSubmitDeal(t *testing.T) {
	ts := testServer(t, &stubSource{}, &stubZips{}, &stubReverse{})

	resp, err := http.Post(ts.URL+"/api/deals", "application/json",
		strings.NewReader(`{"title":"Half-price pies","location":"Sal's"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var body struct {
		Success bool `json:"success"`
		Points  int  `json:"points"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Points != 100 {
		t.Fatalf("unexpected payload: %+v", body)
	}

	for _, payload := range []string{`not json`, `{"title":"","location":"x"}`} {
		resp, err := http.Post(ts.URL+"/api/deals", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("payload %q: status %d, want 400", payload, resp.StatusCode)
		}
	}
}

func TestVerifyAndFeatureDeal(t *testing.T) {
	ts := testServer(t, &stubSource{}, &stubZips{}, &stubReverse{})

	resp, err := http.Post(ts.URL+"/api/deals/mock_1/verify", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/api/deals/mock_1/feature", "application/json",
		strings.NewReader(`{"featured":true}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("feature status %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := testServer(t, &stubSource{}, &stubZips{}, &stubReverse{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
