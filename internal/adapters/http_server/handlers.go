// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cheapeats/internal/app"
	"cheapeats/internal/domain"
)

// Handlers bundles the services the routes depend on.
type Handlers struct {
	Pipeline      *app.Pipeline
	Resolver      *app.LocationResolver
	Geocoder      domain.ReverseGeocoder
	DefaultRadius int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/nearby-deals", h.nearbyDeals)
	s.mux.Get("/api/restaurants", h.restaurants)
	s.mux.Get("/api/geocode", h.geocode)
	s.mux.Get("/api/zipcode", h.zipcode)
	s.mux.Get("/api/locations/recent", h.recentLocations)
	s.mux.Get("/api/leaderboard", h.leaderboard)
	s.mux.Post("/api/deals", h.submitDeal)
	s.mux.Post("/api/deals/{id}/verify", h.verifyDeal)
	s.mux.Post("/api/deals/{id}/feature", h.featureDeal)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// parseCoords reads lat/lng query params. Missing or malformed values
// fall back to the default location rather than failing the request.
func (h *Handlers) parseCoords(r *http.Request) domain.ResolvedLocation {
	latS := r.URL.Query().Get("lat")
	lngS := r.URL.Query().Get("lng")
	if latS == "" || lngS == "" {
		return h.Resolver.Default()
	}
	lat, latErr := strconv.ParseFloat(latS, 64)
	lng, lngErr := strconv.ParseFloat(lngS, 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return h.Resolver.Default()
	}
	return domain.ResolvedLocation{Coordinates: domain.Coordinates{Lat: lat, Lng: lng}}
}

func (h *Handlers) parseRadius(r *http.Request) int {
	radius := h.DefaultRadius
	if rs := r.URL.Query().Get("radius"); rs != "" {
		if v, err := strconv.Atoi(rs); err == nil && v > 0 {
			radius = v
		}
	}
	if radius > 50000 {
		radius = 50000
	}
	return radius
}

func (h *Handlers) nearbyDeals(w http.ResponseWriter, r *http.Request) {
	loc := h.parseCoords(r)
	resp := h.Pipeline.Deals(r.Context(), loc, h.parseRadius(r))
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) restaurants(w http.ResponseWriter, r *http.Request) {
	loc := h.parseCoords(r)
	resp := h.Pipeline.Restaurants(r.Context(), loc.Coordinates, h.parseRadius(r))
	writeJSON(w, http.StatusOK, resp)
}

// geocode is the one endpoint that surfaces upstream failures instead
// of silently degrading: 400 on bad input, 404 when the provider finds
// nothing, 500 on provider errors.
func (h *Handlers) geocode(w http.ResponseWriter, r *http.Request) {
	latS := r.URL.Query().Get("lat")
	lngS := r.URL.Query().Get("lng")
	if latS == "" || lngS == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Parameters", "latitude and longitude are required")
		return
	}
	lat, latErr := strconv.ParseFloat(latS, 64)
	lng, lngErr := strconv.ParseFloat(lngS, 64)
	if latErr != nil || lngErr != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Parameters", "latitude and longitude must be numbers")
		return
	}

	addr, err := h.Geocoder.Reverse(r.Context(), domain.Coordinates{Lat: lat, Lng: lng})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "address": addr})
	case errors.Is(err, domain.ErrNoAddress):
		writeProblem(w, http.StatusNotFound, "Not Found", "no address found for these coordinates")
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
	default:
		log.Error().Err(err).Msg("reverse geocode failed")
		writeProblem(w, http.StatusInternalServerError, "Geocoding Failed", "failed to get address")
	}
}

func (h *Handlers) zipcode(w http.ResponseWriter, r *http.Request) {
	zip := r.URL.Query().Get("zip")
	loc, err := h.Resolver.ResolveZip(r.Context(), zip)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "location": loc})
	case errors.Is(err, domain.ErrInvalidZip):
		writeProblem(w, http.StatusBadRequest, "Invalid Zip", "zip must look like 12345 or 12345-6789")
	case errors.Is(err, domain.ErrZipNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "no location found for this zip code")
	default:
		log.Error().Err(err).Str("zip", zip).Msg("zip lookup failed")
		writeProblem(w, http.StatusInternalServerError, "Lookup Failed", "could not resolve zip code")
	}
}

func (h *Handlers) recentLocations(w http.ResponseWriter, r *http.Request) {
	locs := h.Resolver.RecentLocations(r.Context())
	if locs == nil {
		locs = []domain.ResolvedLocation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "locations": locs})
}

func (h *Handlers) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		v, err := strconv.Atoi(ls)
		if err != nil || v < 1 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
		limit = v
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "leaderboard": app.Leaderboard(limit)})
}

func (h *Handlers) submitDeal(w http.ResponseWriter, r *http.Request) {
	var sub app.DealSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	points, err := app.SubmitDeal(sub)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Submission", "title and location are required; category must be valid")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "points": points})
}

func (h *Handlers) verifyDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "deal id is required")
		return
	}
	log.Info().Str("deal_id", id).Msg("deal verified")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handlers) featureDeal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "deal id is required")
		return
	}
	var body struct {
		Featured bool `json:"featured"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	log.Info().Str("deal_id", id).Bool("featured", body.Featured).Msg("deal featured status updated")
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
