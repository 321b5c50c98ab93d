package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/keepgoing/tripmap/internal/domain"
)

// GeocodeResult is a resolved address.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// Geocoder is a client for a Nominatim-compatible geocoding service.
// Transport failures map to domain.ErrUnavailable; empty results to
// domain.ErrNotFound, so callers can tell the two apart.
type Geocoder struct {
	base string
	http *http.Client
}

// NewGeocoder returns a client rooted at baseURL
// (e.g. "https://nominatim.openstreetmap.org").
// Pass nil to use a default client with a 10 second timeout.
func NewGeocoder(baseURL string, httpClient *http.Client) *Geocoder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Geocoder{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// nominatimPlace is the wire shape of one Nominatim result. Coordinates
// arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text address to coordinates and a display name.
func (g *Geocoder) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	q := url.Values{"format": {"json"}, "q": {address}}
	var places []nominatimPlace
	if err := g.get(ctx, "/search?"+q.Encode(), &places); err != nil {
		return GeocodeResult{}, fmt.Errorf("client.Geocoder.Geocode: %w", err)
	}
	if len(places) == 0 {
		return GeocodeResult{}, fmt.Errorf("client.Geocoder.Geocode: %w: address not found", domain.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return GeocodeResult{}, fmt.Errorf("client.Geocoder.Geocode: parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return GeocodeResult{}, fmt.Errorf("client.Geocoder.Geocode: parse lon: %w", err)
	}
	return GeocodeResult{Lat: lat, Lng: lng, DisplayName: places[0].DisplayName}, nil
}

// ReverseGeocode resolves coordinates to a display name.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{
		"format": {"json"},
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lng, 'f', -1, 64)},
	}
	var place nominatimPlace
	if err := g.get(ctx, "/reverse?"+q.Encode(), &place); err != nil {
		return "", fmt.Errorf("client.Geocoder.ReverseGeocode: %w", err)
	}
	if place.DisplayName == "" {
		return "", fmt.Errorf("client.Geocoder.ReverseGeocode: %w: no result for coordinates", domain.ErrNotFound)
	}
	return place.DisplayName, nil
}

func (g *Geocoder) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", domain.ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
