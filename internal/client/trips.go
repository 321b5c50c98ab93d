// Package client contains the consumed asynchronous adapters: the remote
// trip backend and the geocoding service. The engine itself never performs
// network I/O — these clients are handed to whatever outer layer needs them,
// and every call takes a context so the caller decides about timeouts and
// cancellation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/keepgoing/tripmap/internal/domain"
)

// TripResource is the remote representation of a stored trip.
type TripResource struct {
	ID        int64            `json:"id,omitempty"`
	Name      string           `json:"name"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Markers   []MarkerResource `json:"markers"`
}

// MarkerResource is the remote representation of a marker. Coordinates are
// split fields on the wire, unlike the engine's LatLng pair.
type MarkerResource struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Time        string  `json:"time,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Day         int     `json:"day"`
}

// Trips is an HTTP client for the remote trip backend's CRUD API.
type Trips struct {
	base string
	http *http.Client
}

// NewTrips returns a client rooted at baseURL (e.g. "https://api.example.com").
// Pass nil to use a default client with a 10 second timeout.
func NewTrips(baseURL string, httpClient *http.Client) *Trips {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Trips{base: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Create saves a new trip and returns the stored resource.
func (c *Trips) Create(ctx context.Context, trip TripResource) (TripResource, error) {
	return c.roundTrip(ctx, http.MethodPost, "/api/trips", &trip)
}

// Get fetches a single trip by ID.
func (c *Trips) Get(ctx context.Context, id int64) (TripResource, error) {
	return c.roundTrip(ctx, http.MethodGet, fmt.Sprintf("/api/trips/%d", id), nil)
}

// List fetches all stored trips.
func (c *Trips) List(ctx context.Context) ([]TripResource, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/trips", nil)
	if err != nil {
		return nil, err
	}
	var trips []TripResource
	if err := json.Unmarshal(body, &trips); err != nil {
		return nil, fmt.Errorf("client.Trips.List: decode: %w", err)
	}
	return trips, nil
}

// Update overwrites the trip with the given ID and returns the stored resource.
func (c *Trips) Update(ctx context.Context, id int64, trip TripResource) (TripResource, error) {
	return c.roundTrip(ctx, http.MethodPut, fmt.Sprintf("/api/trips/%d", id), &trip)
}

// Delete removes the trip with the given ID.
func (c *Trips) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trips/%d", id), nil)
	return err
}

// roundTrip performs a request with an optional JSON body and decodes a
// single TripResource response.
func (c *Trips) roundTrip(ctx context.Context, method, path string, payload *TripResource) (TripResource, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return TripResource{}, fmt.Errorf("client.Trips: encode: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}
	body, err := c.do(ctx, method, path, reqBody)
	if err != nil {
		return TripResource{}, err
	}
	var trip TripResource
	if err := json.Unmarshal(body, &trip); err != nil {
		return TripResource{}, fmt.Errorf("client.Trips: decode: %w", err)
	}
	return trip, nil
}

// do executes one request. Transport failures map to domain.ErrUnavailable;
// non-2xx statuses become errors carrying the response body as detail.
func (c *Trips) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("client.Trips: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client.Trips: %w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client.Trips: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(data))
		if detail == "" {
			detail = resp.Status
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("client.Trips: %w: %s", domain.ErrNotFound, detail)
		}
		return nil, fmt.Errorf("client.Trips: remote error (%d): %s", resp.StatusCode, detail)
	}
	return data, nil
}
