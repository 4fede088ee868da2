package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripplanner/internal/models/trip_models"
	"tripplanner/pkg/utils"
)

// PlacesClient talks to the places wrapper service over HTTP/JSON.
type PlacesClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewPlacesClient(baseURL string) *PlacesClient {
	return &PlacesClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type nearbyPayload struct {
	Location      trip_models.LatLng `json:"location"`
	Radius        float64            `json:"radius"`
	IncludedTypes []string           `json:"includedTypes"`
	ExcludedTypes []string           `json:"excludedTypes,omitempty"`
}

type keywordPayload struct {
	TextQuery string             `json:"textQuery"`
	Location  trip_models.LatLng `json:"location"`
	Radius    float64            `json:"radius"`
}

type placesResponse struct {
	Places []trip_models.Venue `json:"places"`
}

func (c *PlacesClient) SearchNearby(ctx context.Context, req NearbySearch) ([]trip_models.Venue, error) {
	if len(req.IncludedTypes) > MaxTypesPerSearch {
		return nil, fmt.Errorf("%d included types, max %d: %w", len(req.IncludedTypes), MaxTypesPerSearch, utils.ErrInvalidInput)
	}
	var out placesResponse
	err := c.do(ctx, http.MethodPost, "/places/nearby", nearbyPayload{
		Location:      req.Center,
		Radius:        req.RadiusMeters,
		IncludedTypes: req.IncludedTypes,
		ExcludedTypes: req.ExcludedTypes,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Places, nil
}

func (c *PlacesClient) SearchByKeyword(ctx context.Context, req KeywordSearch) ([]trip_models.Venue, error) {
	var out placesResponse
	err := c.do(ctx, http.MethodPost, "/places/search", keywordPayload{
		TextQuery: req.Keyword,
		Location:  req.Center,
		Radius:    req.RadiusMeters,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Places, nil
}

func (c *PlacesClient) GetVenue(ctx context.Context, id string) (trip_models.Venue, error) {
	var v trip_models.Venue
	if err := c.do(ctx, http.MethodGet, "/places/"+url.PathEscape(id), nil, &v); err != nil {
		return trip_models.Venue{}, err
	}
	return v, nil
}

func (c *PlacesClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("places %s: %v: %w", path, err, utils.ErrVenueSearchFailed)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("places %s bad status %s: %w", path, resp.Status, utils.ErrVenueSearchFailed)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("places %s decode: %v: %w", path, err, utils.ErrVenueSearchFailed)
	}
	return nil
}
