package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/internal/utils"
)

type (
	// LocationService turns coordinates into a human readable address using the
	// Google Maps Places and Geocoding APIs. Nearby points of interest take
	// priority over the raw reverse geocode because reports are usually filed
	// from inside a building.
	LocationService interface {
		ResolveAddress(ctx context.Context, lat, lng string) (*domain.LocationResponse, error)
	}

	locationService struct {
		apiKey  string
		baseURL string
		client  *http.Client
	}
)

const mapsBaseURL = "https://maps.googleapis.com"

func NewLocationService() LocationService {
	utils.LoadConfig()
	return &locationService{
		apiKey:  utils.GetConfig("MAPS_API_KEY"),
		baseURL: mapsBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func NewLocationServiceWithBaseURL(apiKey, baseURL string) LocationService {
	return &locationService{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type (
	nearbyResponse struct {
		Results []struct {
			PlaceID string `json:"place_id"`
			Name    string `json:"name"`
		} `json:"results"`
		Status string `json:"status"`
	}

	detailsResponse struct {
		Result struct {
			Name             string `json:"name"`
			FormattedAddress string `json:"formatted_address"`
		} `json:"result"`
		Status string `json:"status"`
	}

	geocodeResponse struct {
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
		Status string `json:"status"`
	}
)

func (s *locationService) ResolveAddress(ctx context.Context, lat, lng string) (*domain.LocationResponse, error) {
	if lat == "" || lng == "" {
		return nil, domain.ErrInvalidCoordinates
	}

	if address, err := s.nearbyPlaceAddress(ctx, lat, lng); err == nil && address != "" {
		return &domain.LocationResponse{Address: address}, nil
	}

	address, err := s.reverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	if address == "" {
		return nil, domain.ErrAddressNotFound
	}
	return &domain.LocationResponse{Address: address}, nil
}

func (s *locationService) nearbyPlaceAddress(ctx context.Context, lat, lng string) (string, error) {
	nearbyURL := fmt.Sprintf("%s/maps/api/place/nearbysearch/json?location=%s,%s&radius=100&key=%s",
		s.baseURL, lat, lng, s.apiKey)

	var nearby nearbyResponse
	if err := s.getJSON(ctx, nearbyURL, &nearby); err != nil {
		return "", err
	}
	if nearby.Status != "OK" || len(nearby.Results) == 0 {
		return "", domain.ErrAddressNotFound
	}

	detailsURL := fmt.Sprintf("%s/maps/api/place/details/json?place_id=%s&fields=name,formatted_address&key=%s",
		s.baseURL, nearby.Results[0].PlaceID, s.apiKey)

	var details detailsResponse
	if err := s.getJSON(ctx, detailsURL, &details); err != nil {
		return "", err
	}
	if details.Status != "OK" || details.Result.FormattedAddress == "" {
		return "", domain.ErrAddressNotFound
	}

	if details.Result.Name != "" {
		return fmt.Sprintf("%s, %s", details.Result.Name, details.Result.FormattedAddress), nil
	}
	return details.Result.FormattedAddress, nil
}

func (s *locationService) reverseGeocode(ctx context.Context, lat, lng string) (string, error) {
	geocodeURL := fmt.Sprintf("%s/maps/api/geocode/json?latlng=%s,%s&key=%s",
		s.baseURL, lat, lng, s.apiKey)

	var geocode geocodeResponse
	if err := s.getJSON(ctx, geocodeURL, &geocode); err != nil {
		return "", err
	}
	if geocode.Status != "OK" || len(geocode.Results) == 0 {
		return "", nil
	}
	return geocode.Results[0].FormattedAddress, nil
}

func (s *locationService) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps api returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
