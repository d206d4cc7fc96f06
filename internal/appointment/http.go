package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// HTTPService talks to the appointment backend over REST. Availability
// responses are cached briefly so repeated "quand puis-je venir ?" turns in
// one conversation do not hammer the backend.
type HTTPService struct {
	BaseURL string
	Client  *http.Client
	Cache   *gocache.Cache
}

func NewHTTPService(baseURL string) *HTTPService {
	return &HTTPService{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Cache:   gocache.New(30*time.Second, time.Minute),
	}
}

type availabilityResponse struct {
	Slots []string `json:"slots"`
}

func (s *HTTPService) Availability(ctx context.Context, cabinetID, date string) ([]string, error) {
	key := cabinetID + "|" + date
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			return cached.([]string), nil
		}
	}

	endpoint := fmt.Sprintf("%s/availability?cabinet_id=%s&date=%s",
		s.BaseURL, url.QueryEscape(cabinetID), url.QueryEscape(date))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrUnavailable
	}

	var r availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.SetDefault(key, r.Slots)
	}
	return r.Slots, nil
}

func (s *HTTPService) Book(ctx context.Context, br Request) (Booking, error) {
	b, _ := json.Marshal(br)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/bookings", bytes.NewReader(b))
	if err != nil {
		return Booking{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		return Booking{}, ErrUnavailable
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Booking{}, ErrUnavailable
	}

	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return Booking{}, err
	}
	return booking, nil
}

func (s *HTTPService) client() *http.Client {
	if s.Client == nil {
		return &http.Client{Timeout: 10 * time.Second}
	}
	return s.Client
}
