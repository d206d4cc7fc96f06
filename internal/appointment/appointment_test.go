package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestMockAvailabilityIsDeterministic(t *testing.T) {
	svc := MockService{}
	ctx := context.Background()

	first, err := svc.Availability(ctx, "cabinet-alger-01", "2026-03-03")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected at least one slot")
	}
	second, _ := svc.Availability(ctx, "cabinet-alger-01", "2026-03-03")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("slots changed between calls: %v vs %v", first, second)
	}
}

func TestMockAvailabilityCoversAllDates(t *testing.T) {
	svc := MockService{}
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 31; day++ {
		date := start.AddDate(0, 0, day).Format("2006-01-02")
		slots, err := svc.Availability(ctx, "cabinet-alger-01", date)
		if err != nil {
			t.Fatalf("%s: %v", date, err)
		}
		if len(slots) < 2 || len(slots) > 5 {
			t.Fatalf("%s: %d slots", date, len(slots))
		}
	}
}

func TestMockBookFallsBackToWindow(t *testing.T) {
	booking, err := MockService{}.Book(context.Background(), Request{
		CabinetID:   "cabinet-alger-01",
		ServiceType: "detartrage",
		Date:        "2026-03-03",
		TimeWindow:  "morning",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.ID == "" || booking.Time != "morning" || booking.Status != "confirmed" {
		t.Fatalf("booking = %+v", booking)
	}
}

func TestHTTPAvailabilityCachesResponses(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(availabilityResponse{Slots: []string{"09:00", "10:00"}})
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL)
	ctx := context.Background()

	slots, err := svc.Availability(ctx, "c1", "2026-03-03")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("slots = %v", slots)
	}
	if _, err := svc.Availability(ctx, "c1", "2026-03-03"); err != nil {
		t.Fatalf("cached availability: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", calls)
	}
}

func TestHTTPBackendErrorsMapToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewHTTPService(srv.URL)
	if _, err := svc.Availability(context.Background(), "c1", "2026-03-03"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if _, err := svc.Book(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}
