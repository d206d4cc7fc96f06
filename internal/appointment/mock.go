package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentassist/backend/internal/utils"
)

// MockService answers without a backend. Availability is derived from a hash
// of the cabinet and date so dev sessions see stable, repeatable slots.
type MockService struct{}

var mockSlots = []string{"09:00", "09:30", "10:00", "11:00", "14:00", "15:30", "16:00"}

func (MockService) Availability(_ context.Context, cabinetID, date string) ([]string, error) {
	h := utils.HashStringToUint64(cabinetID + date)
	n := 2 + int(h%4)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := (h + uint64(i*2)) % uint64(len(mockSlots))
		out = append(out, mockSlots[idx])
	}
	return out, nil
}

func (MockService) Book(_ context.Context, req Request) (Booking, error) {
	at := req.Time
	if at == "" {
		at = req.TimeWindow
	}
	return Booking{
		ID:          uuid.NewString(),
		CabinetID:   req.CabinetID,
		ServiceType: req.ServiceType,
		Date:        req.Date,
		Time:        at,
		Status:      "confirmed",
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// FailingService simulates an unreachable backend for tests.
type FailingService struct{}

func (FailingService) Availability(context.Context, string, string) ([]string, error) {
	return nil, fmt.Errorf("availability: %w", ErrUnavailable)
}

func (FailingService) Book(context.Context, Request) (Booking, error) {
	return Booking{}, fmt.Errorf("book: %w", ErrUnavailable)
}
