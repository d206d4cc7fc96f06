package appointment

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks the booking backend as unreachable; the orchestrator
// turns it into a human handoff, never into a failed HTTP turn.
var ErrUnavailable = errors.New("appointment service unavailable")

// Request carries the confirmed slots for a booking. Time or TimeWindow is
// set, never both.
type Request struct {
	CabinetID        string `json:"cabinet_id"`
	UserID           string `json:"user_id,omitempty"`
	ServiceType      string `json:"service_type"`
	Date             string `json:"date"` // YYYY-MM-DD
	Time             string `json:"time,omitempty"`
	TimeWindow       string `json:"time_window,omitempty"`
	PatientEmail     string `json:"patient_email,omitempty"`
	PatientPhone     string `json:"patient_phone,omitempty"`
	PractitionerName string `json:"practitioner_name,omitempty"`
}

type Booking struct {
	ID          string    `json:"id"`
	CabinetID   string    `json:"cabinet_id"`
	ServiceType string    `json:"service_type"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service is the external appointment backend. The dialogue core consults it
// only once slots are complete and confirmed.
type Service interface {
	Availability(ctx context.Context, cabinetID, date string) ([]string, error)
	Book(ctx context.Context, req Request) (Booking, error)
}
