package directory

import (
	"context"
	"errors"

	"github.com/dentassist/backend/internal/models"
)

var ErrNotFound = errors.New("cabinet not found")

// Directory supplies cabinet metadata and practitioner lists. It formats
// clinic_info and list_practitioners answers and is never consulted during
// classification.
type Directory interface {
	Cabinet(ctx context.Context, id string) (models.Cabinet, error)
	Practitioners(ctx context.Context, cabinetID string) ([]models.Practitioner, error)
}
