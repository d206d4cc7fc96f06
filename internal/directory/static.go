package directory

import (
	"context"

	"github.com/dentassist/backend/internal/models"
)

// StaticDirectory serves a fixed cabinet, for dev environments without a
// directory database.
type StaticDirectory struct {
	Info models.Cabinet
	Team []models.Practitioner
}

func DefaultStatic(tenantID string) *StaticDirectory {
	return &StaticDirectory{
		Info: models.Cabinet{
			ID:       tenantID,
			Name:     "Cabinet Dentaire El Yasmine",
			Address:  "12 rue Didouche Mourad, Alger",
			Phone:    "+213550112233",
			Timezone: "Africa/Algiers",
			BusinessHours: models.BusinessHours{
				Open:  "08:00",
				Close: "18:00",
				Days:  []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "samedi"},
			},
		},
		Team: []models.Practitioner{
			{ID: "p1", Name: "Dr. Benali", Speciality: "omnipratique"},
			{ID: "p2", Name: "Dr. Hamidi", Speciality: "orthodontie"},
			{ID: "p3", Name: "Dr. Cherif", Speciality: "implantologie"},
		},
	}
}

func (d *StaticDirectory) Cabinet(_ context.Context, id string) (models.Cabinet, error) {
	if id != "" && id != d.Info.ID {
		return models.Cabinet{}, ErrNotFound
	}
	return d.Info, nil
}

func (d *StaticDirectory) Practitioners(_ context.Context, _ string) ([]models.Practitioner, error) {
	return d.Team, nil
}
