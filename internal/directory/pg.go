package directory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dentassist/backend/internal/db"
	"github.com/dentassist/backend/internal/models"
)

// PGDirectory reads cabinet and practitioner data from Postgres, with a TTL
// cache because business hours and team lists change rarely but are read on
// almost every turn.
type PGDirectory struct {
	Store *db.Store
	cache *gocache.Cache
}

func NewPGDirectory(store *db.Store) *PGDirectory {
	return &PGDirectory{
		Store: store,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (d *PGDirectory) Cabinet(ctx context.Context, id string) (models.Cabinet, error) {
	key := "cabinet:" + id
	if cached, ok := d.cache.Get(key); ok {
		return cached.(models.Cabinet), nil
	}
	cab, err := d.Store.GetCabinet(ctx, id)
	if err != nil {
		if err == db.ErrNoRows {
			return models.Cabinet{}, ErrNotFound
		}
		return models.Cabinet{}, err
	}
	d.cache.SetDefault(key, cab)
	return cab, nil
}

func (d *PGDirectory) Practitioners(ctx context.Context, cabinetID string) ([]models.Practitioner, error) {
	key := "practitioners:" + cabinetID
	if cached, ok := d.cache.Get(key); ok {
		return cached.([]models.Practitioner), nil
	}
	team, err := d.Store.ListPractitioners(ctx, cabinetID)
	if err != nil {
		return nil, err
	}
	d.cache.SetDefault(key, team)
	return team, nil
}
