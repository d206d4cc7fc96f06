package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentassist/backend/internal/models"
)

var ErrNoRows = errors.New("no rows")

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// UpsertSession stores the whole conversation context as JSONB keyed by
// session id.
func (s *Store) UpsertSession(ctx context.Context, cctx *models.ConversationContext) error {
	payload, err := json.Marshal(cctx)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO sessions (id, context, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET context = EXCLUDED.context, updated_at = now()`,
		cctx.SessionID, payload)
	return err
}

func (s *Store) GetSession(ctx context.Context, id string) (*models.ConversationContext, error) {
	var payload []byte
	err := s.Pool.QueryRow(ctx, `SELECT context FROM sessions WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRows
		}
		return nil, err
	}
	var cctx models.ConversationContext
	if err := json.Unmarshal(payload, &cctx); err != nil {
		return nil, err
	}
	return &cctx, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *Store) InsertTurnAudit(ctx context.Context, a models.TurnAudit) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO turn_audits (session_id, intent, confidence, escalated, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.SessionID, a.Intent, a.Confidence, a.Escalated, a.CreatedAt)
	return err
}

func (s *Store) GetCabinet(ctx context.Context, id string) (models.Cabinet, error) {
	var c models.Cabinet
	var hours []byte
	err := s.Pool.QueryRow(ctx, `
		SELECT id, name, address, phone, timezone, business_hours
		FROM cabinets WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Timezone, &hours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Cabinet{}, ErrNoRows
		}
		return models.Cabinet{}, err
	}
	if err := json.Unmarshal(hours, &c.BusinessHours); err != nil {
		return models.Cabinet{}, err
	}
	return c, nil
}

func (s *Store) ListPractitioners(ctx context.Context, cabinetID string) ([]models.Practitioner, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, speciality FROM practitioners
		WHERE cabinet_id = $1 ORDER BY name ASC`, cabinetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Practitioner
	for rows.Next() {
		var p models.Practitioner
		if err := rows.Scan(&p.ID, &p.Name, &p.Speciality); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
