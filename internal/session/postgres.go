package session

import (
	"context"
	"errors"

	"github.com/dentassist/backend/internal/db"
	"github.com/dentassist/backend/internal/models"
)

// PostgresStore persists sessions in the main database.
type PostgresStore struct {
	Store *db.Store
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*models.ConversationContext, error) {
	cctx, err := s.Store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cctx, nil
}

func (s *PostgresStore) Save(ctx context.Context, cctx *models.ConversationContext) error {
	return s.Store.UpsertSession(ctx, cctx)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteSession(ctx, id)
}
