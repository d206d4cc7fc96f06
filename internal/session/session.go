package session

import (
	"context"
	"errors"

	"github.com/dentassist/backend/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Store persists conversation contexts between turns. The NLU core never
// touches it; the HTTP layer loads before a turn and saves after.
type Store interface {
	Load(ctx context.Context, id string) (*models.ConversationContext, error)
	Save(ctx context.Context, cctx *models.ConversationContext) error
	Delete(ctx context.Context, id string) error
}
