package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentassist/backend/internal/db"
	"github.com/dentassist/backend/internal/models"
)

// Sink receives one fire-and-forget summary per turn. Implementations must
// swallow their own failures; a broken sink never affects the response.
type Sink interface {
	Record(ctx context.Context, audit models.TurnAudit)
}

type NopSink struct{}

func (NopSink) Record(context.Context, models.TurnAudit) {}

// LogSink writes the turn summary to the structured log.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Record(_ context.Context, a models.TurnAudit) {
	s.Logger.Info().
		Str("session_id", a.SessionID).
		Str("intent", a.Intent).
		Float64("confidence", a.Confidence).
		Bool("escalated", a.Escalated).
		Msg("turn")
}

// PGSink persists turn summaries for offline analysis. Insert errors are
// logged and dropped.
type PGSink struct {
	Store  *db.Store
	Logger zerolog.Logger
}

func (s PGSink) Record(ctx context.Context, a models.TurnAudit) {
	insertCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Store.InsertTurnAudit(insertCtx, a); err != nil {
		s.Logger.Warn().Err(err).Str("session_id", a.SessionID).Msg("turn audit dropped")
	}
}
