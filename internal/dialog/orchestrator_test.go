package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/backend/internal/analytics"
	"github.com/dentassist/backend/internal/appointment"
	"github.com/dentassist/backend/internal/directory"
	"github.com/dentassist/backend/internal/models"
	"github.com/dentassist/backend/internal/nlu"
)

type recordingSink struct {
	audits []models.TurnAudit
}

func (s *recordingSink) Record(_ context.Context, a models.TurnAudit) {
	s.audits = append(s.audits, a)
}

func newOrchestrator(svc appointment.Service) *Orchestrator {
	return &Orchestrator{
		Appointments: svc,
		Directory:    directory.DefaultStatic("cabinet-alger-01"),
		Analytics:    analytics.NopSink{},
		Logger:       zerolog.Nop(),
	}
}

func newSession() *models.ConversationContext {
	return &models.ConversationContext{
		SessionID: "sess-1",
		User:      models.User{ID: "user-42"},
		Tenant: models.Tenant{
			ID:            "cabinet-alger-01",
			BusinessHours: models.BusinessHours{Open: "08:00", Close: "18:00"},
		},
	}
}

// turn pushes one user message through the real understanding pipeline so the
// dialogue tests exercise the same path as the HTTP handler.
func turn(t *testing.T, o *Orchestrator, cctx *models.ConversationContext, text string) models.ChatResponse {
	t.Helper()
	p := nlu.Pipeline{Clock: func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}}
	return o.HandleTurn(context.Background(), cctx, p.Analyze(text, cctx))
}

func TestBookingSlotElicitationFlow(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Bonjour, je voudrais prendre un rendez-vous")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputService, resp.InputType)
	assert.Equal(t, models.StateWaitingForInput, cctx.Conversation.State)
	assert.Equal(t, serviceOptions, resp.Options)

	resp = turn(t, o, cctx, "un détartrage")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputDate, resp.InputType)

	resp = turn(t, o, cctx, "demain")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputTime, resp.InputType)

	resp = turn(t, o, cctx, "le matin")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputConfirmation, resp.InputType)
	assert.True(t, cctx.Conversation.ConfirmationPending)
	assert.Contains(t, resp.Message, "detartrage")
	assert.Contains(t, resp.Message, "2026-03-03")

	resp = turn(t, o, cctx, "Oui")
	assert.True(t, resp.Completed)
	assert.Equal(t, models.StateCompleted, cctx.Conversation.State)
	assert.NotEmpty(t, resp.Data["bookingId"])
	assert.Equal(t, "2026-03-03", resp.Data["date"])
	assert.Equal(t, "detartrage", resp.Data["serviceType"])
}

func TestBookingOneUtteranceGoesStraightToRecap(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Je voudrais prendre rendez-vous pour un détartrage demain vers 14h30")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputConfirmation, resp.InputType)
	assert.Equal(t, []string{"Oui", "Non"}, resp.SuggestedReplies)
}

func TestConfirmationDeclined(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	turn(t, o, cctx, "Je voudrais prendre rendez-vous pour un détartrage demain vers 14h30")
	require.True(t, cctx.Conversation.ConfirmationPending)

	resp := turn(t, o, cctx, "Non")
	assert.False(t, cctx.Conversation.ConfirmationPending)
	assert.Equal(t, models.StateActive, cctx.Conversation.State)
	assert.Equal(t, msgConfirmDeclined, resp.Message)
	assert.False(t, resp.Completed)
}

func TestBookingBackendFailureEscalates(t *testing.T) {
	o := newOrchestrator(appointment.FailingService{})
	cctx := newSession()

	turn(t, o, cctx, "Je voudrais prendre rendez-vous pour un détartrage demain vers 14h30")
	resp := turn(t, o, cctx, "Oui, je confirme")

	assert.True(t, resp.Escalate)
	assert.Equal(t, models.StateEscalated, cctx.Conversation.State)
}

func TestEmergencyEscalates(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "J'ai très mal aux dents, il me faut quelqu'un maintenant")
	assert.True(t, resp.Escalate)
	assert.Equal(t, msgEmergency, resp.Message)
	assert.Equal(t, models.StateEscalated, cctx.Conversation.State)
}

func TestHumanRequestEscalates(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Je veux parler à un humain")
	assert.True(t, resp.Escalate)
	assert.Equal(t, msgHandoff, resp.Message)
}

func TestFallbackStreakEscalates(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "blablabla")
	assert.Equal(t, msgClarify, resp.Message)
	resp = turn(t, o, cctx, "azerty")
	assert.Equal(t, msgClarify, resp.Message)
	resp = turn(t, o, cctx, "qwerty")
	assert.True(t, resp.Escalate)
	assert.Equal(t, models.StateEscalated, cctx.Conversation.State)
}

func TestUnderstoodTurnResetsFallbackStreak(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	turn(t, o, cctx, "blablabla")
	turn(t, o, cctx, "azerty")
	turn(t, o, cctx, "bonjour")
	assert.Zero(t, cctx.Conversation.FallbackStreak)

	resp := turn(t, o, cctx, "blablabla")
	assert.False(t, resp.Escalate)
}

func TestTerminalSessionsStayTerminal(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "au revoir")
	require.True(t, resp.Completed)
	require.Equal(t, models.StateCompleted, cctx.Conversation.State)
	before := len(cctx.Conversation.Messages)

	resp = turn(t, o, cctx, "je voudrais prendre un rendez-vous")
	assert.Equal(t, msgSessionOver, resp.Message)
	assert.True(t, resp.Completed)
	assert.Len(t, cctx.Conversation.Messages, before)
}

func TestCancelAsksForContactThenCompletes(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Je dois annuler mon rendez-vous")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputContact, resp.InputType)

	resp = turn(t, o, cctx, "marie@test.com")
	assert.True(t, resp.Completed)
	assert.Equal(t, "marie@test.com", resp.Data["contact"])
	assert.Equal(t, models.StateCompleted, cctx.Conversation.State)
}

func TestCheckAvailabilityAsksDateThenListsSlots(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Avez-vous des disponibilités ?")
	require.True(t, resp.RequiresInput)
	assert.Equal(t, InputDate, resp.InputType)

	resp = turn(t, o, cctx, "demain")
	assert.False(t, resp.RequiresInput)
	assert.NotEmpty(t, resp.Options)
	assert.Contains(t, resp.Message, "2026-03-03")
}

func TestListPractitioners(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Qui sont vos dentistes ?")
	assert.Contains(t, resp.Message, "Benali")
	assert.Equal(t, models.StateActive, cctx.Conversation.State)
}

func TestClinicInfo(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	resp := turn(t, o, cctx, "Quels sont vos horaires ?")
	assert.Contains(t, resp.Message, "08:00")
	assert.False(t, resp.Escalate)
}

func TestTurnsAreAudited(t *testing.T) {
	sink := &recordingSink{}
	o := newOrchestrator(appointment.MockService{})
	o.Analytics = sink
	cctx := newSession()

	turn(t, o, cctx, "bonjour")
	turn(t, o, cctx, "J'ai une rage de dents, c'est urgent")

	require.Len(t, sink.audits, 2)
	assert.Equal(t, "sess-1", sink.audits[0].SessionID)
	assert.False(t, sink.audits[0].Escalated)
	assert.True(t, sink.audits[1].Escalated)
}

func TestTranscriptRecordsBothRoles(t *testing.T) {
	o := newOrchestrator(appointment.MockService{})
	cctx := newSession()

	turn(t, o, cctx, "bonjour")
	require.Len(t, cctx.Conversation.Messages, 2)
	assert.Equal(t, models.RoleUser, cctx.Conversation.Messages[0].Role)
	assert.Equal(t, "bonjour", cctx.Conversation.Messages[0].Content)
	assert.Equal(t, models.RoleAssistant, cctx.Conversation.Messages[1].Role)
}
