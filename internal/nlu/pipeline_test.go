package nlu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/backend/internal/models"
)

func testPipeline() Pipeline {
	// Monday 2026-03-02 at 10:00, inside opening hours.
	return Pipeline{Clock: func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}}
}

func testContext() *models.ConversationContext {
	return &models.ConversationContext{
		SessionID: "sess-1",
		User:      models.User{ID: "user-42"},
		Tenant: models.Tenant{
			ID:            "cabinet-alger-01",
			BusinessHours: models.BusinessHours{Open: "08:00", Close: "18:00"},
		},
	}
}

func TestAnalyzeBookingWithDateAndWindow(t *testing.T) {
	res := testPipeline().Analyze("Bonjour, je voudrais prendre un rendez-vous demain matin", testContext())

	assert.Equal(t, IntentBookAppointment, res.Intent)
	assert.GreaterOrEqual(t, res.Confidence, 0.8)
	assert.Equal(t, "2026-03-03", res.Slots[SlotDate])
	assert.Equal(t, WindowMorning, res.Slots[SlotTimeWindow])
	assert.Equal(t, "cabinet-alger-01", res.Slots[SlotCabinetID])
	assert.Equal(t, "user-42", res.Slots[SlotUserID])
	assert.NotContains(t, res.Slots, SlotTime)
}

func TestAnalyzeEmergency(t *testing.T) {
	res := testPipeline().Analyze("J'ai très mal aux dents, il me faut quelqu'un maintenant !", testContext())

	assert.Equal(t, IntentEmergency, res.Intent)
	// "mal" and "maintenant" both count toward the recomputed score.
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
}

func TestAnalyzeListPractitioners(t *testing.T) {
	res := testPipeline().Analyze("Qui sont vos dentistes ?", testContext())

	assert.Equal(t, IntentListPractitioners, res.Intent)
	assert.NotContains(t, res.Slots, SlotPractitionerName)
}

func TestAnalyzeAffirmativeAfterBooking(t *testing.T) {
	cctx := testContext()
	cctx.Conversation.CurrentIntent = IntentBookAppointment

	res := testPipeline().Analyze("Oui, parfait", cctx)

	assert.Equal(t, IntentBookAppointment, res.Intent)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
}

func TestAnalyzeGibberishFallsBack(t *testing.T) {
	res := testPipeline().Analyze("le ciel est bleu aujourd'hui... enfin presque", testContext())

	assert.Equal(t, IntentFallback, res.Intent)
	assert.Zero(t, res.Confidence)
}

func TestAnalyzeGibberishYieldsNoEntities(t *testing.T) {
	res := testPipeline().Analyze("xyz123###", testContext())

	assert.Equal(t, IntentFallback, res.Intent)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Entities)
	assert.NotContains(t, res.Slots, SlotDate)
	assert.NotContains(t, res.Slots, SlotTime)
}

func TestAnalyzeContactDetails(t *testing.T) {
	res := testPipeline().Analyze("Mon email est Marie@Test.com et mon numéro le 0555123456", testContext())

	assert.Equal(t, "marie@test.com", res.Slots[SlotPatientEmail])
	assert.Equal(t, "+213555123456", res.Slots[SlotPatientPhone])
}

func TestAnalyzeFullBookingUtterance(t *testing.T) {
	res := testPipeline().Analyze(
		"Je voudrais prendre rendez-vous pour un détartrage le 12/03/2026 vers 14h30 avec le docteur Benali",
		testContext())

	require.Equal(t, IntentBookAppointment, res.Intent)
	assert.Equal(t, "detartrage", res.Slots[SlotServiceType])
	assert.Equal(t, "2026-03-12", res.Slots[SlotDate])
	assert.Equal(t, "14:30", res.Slots[SlotTime])
	assert.Equal(t, "Benali", res.Slots[SlotPractitionerName])
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	texts := []string{
		"",
		"bonjour",
		"URGENCE douleur mal tout de suite maintenant !!!",
		"je voudrais prendre un rendez-vous demain pour un détartrage vers 10h",
		"blablabla",
	}
	for _, text := range texts {
		res := testPipeline().Analyze(text, testContext())
		assert.GreaterOrEqual(t, res.Confidence, 0.0, "text %q", text)
		assert.LessOrEqual(t, res.Confidence, 1.0, "text %q", text)
	}
}

func TestAnalyzeEntitiesDisjoint(t *testing.T) {
	res := testPipeline().Analyze(
		"rendez-vous après-demain vers 14h30 pour un détartrage, docteur Benali, marie@test.com, 0555123456",
		testContext())

	for i := 0; i < len(res.Entities); i++ {
		for j := i + 1; j < len(res.Entities); j++ {
			a, b := res.Entities[i], res.Entities[j]
			assert.False(t, a.Start < b.End && b.Start < a.End,
				"overlap between %v and %v", a, b)
		}
	}
}

func TestAnalyzeNilContext(t *testing.T) {
	res := testPipeline().Analyze("je voudrais prendre un rendez-vous demain", nil)

	assert.Equal(t, IntentBookAppointment, res.Intent)
	assert.NotContains(t, res.Slots, SlotCabinetID)
	assert.NotContains(t, res.Slots, SlotUserID)
}
