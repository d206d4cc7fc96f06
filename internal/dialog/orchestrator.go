package dialog

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/dentassist/backend/internal/analytics"
	"github.com/dentassist/backend/internal/appointment"
	"github.com/dentassist/backend/internal/directory"
	"github.com/dentassist/backend/internal/models"
	"github.com/dentassist/backend/internal/nlu"
)

const (
	defaultEmergencyThreshold = 0.5
	defaultMaxFallbacks       = 3
)

var humanRequestRE = regexp.MustCompile(`\b(parler a (un|une) (humain|personne|conseiller|conseillere)|un humain|une vraie personne|un conseiller|un agent|le secretariat)\b`)

// Orchestrator is the dialogue state machine. All its state lives inside the
// ConversationContext owned by the caller; one Orchestrator value serves
// every session.
type Orchestrator struct {
	Appointments appointment.Service
	Directory    directory.Directory
	Analytics    analytics.Sink
	Logger       zerolog.Logger

	// EmergencyThreshold is the minimum confidence at which an emergency
	// intent escalates. Zero means the default.
	EmergencyThreshold float64
	// MaxFallbacks is how many consecutive non-understood turns are allowed
	// before handing off. Zero means the default.
	MaxFallbacks int
}

// HandleTurn consumes one NLU result, mutates the conversation context and
// produces the turn's ChatResponse. Terminal sessions are never re-entered.
func (o *Orchestrator) HandleTurn(ctx context.Context, cctx *models.ConversationContext, res nlu.NLUResult) models.ChatResponse {
	conv := &cctx.Conversation
	if conv.State == models.StateCompleted || conv.State == models.StateEscalated {
		return models.ChatResponse{Message: msgSessionOver, Completed: true}
	}

	if conv.CollectedSlots == nil {
		conv.CollectedSlots = map[string]string{}
	}
	appendMessage(conv, models.RoleUser, res.RawText)

	normalized := nlu.Normalize(res.RawText)
	resp := o.route(ctx, cctx, res, normalized)

	appendMessage(conv, models.RoleAssistant, resp.Message)
	cctx.UpdatedAt = time.Now().UTC()

	if o.Analytics != nil {
		o.Analytics.Record(ctx, models.TurnAudit{
			SessionID:  cctx.SessionID,
			Intent:     res.Intent,
			Confidence: res.Confidence,
			Escalated:  resp.Escalate,
			CreatedAt:  cctx.UpdatedAt,
		})
	}
	return resp
}

func (o *Orchestrator) route(ctx context.Context, cctx *models.ConversationContext, res nlu.NLUResult, normalized string) models.ChatResponse {
	conv := &cctx.Conversation

	if humanRequestRE.MatchString(normalized) {
		return o.escalate(conv, msgHandoff)
	}

	threshold := o.EmergencyThreshold
	if threshold == 0 {
		threshold = defaultEmergencyThreshold
	}
	if res.Intent == nlu.IntentEmergency && res.Confidence >= threshold {
		return o.escalate(conv, msgEmergency)
	}

	mergeSlots(conv, res.Slots)
	intent := effectiveIntent(conv, res, normalized)

	if intent == nlu.IntentFallback {
		conv.FallbackStreak++
		maxFallbacks := o.MaxFallbacks
		if maxFallbacks == 0 {
			maxFallbacks = defaultMaxFallbacks
		}
		if conv.FallbackStreak >= maxFallbacks {
			return o.escalate(conv, msgHandoff)
		}
		conv.State = models.StateActive
		return models.ChatResponse{Message: msgClarify, SuggestedReplies: defaultSuggestions}
	}

	conv.FallbackStreak = 0
	conv.CurrentIntent = intent

	switch intent {
	case nlu.IntentGreeting:
		conv.State = models.StateActive
		return models.ChatResponse{Message: msgGreeting, SuggestedReplies: defaultSuggestions}

	case nlu.IntentHelp:
		conv.State = models.StateActive
		return models.ChatResponse{Message: msgHelp, SuggestedReplies: defaultSuggestions}

	case nlu.IntentGoodbye:
		conv.State = models.StateCompleted
		return models.ChatResponse{Message: msgGoodbye, Completed: true}

	case nlu.IntentClinicInfo:
		cab, err := o.Directory.Cabinet(ctx, cctx.Tenant.ID)
		if err != nil {
			o.Logger.Warn().Err(err).Msg("directory lookup failed")
			return o.escalate(conv, msgHandoff)
		}
		conv.State = models.StateActive
		return models.ChatResponse{Message: cabinetMessage(cab), SuggestedReplies: defaultSuggestions}

	case nlu.IntentListPractitioners:
		team, err := o.Directory.Practitioners(ctx, cctx.Tenant.ID)
		if err != nil {
			o.Logger.Warn().Err(err).Msg("directory lookup failed")
			return o.escalate(conv, msgHandoff)
		}
		conv.State = models.StateActive
		return models.ChatResponse{Message: practitionersMessage(team)}

	case nlu.IntentCheckAvailability:
		return o.checkAvailability(ctx, cctx)

	case nlu.IntentBookAppointment, nlu.IntentReschedule:
		return o.fillAndConfirm(ctx, cctx, intent, normalized)

	case nlu.IntentCancel:
		return o.cancel(conv)
	}

	conv.State = models.StateActive
	return models.ChatResponse{Message: msgClarify, SuggestedReplies: defaultSuggestions}
}

// effectiveIntent keeps an in-flight elicitation alive: a turn like "demain"
// or a bare "non" classifies as fallback on its own, but while we are waiting
// for a slot or a confirmation it continues the current intent.
func effectiveIntent(conv *models.Conversation, res nlu.NLUResult, normalized string) string {
	if conv.ConfirmationPending &&
		(nlu.IsAffirmative(normalized) || nlu.IsNegative(normalized)) {
		switch conv.CurrentIntent {
		case nlu.IntentBookAppointment, nlu.IntentReschedule:
			return conv.CurrentIntent
		}
	}
	if res.Intent != nlu.IntentFallback {
		return res.Intent
	}
	if conv.State != models.StateWaitingForInput {
		return res.Intent
	}
	switch conv.CurrentIntent {
	case nlu.IntentBookAppointment, nlu.IntentReschedule, nlu.IntentCancel, nlu.IntentCheckAvailability:
	default:
		return res.Intent
	}
	for _, name := range []string{
		nlu.SlotDate, nlu.SlotTime, nlu.SlotTimeWindow, nlu.SlotServiceType,
		nlu.SlotPatientEmail, nlu.SlotPatientPhone, nlu.SlotPractitionerName,
	} {
		if _, ok := res.Slots[name]; ok {
			return conv.CurrentIntent
		}
	}
	return res.Intent
}

func (o *Orchestrator) checkAvailability(ctx context.Context, cctx *models.ConversationContext) models.ChatResponse {
	conv := &cctx.Conversation
	date := conv.CollectedSlots[nlu.SlotDate]
	if date == "" {
		conv.State = models.StateWaitingForInput
		return models.ChatResponse{
			Message:       msgAskDate,
			RequiresInput: true,
			InputType:     InputDate,
		}
	}

	slots, err := o.Appointments.Availability(ctx, cctx.Tenant.ID, date)
	if err != nil {
		o.Logger.Warn().Err(err).Str("date", date).Msg("availability lookup failed")
		return o.escalate(conv, msgHandoff)
	}
	conv.State = models.StateActive
	return models.ChatResponse{
		Message:          availabilityMessage(date, slots),
		Options:          slots,
		SuggestedReplies: []string{"Prendre rendez-vous"},
	}
}

func (o *Orchestrator) fillAndConfirm(ctx context.Context, cctx *models.ConversationContext, intent, normalized string) models.ChatResponse {
	conv := &cctx.Conversation

	if conv.ConfirmationPending {
		if nlu.IsAffirmative(normalized) {
			return o.finalize(ctx, cctx)
		}
		if nlu.IsNegative(normalized) {
			conv.ConfirmationPending = false
			conv.State = models.StateActive
			return models.ChatResponse{Message: msgConfirmDeclined, SuggestedReplies: defaultSuggestions}
		}
	}

	if missing := nextMissingSlot(conv.CollectedSlots, intent); missing != "" {
		conv.State = models.StateWaitingForInput
		return models.ChatResponse{
			Message:       slotPrompt(missing),
			RequiresInput: true,
			InputType:     missing,
			Options:       slotOptions(missing),
		}
	}

	conv.ConfirmationPending = true
	conv.State = models.StateActive
	return models.ChatResponse{
		Message:          recapMessage(conv.CollectedSlots),
		RequiresInput:    true,
		InputType:        InputConfirmation,
		SuggestedReplies: []string{"Oui", "Non"},
	}
}

// nextMissingSlot walks the fixed elicitation order: service, then date, then
// a time or a day-part window. Rescheduling also needs a contact to find the
// original booking.
func nextMissingSlot(slots map[string]string, intent string) string {
	if slots[nlu.SlotServiceType] == "" {
		return InputService
	}
	if slots[nlu.SlotDate] == "" {
		return InputDate
	}
	if slots[nlu.SlotTime] == "" && slots[nlu.SlotTimeWindow] == "" {
		return InputTime
	}
	if intent == nlu.IntentReschedule &&
		slots[nlu.SlotPatientEmail] == "" && slots[nlu.SlotPatientPhone] == "" {
		return InputContact
	}
	return ""
}

func (o *Orchestrator) finalize(ctx context.Context, cctx *models.ConversationContext) models.ChatResponse {
	conv := &cctx.Conversation
	slots := conv.CollectedSlots

	booking, err := o.Appointments.Book(ctx, appointment.Request{
		CabinetID:        cctx.Tenant.ID,
		UserID:           cctx.User.ID,
		ServiceType:      slots[nlu.SlotServiceType],
		Date:             slots[nlu.SlotDate],
		Time:             slots[nlu.SlotTime],
		TimeWindow:       slots[nlu.SlotTimeWindow],
		PatientEmail:     slots[nlu.SlotPatientEmail],
		PatientPhone:     slots[nlu.SlotPatientPhone],
		PractitionerName: slots[nlu.SlotPractitionerName],
	})
	if err != nil {
		o.Logger.Error().Err(err).Str("session_id", cctx.SessionID).Msg("booking failed")
		return o.escalate(conv, msgHandoff)
	}

	conv.ConfirmationPending = false
	conv.State = models.StateCompleted
	at := booking.Time
	if at == "" {
		at = slots[nlu.SlotTimeWindow]
	}
	return models.ChatResponse{
		Message:   bookedMessage(booking.Date, at),
		Completed: true,
		Data: map[string]string{
			"bookingId":   booking.ID,
			"date":        booking.Date,
			"time":        at,
			"serviceType": booking.ServiceType,
		},
	}
}

func (o *Orchestrator) cancel(conv *models.Conversation) models.ChatResponse {
	contact := conv.CollectedSlots[nlu.SlotPatientEmail]
	if contact == "" {
		contact = conv.CollectedSlots[nlu.SlotPatientPhone]
	}
	if contact == "" {
		conv.State = models.StateWaitingForInput
		return models.ChatResponse{
			Message:       msgAskContact,
			RequiresInput: true,
			InputType:     InputContact,
		}
	}
	conv.State = models.StateCompleted
	return models.ChatResponse{
		Message:   cancelledMessage(contact),
		Completed: true,
		Data:      map[string]string{"contact": contact},
	}
}

func (o *Orchestrator) escalate(conv *models.Conversation, message string) models.ChatResponse {
	conv.State = models.StateEscalated
	return models.ChatResponse{Message: message, Escalate: true}
}

func appendMessage(conv *models.Conversation, role, content string) {
	conv.Messages = append(conv.Messages, models.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
}

func mergeSlots(conv *models.Conversation, slots map[string]string) {
	for name, value := range slots {
		if value != "" {
			conv.CollectedSlots[name] = value
		}
	}
}
