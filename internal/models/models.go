package models

import "time"

// Message roles inside a conversation.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Conversation states owned by the dialogue orchestrator.
const (
	StateActive          = "active"
	StateWaitingForInput = "waiting_for_input"
	StateCompleted       = "completed"
	StateEscalated       = "escalated"
)

type ChatMessage struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type BusinessHours struct {
	Open  string   `json:"open"`  // "08:00"
	Close string   `json:"close"` // "18:00"
	Days  []string `json:"days"`  // lowercase French weekday names
}

type Tenant struct {
	ID            string        `json:"id"`
	Timezone      string        `json:"timezone"`
	BusinessHours BusinessHours `json:"business_hours"`
}

type User struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

type Conversation struct {
	Messages            []ChatMessage     `json:"messages"`
	State               string            `json:"state"`
	CurrentIntent       string            `json:"current_intent,omitempty"`
	CollectedSlots      map[string]string `json:"collected_slots"`
	ConfirmationPending bool              `json:"confirmation_pending"`
	FallbackStreak      int               `json:"fallback_streak"`
}

// ConversationContext is created by the API layer at session start, passed by
// reference each turn and mutated only by the dialogue orchestrator. The core
// keeps no session store of its own; persistence between turns is the
// caller's job.
type ConversationContext struct {
	SessionID    string       `json:"session_id"`
	User         User         `json:"user"`
	Tenant       Tenant       `json:"tenant"`
	Conversation Conversation `json:"conversation"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ChatResponse is produced once per turn and is read-only downstream.
type ChatResponse struct {
	Message          string            `json:"message"`
	SuggestedReplies []string          `json:"suggested_replies,omitempty"`
	RequiresInput    bool              `json:"requires_input"`
	InputType        string            `json:"input_type,omitempty"`
	Options          []string          `json:"options,omitempty"`
	Completed        bool              `json:"completed"`
	Escalate         bool              `json:"escalate"`
	Data             map[string]string `json:"data,omitempty"`
}

type Practitioner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
}

type Cabinet struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone"`
	Timezone      string        `json:"timezone"`
	BusinessHours BusinessHours `json:"business_hours"`
}

// TurnAudit is the fire-and-forget summary emitted once per turn.
type TurnAudit struct {
	SessionID  string    `json:"session_id"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Escalated  bool      `json:"escalated"`
	CreatedAt  time.Time `json:"created_at"`
}
