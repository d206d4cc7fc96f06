package nlu

import (
	"strings"
	"time"

	"github.com/dentassist/backend/internal/models"
)

// NLUResult is produced fresh for every invocation and owned by the caller.
type NLUResult struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Slots      map[string]string `json:"slots"`
	Entities   []EntityMatch     `json:"entities"`
	RawText    string            `json:"raw_text"`
}

// Pipeline runs the full understanding chain: normalize, extract, normalize
// entities, resolve overlaps, classify, adjust for context, map slots. It is
// stateless; a zero value works, and one instance may serve any number of
// sessions concurrently.
type Pipeline struct {
	// Clock overrides time.Now for date normalization. Tests set it; the
	// zero value uses the wall clock.
	Clock func() time.Time
}

func (p Pipeline) Analyze(message string, cctx *models.ConversationContext) NLUResult {
	now := time.Now
	if p.Clock != nil {
		now = p.Clock
	}
	ref := now()

	var hours models.BusinessHours
	if cctx != nil {
		hours = cctx.Tenant.BusinessHours
		if cctx.Tenant.Timezone != "" {
			if loc, err := time.LoadLocation(cctx.Tenant.Timezone); err == nil {
				ref = ref.In(loc)
			}
		}
	}

	normalized := Normalize(message)

	candidates := extractEntities(normalized)
	for i := range candidates {
		candidates[i].Normalized = normalizeEntity(candidates[i], ref, hours)
	}
	entities := resolveOverlaps(candidates)

	intent, conf := classifyIntent(normalized, entities)

	prevIntent := ""
	if cctx != nil {
		prevIntent = cctx.Conversation.CurrentIntent
	}
	intent, conf = adjustForContext(intent, conf, strings.ToLower(message), normalized, prevIntent)

	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}

	return NLUResult{
		Intent:     intent,
		Confidence: conf,
		Slots:      mapSlots(entities, cctx),
		Entities:   entities,
		RawText:    message,
	}
}
