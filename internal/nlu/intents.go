package nlu

import "regexp"

// The fixed intent set.
const (
	IntentGreeting          = "greeting"
	IntentCheckAvailability = "check_availability"
	IntentBookAppointment   = "book_appointment"
	IntentReschedule        = "reschedule_appointment"
	IntentCancel            = "cancel_appointment"
	IntentListPractitioners = "list_practitioners"
	IntentClinicInfo        = "clinic_info"
	IntentEmergency         = "emergency"
	IntentHelp              = "help"
	IntentGoodbye           = "goodbye"
	IntentFallback          = "fallback"
)

const baseIntentConfidence = 0.6

type intentRule struct {
	intent   string
	patterns []*regexp.Regexp
}

// intentRules is the declarative classification table. Slice order is the
// tie-break priority between intents that reach the same score.
var intentRules = []intentRule{
	{IntentEmergency, []*regexp.Regexp{
		regexp.MustCompile(`\burgences?\b`),
		regexp.MustCompile(`\burgent\b`),
		regexp.MustCompile(`\b(tres|trop|si) mal\b`),
		regexp.MustCompile(`\bmal aux? dents?\b`),
		regexp.MustCompile(`\brage de dents?\b`),
		regexp.MustCompile(`\bdouleurs?\b`),
		regexp.MustCompile(`\babces\b`),
		regexp.MustCompile(`\bdent cassee\b`),
		regexp.MustCompile(`\b(je )?saigne\b`),
		regexp.MustCompile(`\binsupportable\b`),
		regexp.MustCompile(`\bgonfle?e?\b`),
	}},
	{IntentBookAppointment, []*regexp.Regexp{
		regexp.MustCompile(`\bprendre (un )?(rendez[- ]?vous|rdv)\b`),
		regexp.MustCompile(`\b(je (voudrais|veux|souhaite|souhaiterais)|j aimerais) (bien )?(prendre )?(un )?(rendez[- ]?vous|rdv)\b`),
		regexp.MustCompile(`\breserver (un )?(rendez[- ]?vous|rdv|creneau)\b`),
		regexp.MustCompile(`\bfixer (un )?(rendez[- ]?vous|rdv)\b`),
	}},
	{IntentReschedule, []*regexp.Regexp{
		regexp.MustCompile(`\b(deplacer|reporter|decaler|changer) (mon |le |ce |notre )?(rendez[- ]?vous|rdv)\b`),
		regexp.MustCompile(`\bchanger (la |l )?(date|heure)\b`),
	}},
	{IntentCancel, []*regexp.Regexp{
		regexp.MustCompile(`\bannuler\b`),
		regexp.MustCompile(`\bannulation\b`),
		regexp.MustCompile(`\bsupprimer (mon |le )?(rendez[- ]?vous|rdv)\b`),
		regexp.MustCompile(`\bje ne (peux|pourrai) pas venir\b`),
	}},
	{IntentCheckAvailability, []*regexp.Regexp{
		regexp.MustCompile(`\bdisponibilites?\b`),
		regexp.MustCompile(`\bdisponibles?\b`),
		regexp.MustCompile(`\bcreneaux?\b`),
		regexp.MustCompile(`\bavez[- ]vous de la place\b`),
		regexp.MustCompile(`\bquand (est ce que )?(je peux|puis je) venir\b`),
		regexp.MustCompile(`\bhoraires? (libres?|disponibles?)\b`),
	}},
	{IntentListPractitioners, []*regexp.Regexp{
		regexp.MustCompile(`\bqui sont (vos|les) (dentistes|docteurs|praticiens)\b`),
		regexp.MustCompile(`\b(vos|les) dentistes\b`),
		regexp.MustCompile(`\bliste des (dentistes|praticiens|docteurs)\b`),
		regexp.MustCompile(`\bquels? (dentistes|praticiens|docteurs)\b`),
		regexp.MustCompile(`\bl equipe\b`),
	}},
	{IntentClinicInfo, []*regexp.Regexp{
		regexp.MustCompile(`\bhoraires? d ouverture\b`),
		regexp.MustCompile(`\b(vos|les|quels) horaires\b`),
		regexp.MustCompile(`\badresse\b`),
		regexp.MustCompile(`\bou (etes vous|se trouve|vous trouvez)\b`),
		regexp.MustCompile(`\btarifs?\b`),
		regexp.MustCompile(`\bprix\b`),
		regexp.MustCompile(`\bcombien (ca )?coute\b`),
		regexp.MustCompile(`\b(etes vous|c est) ouvert\b`),
		regexp.MustCompile(`\bnumero de telephone\b`),
	}},
	{IntentHelp, []*regexp.Regexp{
		regexp.MustCompile(`\baidez[- ]?moi\b`),
		regexp.MustCompile(`^aide$`),
		regexp.MustCompile(`\bbesoin d aide\b`),
		regexp.MustCompile(`\bcomment (ca marche|faire)\b`),
		regexp.MustCompile(`\bje ne (comprends|sais) pas\b`),
	}},
	{IntentGreeting, []*regexp.Regexp{
		regexp.MustCompile(`^(bonjour|bonsoir|salut|coucou|bjr)\b`),
	}},
	{IntentGoodbye, []*regexp.Regexp{
		regexp.MustCompile(`\bau revoir\b`),
		regexp.MustCompile(`\ba (bientot|plus)\b`),
		regexp.MustCompile(`\bbonne (journee|soiree)\b`),
		regexp.MustCompile(`\bbye\b`),
		regexp.MustCompile(`^merci( beaucoup)?$`),
	}},
}

// classifyIntent scores the fixed intent set against the normalized text.
// One matching pattern yields the base confidence; entity-driven boosts are
// added per intent, and emergency gets a floor of 0.7 capped at 0.95. When
// nothing matches the result is fallback at confidence zero.
func classifyIntent(text string, entities []EntityMatch) (string, float64) {
	best := IntentFallback
	bestConf := 0.0

	for _, rule := range intentRules {
		matched := false
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		conf := baseIntentConfidence + entityBoost(rule.intent, entities)
		if rule.intent == IntentEmergency {
			if conf < 0.7 {
				conf = 0.7
			}
			if conf > 0.95 {
				conf = 0.95
			}
		}

		// Strict comparison keeps the earlier rule on equal scores, so the
		// table order doubles as the declared priority.
		if conf > bestConf {
			best = rule.intent
			bestConf = conf
		}
	}

	return best, bestConf
}

func entityBoost(intent string, entities []EntityMatch) float64 {
	boost := 0.0
	switch intent {
	case IntentBookAppointment, IntentCheckAvailability:
		if hasEntity(entities, EntityDate) {
			boost += 0.2
		}
		if hasEntity(entities, EntityServiceType) {
			boost += 0.15
		}
		if hasEntity(entities, EntityTime) {
			boost += 0.1
		}
	case IntentReschedule, IntentCancel:
		if hasEntity(entities, EntityEmail) || hasEntity(entities, EntityPhone) {
			boost += 0.2
		}
	}
	return boost
}

func hasEntity(entities []EntityMatch, entityType string) bool {
	for _, e := range entities {
		if e.Type == entityType {
			return true
		}
	}
	return false
}

// KnownIntent reports whether s names one of the fixed intents.
func KnownIntent(s string) bool {
	switch s {
	case IntentGreeting, IntentCheckAvailability, IntentBookAppointment,
		IntentReschedule, IntentCancel, IntentListPractitioners,
		IntentClinicInfo, IntentEmergency, IntentHelp, IntentGoodbye,
		IntentFallback:
		return true
	}
	return false
}
