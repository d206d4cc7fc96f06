package nlu

import (
	"math"
	"regexp"
	"strings"
)

// Distinct keywords counted for the emergency confidence recomputation.
var emergencyKeywords = []string{"mal", "douleur", "urgence", "tout de suite", "maintenant"}

var affirmativeRE = regexp.MustCompile(`\b(oui|ouais|ok|d accord|je confirme|parfait|volontiers|c est bon)\b`)

var negativeRE = regexp.MustCompile(`\b(non|pas du tout|je refuse|annule|pas d accord)\b`)

// IsAffirmative reports whether normalized text carries an affirmative token.
func IsAffirmative(normalized string) bool {
	return affirmativeRE.MatchString(normalized)
}

// IsNegative reports whether normalized text carries a refusal token.
func IsNegative(normalized string) bool {
	return negativeRE.MatchString(normalized)
}

// adjustForContext re-scores the classified intent using the previous turn.
// An unrecognized previous intent skips the history heuristics; the emergency
// recomputation depends only on the current raw text. Confidence never goes
// above 0.98 nor below 0 here.
func adjustForContext(intent string, conf float64, rawText, normalized, prevIntent string) (string, float64) {
	if prevIntent != "" && KnownIntent(prevIntent) {
		if prevIntent == IntentBookAppointment && IsAffirmative(normalized) {
			return IntentBookAppointment, 0.9
		}
		if prevIntent == IntentCheckAvailability && intent == IntentBookAppointment {
			conf += 0.2
			if conf > 0.95 {
				conf = 0.95
			}
		}
	}

	if intent == IntentEmergency {
		raw := strings.ToLower(rawText)
		hits := 0
		for _, kw := range emergencyKeywords {
			if strings.Contains(raw, kw) {
				hits++
			}
		}
		conf = math.Round((0.7+0.1*float64(hits))*100) / 100
	}

	if conf > 0.98 {
		conf = 0.98
	}
	if conf < 0 {
		conf = 0
	}
	return intent, conf
}
