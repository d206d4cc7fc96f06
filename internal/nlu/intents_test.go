package nlu

import (
	"math"
	"testing"
)

func classify(t *testing.T, text string) (string, float64) {
	t.Helper()
	normalized := Normalize(text)
	return classifyIntent(normalized, extractEntities(normalized))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassifyIntentTable(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"bonjour", IntentGreeting},
		{"Bonsoir docteur", IntentGreeting},
		{"je voudrais prendre un rendez-vous", IntentBookAppointment},
		{"prendre rdv svp", IntentBookAppointment},
		{"réserver un créneau", IntentBookAppointment},
		{"je veux déplacer mon rendez-vous", IntentReschedule},
		{"changer la date", IntentReschedule},
		{"je dois annuler", IntentCancel},
		{"annulation de mon rdv", IntentCancel},
		{"avez-vous des disponibilités ?", IntentCheckAvailability},
		{"quels créneaux sont libres", IntentCheckAvailability},
		{"qui sont vos dentistes ?", IntentListPractitioners},
		{"la liste des praticiens", IntentListPractitioners},
		{"quels sont vos horaires ?", IntentClinicInfo},
		{"quelle est votre adresse", IntentClinicInfo},
		{"combien ça coûte", IntentClinicInfo},
		{"j'ai très mal aux dents", IntentEmergency},
		{"c'est une urgence", IntentEmergency},
		{"aidez-moi", IntentHelp},
		{"je ne comprends pas", IntentHelp},
		{"au revoir", IntentGoodbye},
		{"merci", IntentGoodbye},
	}
	for _, tc := range cases {
		got, conf := classify(t, tc.text)
		if got != tc.want {
			t.Fatalf("%q: got %s (%.2f), want %s", tc.text, got, conf, tc.want)
		}
		if conf < baseIntentConfidence {
			t.Fatalf("%q: confidence %.2f below base", tc.text, conf)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	for _, text := range []string{"le ciel est bleu", "azerty qwerty", "14h30"} {
		intent, conf := classify(t, text)
		if intent != IntentFallback {
			t.Fatalf("%q: got %s", text, intent)
		}
		if conf != 0 {
			t.Fatalf("%q: fallback confidence %.2f, want 0", text, conf)
		}
	}
}

func TestEntityBoostRaisesBooking(t *testing.T) {
	_, plain := classify(t, "je voudrais prendre un rendez-vous")
	intent, boosted := classify(t, "je voudrais prendre un rendez-vous demain pour un détartrage vers 10h")
	if intent != IntentBookAppointment {
		t.Fatalf("got %s", intent)
	}
	if boosted <= plain {
		t.Fatalf("boosted %.2f not above plain %.2f", boosted, plain)
	}
	// date +0.2, service +0.15, time +0.1 on top of the base score
	if !almostEqual(boosted, baseIntentConfidence+0.45) {
		t.Fatalf("boosted = %.2f", boosted)
	}
}

func TestContactBoostOnCancel(t *testing.T) {
	intent, conf := classify(t, "annuler mon rendez-vous, marie@test.com")
	if intent != IntentCancel {
		t.Fatalf("got %s", intent)
	}
	if !almostEqual(conf, baseIntentConfidence+0.2) {
		t.Fatalf("conf = %.2f", conf)
	}
}

func TestEmergencyOutranksBookingOnTies(t *testing.T) {
	// Both rules match and emergency's floor beats the plain booking score.
	intent, conf := classify(t, "j'ai mal aux dents, je veux prendre un rendez-vous")
	if intent != IntentEmergency {
		t.Fatalf("got %s (%.2f)", intent, conf)
	}
}

func TestAdjustForContextForcesBookingOnYes(t *testing.T) {
	normalized := Normalize("Oui, parfait")
	intent, conf := adjustForContext(IntentFallback, 0, "Oui, parfait", normalized, IntentBookAppointment)
	if intent != IntentBookAppointment || !almostEqual(conf, 0.9) {
		t.Fatalf("got %s %.2f", intent, conf)
	}
}

func TestAdjustForContextBoostsBookingAfterAvailability(t *testing.T) {
	normalized := Normalize("je prends rendez-vous")
	_, conf := adjustForContext(IntentBookAppointment, 0.6, "je prends rendez-vous", normalized, IntentCheckAvailability)
	if !almostEqual(conf, 0.8) {
		t.Fatalf("conf = %.2f", conf)
	}
	_, capped := adjustForContext(IntentBookAppointment, 0.9, "je prends rendez-vous", normalized, IntentCheckAvailability)
	if !almostEqual(capped, 0.95) {
		t.Fatalf("capped = %.2f", capped)
	}
}

func TestAdjustForContextIgnoresUnknownPrevIntent(t *testing.T) {
	normalized := Normalize("oui")
	intent, conf := adjustForContext(IntentFallback, 0, "oui", normalized, "weird_state")
	if intent != IntentFallback || conf != 0 {
		t.Fatalf("got %s %.2f", intent, conf)
	}
}

func TestEmergencyConfidenceCountsDistinctKeywords(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"c'est une urgence", 0.8},
		{"j'ai mal, il me faut un rendez-vous maintenant", 0.9},
		{"urgence, douleur, mal, tout de suite, maintenant", 0.98},
	}
	for _, tc := range cases {
		normalized := Normalize(tc.raw)
		intent, conf := adjustForContext(IntentEmergency, 0.7, tc.raw, normalized, "")
		if intent != IntentEmergency {
			t.Fatalf("%q: got %s", tc.raw, intent)
		}
		// Scores from keyword counting land on exact two-decimal values.
		if conf != tc.want {
			t.Fatalf("%q: conf = %v, want %v", tc.raw, conf, tc.want)
		}
	}
}

func TestAffirmativeAndNegative(t *testing.T) {
	for _, s := range []string{"oui", "ouais d'accord", "ok parfait", "je confirme"} {
		if !IsAffirmative(Normalize(s)) {
			t.Fatalf("%q should be affirmative", s)
		}
	}
	for _, s := range []string{"non", "pas du tout", "non, annule tout"} {
		if !IsNegative(Normalize(s)) {
			t.Fatalf("%q should be negative", s)
		}
	}
	if IsAffirmative(Normalize("non merci")) {
		t.Fatal("negative text flagged affirmative")
	}
}
