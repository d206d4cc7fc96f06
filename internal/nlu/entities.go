package nlu

import (
	"regexp"
	"strings"
)

// Entity types emitted by the extractor.
const (
	EntityDate         = "date"
	EntityTime         = "time"
	EntityEmail        = "email"
	EntityPhone        = "phone"
	EntityServiceType  = "service_type"
	EntityPractitioner = "practitioner"
	EntityUrgency      = "urgency"
)

const baseEntityConfidence = 0.8

// EntityMatch is a typed span found in the normalized text. Start and End are
// byte offsets into the normalized text, which is ASCII after Normalize.
type EntityMatch struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Normalized string  `json:"normalized"`
	Confidence float64 `json:"confidence"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
}

type entityPattern struct {
	entityType string
	re         *regexp.Regexp
}

// entityPatterns is the declarative matcher table, scanned in order. More
// specific patterns come before the generic ones of the same type so the
// overlap resolver keeps the longer span on equal confidence.
var entityPatterns = []entityPattern{
	{EntityDate, regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)},
	{EntityDate, regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)},
	{EntityDate, regexp.MustCompile(`\baujourd ?hui\b`)},
	{EntityDate, regexp.MustCompile(`\bapres[- ]demain\b`)},
	{EntityDate, regexp.MustCompile(`\bdemain\b`)},
	{EntityDate, regexp.MustCompile(`\b(lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche)( prochain)?\b`)},
	{EntityDate, regexp.MustCompile(`\b\d{1,2} (janvier|fevrier|mars|avril|mai|juin|juillet|aout|septembre|octobre|novembre|decembre)( \d{4})?\b`)},
	{EntityDate, regexp.MustCompile(`\bdans \d+ jours?\b`)},
	{EntityDate, regexp.MustCompile(`\bla semaine prochaine\b`)},

	{EntityTime, regexp.MustCompile(`\bvers \d{1,2}h(\d{2})?\b`)},
	{EntityTime, regexp.MustCompile(`\b\d{1,2}h\d{2}\b`)},
	{EntityTime, regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)},
	{EntityTime, regexp.MustCompile(`\b\d{1,2}h\b`)},
	{EntityTime, regexp.MustCompile(`\b\d{1,2} heures?\b`)},
	{EntityTime, regexp.MustCompile(`\b(matinee|matin|apres[- ]midi|soiree|soir)\b`)},

	{EntityEmail, regexp.MustCompile(`\b[a-z0-9][a-z0-9._%+-]*@[a-z0-9.-]+\.[a-z]{2,}\b`)},

	{EntityPhone, regexp.MustCompile(`\+213[ .-]?[567](?:[ .-]?\d{2}){4}\b`)},
	{EntityPhone, regexp.MustCompile(`\b0[567](?:[ .-]?\d{2}){4}\b`)},

	{EntityServiceType, regexp.MustCompile(`\b(detartrage|nettoyage|hygiene)( dentaire)?\b`)},
	{EntityServiceType, regexp.MustCompile(`\b(consultation|controle|visite de controle)\b`)},
	{EntityServiceType, regexp.MustCompile(`\b(plombage|obturation|caries?)\b`)},
	{EntityServiceType, regexp.MustCompile(`\bcouronnes?\b`)},
	{EntityServiceType, regexp.MustCompile(`\b(extraction|arracher une dent|enlever une dent)\b`)},
	{EntityServiceType, regexp.MustCompile(`\b(blanchiment|blanchir les dents)\b`)},
	{EntityServiceType, regexp.MustCompile(`\b(orthodontie|appareil dentaire|bagues)\b`)},
	{EntityServiceType, regexp.MustCompile(`\bimplants?( dentaires?)?\b`)},

	{EntityPractitioner, regexp.MustCompile(`\b(docteur|dr|dentiste) [a-z]{2,}\b`)},

	{EntityUrgency, regexp.MustCompile(`\b(pas urgent|pas presse|sans urgence|quand vous (pouvez|voulez)|routine)\b`)},
	{EntityUrgency, regexp.MustCompile(`\b(urgences?|urgent|tres mal|rage de dents?|tout de suite|immediatement|des que possible)\b`)},
}

// practitionerStopwords filters out function words and date vocabulary that
// follow a bare "dentiste"/"docteur" without naming anyone.
var practitionerStopwords = map[string]bool{
	"le": true, "la": true, "les": true, "un": true, "une": true, "de": true,
	"du": true, "des": true, "pour": true, "demain": true, "aujourd": true,
	"hui": true, "matin": true, "soir": true, "midi": true, "lundi": true,
	"mardi": true, "mercredi": true, "jeudi": true, "vendredi": true,
	"samedi": true, "dimanche": true, "prochain": true, "svp": true,
	"merci": true, "vers": true, "ou": true, "et": true, "qui": true,
	"que": true, "est": true, "sont": true, "dans": true, "chez": true,
}

// extractEntities scans the normalized text against the matcher table and
// returns every candidate span with the base confidence. Overlaps across
// patterns are expected here; the resolver prunes them.
func extractEntities(text string) []EntityMatch {
	var out []EntityMatch
	for _, p := range entityPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			if p.entityType == EntityPractitioner && !plausiblePractitioner(value) {
				continue
			}
			out = append(out, EntityMatch{
				Type:       p.entityType,
				Value:      value,
				Normalized: value,
				Confidence: baseEntityConfidence,
				Start:      loc[0],
				End:        loc[1],
			})
		}
	}
	return out
}

func plausiblePractitioner(value string) bool {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return false
	}
	return !practitionerStopwords[fields[len(fields)-1]]
}
