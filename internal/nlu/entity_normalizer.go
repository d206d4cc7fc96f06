package nlu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dentassist/backend/internal/models"
)

const isoDate = "2006-01-02"

// Day-part literals carried in normalized time values.
const (
	WindowMorning   = "morning"
	WindowAfternoon = "afternoon"
	WindowEvening   = "evening"
)

var (
	isoDateRE    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDateRE  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	inDaysRE     = regexp.MustCompile(`^dans (\d+) jours?$`)
	monthDateRE  = regexp.MustCompile(`^(\d{1,2}) ([a-z]+)( (\d{4}))?$`)
	clockTimeRE  = regexp.MustCompile(`^(\d{1,2})[h:](\d{2})?$`)
	wordsTimeRE  = regexp.MustCompile(`^(\d{1,2}) heures?$`)
	hoursMinutes = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

var weekdays = map[string]time.Weekday{
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
	"dimanche": time.Sunday,
}

var months = map[string]time.Month{
	"janvier": time.January, "fevrier": time.February, "mars": time.March,
	"avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "aout": time.August, "septembre": time.September,
	"octobre": time.October, "novembre": time.November, "decembre": time.December,
}

var dayParts = map[string]string{
	"matin":      WindowMorning,
	"matinee":    WindowMorning,
	"apres-midi": WindowAfternoon,
	"apres midi": WindowAfternoon,
	"soir":       WindowEvening,
	"soiree":     WindowEvening,
}

// serviceSynonyms maps raw vocabulary to the canonical service category, in
// match order. Unmapped text passes through unchanged.
var serviceSynonyms = []struct{ raw, canonical string }{
	{"detartrage", "detartrage"},
	{"nettoyage", "detartrage"},
	{"hygiene", "detartrage"},
	{"consultation", "consultation"},
	{"controle", "consultation"},
	{"visite", "consultation"},
	{"plombage", "plombage"},
	{"obturation", "plombage"},
	{"carie", "plombage"},
	{"couronne", "couronne"},
	{"extraction", "extraction"},
	{"arracher", "extraction"},
	{"enlever", "extraction"},
	{"blanchiment", "blanchiment"},
	{"blanchir", "blanchiment"},
	{"orthodontie", "orthodontie"},
	{"appareil", "orthodontie"},
	{"bagues", "orthodontie"},
	{"implant", "implant"},
}

// normalizeEntity reduces a raw match to its canonical form. It never fails:
// anything it cannot parse comes back as the raw matched text.
func normalizeEntity(m EntityMatch, ref time.Time, hours models.BusinessHours) string {
	switch m.Type {
	case EntityDate:
		return normalizeDate(m.Value, ref, hours)
	case EntityTime:
		return normalizeTime(m.Value)
	case EntityEmail:
		return strings.ToLower(m.Value)
	case EntityPhone:
		return normalizePhone(m.Value)
	case EntityServiceType:
		return normalizeService(m.Value)
	case EntityPractitioner:
		return normalizePractitioner(m.Value)
	case EntityUrgency:
		return normalizeUrgency(m.Value)
	}
	return m.Value
}

func normalizeDate(value string, ref time.Time, hours models.BusinessHours) string {
	v := strings.TrimSpace(value)
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	switch {
	case isoDateRE.MatchString(v):
		return v
	case v == "aujourd hui" || v == "aujourdhui":
		return today.Format(isoDate)
	case v == "demain":
		return today.AddDate(0, 0, 1).Format(isoDate)
	case v == "apres-demain" || v == "apres demain":
		return today.AddDate(0, 0, 2).Format(isoDate)
	case v == "la semaine prochaine":
		return today.AddDate(0, 0, 7).Format(isoDate)
	}

	if m := slashDateRE.FindStringSubmatch(v); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
		return value
	}

	if m := inDaysRE.FindStringSubmatch(v); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return value
		}
		return today.AddDate(0, 0, n).Format(isoDate)
	}

	if wd, ok := weekdays[strings.TrimSuffix(v, " prochain")]; ok {
		delta := (int(wd) - int(today.Weekday()) + 7) % 7
		if delta == 0 && !withinBusinessHours(ref, hours) {
			delta = 7
		}
		return today.AddDate(0, 0, delta).Format(isoDate)
	}

	if m := monthDateRE.FindStringSubmatch(v); m != nil {
		month, ok := months[m[2]]
		if !ok {
			return value
		}
		day, _ := strconv.Atoi(m[1])
		year := today.Year()
		if m[4] != "" {
			year, _ = strconv.Atoi(m[4])
		}
		d := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
		if m[4] == "" && d.Before(today) {
			d = d.AddDate(1, 0, 0)
		}
		return d.Format(isoDate)
	}

	return value
}

func normalizeTime(value string) string {
	v := strings.TrimSpace(value)
	if w, ok := dayParts[v]; ok {
		return w
	}
	v = strings.TrimPrefix(v, "vers ")

	var hour, minute int
	var err error
	if m := clockTimeRE.FindStringSubmatch(v); m != nil {
		hour, err = strconv.Atoi(m[1])
		if err == nil && m[2] != "" {
			minute, err = strconv.Atoi(m[2])
		}
	} else if m := wordsTimeRE.FindStringSubmatch(v); m != nil {
		hour, err = strconv.Atoi(m[1])
	} else {
		return value
	}
	if err != nil || hour > 23 || minute > 59 {
		return value
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

var phoneSeparators = strings.NewReplacer(" ", "", ".", "", "-", "")

func normalizePhone(value string) string {
	v := phoneSeparators.Replace(strings.TrimSpace(value))
	switch {
	case strings.HasPrefix(v, "+33"), strings.HasPrefix(v, "0033"):
		return v
	case strings.HasPrefix(v, "+213"):
		return v
	case strings.HasPrefix(v, "0"):
		return "+213" + v[1:]
	}
	return v
}

func normalizeService(value string) string {
	for _, s := range serviceSynonyms {
		if strings.Contains(value, s.raw) {
			return s.canonical
		}
	}
	return value
}

func normalizePractitioner(value string) string {
	fields := strings.Fields(value)
	name := fields[len(fields)-1]
	return strings.ToUpper(name[:1]) + name[1:]
}

func normalizeUrgency(value string) string {
	for _, calm := range []string{"pas urgent", "pas presse", "sans urgence", "quand vous", "routine"} {
		if strings.Contains(value, calm) {
			return "routine"
		}
	}
	return "urgent"
}

// withinBusinessHours reports whether the clock part of t falls inside the
// tenant's opening window. Unparsable hours count as closed, which pushes
// same-weekday dates to the following week.
func withinBusinessHours(t time.Time, hours models.BusinessHours) bool {
	openAt, okOpen := parseClock(hours.Open)
	closeAt, okClose := parseClock(hours.Close)
	if !okOpen || !okClose {
		return false
	}
	cur := t.Hour()*60 + t.Minute()
	return cur >= openAt && cur < closeAt
}

func parseClock(v string) (int, bool) {
	m := hoursMinutes.FindStringSubmatch(v)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return 0, false
	}
	return h*60 + min, true
}
