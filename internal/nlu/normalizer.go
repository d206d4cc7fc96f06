package nlu

import (
	"regexp"
	"strings"
)

var accentReplacer = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "æ", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o", "œ", "o",
	"ù", "u", "ú", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

var (
	apostropheRE    = regexp.MustCompile(`['’]`)
	leadingPunctRE  = regexp.MustCompile(`(^|\s)[.,;!?"]+`)
	trailingPunctRE = regexp.MustCompile(`[.,;!?"]+(\s|$)`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw user text for pattern matching: lowercase,
// accents folded to ASCII, apostrophes opened into spaces, punctuation
// stripped at word boundaries (dots inside emails and the like survive),
// whitespace collapsed. Idempotent.
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = accentReplacer.Replace(t)
	t = apostropheRE.ReplaceAllString(t, " ")
	t = leadingPunctRE.ReplaceAllString(t, "$1")
	t = trailingPunctRE.ReplaceAllString(t, "$1")
	t = whitespaceRE.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
