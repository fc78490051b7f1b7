package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLen = 40

var reSlug = regexp.MustCompile(`^[a-z0-9-]{2,40}$`)

// IsSlug returns true if s matches ^[a-z0-9-]{2,40}$
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// Slugify converts s to a category slug: diacritics stripped, lowercase,
// runs of anything outside [a-z0-9] collapsed to a single '-', trimmed to 40
// and with no leading/trailing '-'. "Finanzas Personales" -> "finanzas-personales",
// "Inversión" -> "inversion".
func Slugify(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	out := make([]rune, 0, len(folded))
	prevDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			prevDash = false
		} else if !prevDash {
			out = append(out, '-')
			prevDash = true
		}
		if len(out) >= maxLen {
			break
		}
	}
	return strings.Trim(string(out), "-")
}
