package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// CountryAliases maps lowercase country names, demonyms and common
// misspellings in several languages to the code used in the listings store.
var CountryAliases = map[string]string{
	"deutschland": "DE", "germany": "DE", "deu": "DE", "de": "DE",
	"switzerland": "CH", "schweiz": "CH", "suisse": "CH", "svizzera": "CH", "ch": "CH",
	"austria": "AT", "österreich": "AT", "at": "AT",
	"europe": "EU", "eu": "EU", "eur": "EU", "european union": "EU",
	"uk": "UK", "gb": "UK", "england": "UK", "united kingdom": "UK",
	"usa": "US", "united states": "US", "america": "US", "us": "US",
	"spain": "ES", "es": "ES", "france": "FR", "fr": "FR", "italy": "IT", "it": "IT",
	"netherlands": "NL", "nl": "NL", "belgium": "BE", "be": "BE", "sweden": "SE", "se": "SE",
	"poland": "PL", "colombia": "CO", "mexico": "MX",
	"portugal": "PT", "ireland": "IE", "denmark": "DK", "finland": "FI", "greece": "GR",
	"hungary": "HU", "romania": "RO", "slovakia": "SK", "slovenia": "SI", "bulgaria": "BG",
	"croatia": "HR", "cyprus": "CY", "czech republic": "CZ", "czechia": "CZ", "estonia": "EE",
	"latvia": "LV", "lithuania": "LT", "luxembourg": "LU", "malta": "MT",
	"india": "IN", "bharat": "IN", "in": "IN",
}

// EUCodes are the member-state codes an "EU" filter expands to.
var EUCodes = []string{
	"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE", "GR", "HU", "IE",
	"IT", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO", "SK", "SI", "ES", "SE",
}

// orderedAliases holds the alias keys in a fixed order so the fallback scan
// below is deterministic regardless of map iteration order.
var orderedAliases = func() []string {
	out := make([]string, 0, len(CountryAliases))
	for alias := range CountryAliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}()

var wordBoundaryAlias = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(CountryAliases))
	for alias := range CountryAliases {
		out[alias] = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`)
	}
	return out
}()

// Country resolves free-text country input to a code where possible.
// Unrecognized input passes through trimmed; this never fails.
func Country(raw string) string {
	if raw == "" {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return ""
	}
	if code, ok := CountryAliases[t]; ok {
		return code
	}
	if len(t) == 2 && isAlpha(t) {
		return strings.ToUpper(t)
	}
	for _, alias := range orderedAliases {
		if wordBoundaryAlias[alias].MatchString(t) {
			return CountryAliases[alias]
		}
	}
	return strings.TrimSpace(raw)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}
