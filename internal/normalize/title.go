package normalize

import (
	"regexp"
	"strings"
)

type titleAlias struct {
	From string
	To   string
}

// TitleAliases is applied in order as plain substring replacement. The order
// is part of the contract: an earlier expansion can introduce text that a
// later rule then matches (e.g. "pm" inside "development"). Downstream
// matching tolerates the occasional odd expansion, and keeping the table
// order stable keeps results reproducible.
var TitleAliases = []titleAlias{
	{"swe", "software engineer"},
	{"software eng", "software engineer"},
	{"sw eng", "software engineer"},
	{"frontend", "front end"},
	{"front-end", "front end"},
	{"backend", "back end"},
	{"back-end", "back end"},
	{"fullstack", "full stack"},
	{"full-stack", "full stack"},
	{"pm", "product manager"},
	{"prod mgr", "product manager"},
	{"product owner", "product manager"},
	{"ds", "data scientist"},
	{"ml", "machine learning"},
	{"mle", "machine learning engineer"},
	{"sre", "site reliability engineer"},
	{"devops", "devops"},
	{"sec eng", "security engineer"},
	{"infosec", "security"},
	{"programmer", "developer"},
	{"coder", "developer"},
}

var nonTitleChars = regexp.MustCompile(`[^\w\s\-/]`)
var repeatedSpace = regexp.MustCompile(`\s+`)

// Title canonicalizes a free-text role query: lowercase, alias expansion,
// punctuation stripped, whitespace collapsed. Total function, never fails.
func Title(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(raw)
	for _, a := range TitleAliases {
		if strings.Contains(s, a.From) {
			s = strings.ReplaceAll(s, a.From, a.To)
		}
	}
	s = nonTitleChars.ReplaceAllString(s, " ")
	s = repeatedSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FirstWord returns the leading token of a canonical title, used for the
// related-listings fallback search.
func FirstWord(canonical string) string {
	fields := strings.Fields(strings.TrimSpace(canonical))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
