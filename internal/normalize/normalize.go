// Package normalize turns noisy user search input into canonical predicates:
// country aliasing, title abbreviation expansion, and inline salary-hint
// extraction. Every function here is total: arbitrary text degrades to a
// broad or empty query, never to an error.
package normalize

import "strings"

// CanonicalQuery is the normalized form of one search request. It is built
// once per request and never mutated afterwards.
type CanonicalQuery struct {
	Title       string
	TitleTerms  []string
	CountryCode string
	SalaryHint  SalaryHint
}

func (q CanonicalQuery) IsEmpty() bool {
	return q.Title == "" && q.CountryCode == ""
}

// Query normalizes a raw (title, country) pair. The salary hint is parsed
// from the original title text before alias expansion so that expansions can
// never fabricate or destroy a numeric range.
func Query(rawTitle, rawCountry string) CanonicalQuery {
	cleaned, hint := ParseSalaryQuery(strings.TrimSpace(rawTitle))
	title := Title(cleaned)
	if title == "" && strings.TrimSpace(rawTitle) != "" {
		// Salary-only queries like ">100k" leave no searchable text once the
		// amount is stripped; fall back to normalizing the raw input so the
		// query still narrows results.
		title = Title(strings.TrimSpace(rawTitle))
	}
	return CanonicalQuery{
		Title:       title,
		TitleTerms:  strings.Fields(title),
		CountryCode: Country(strings.TrimSpace(rawCountry)),
		SalaryHint:  hint,
	}
}
