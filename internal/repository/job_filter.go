package repository

import (
	"fmt"
	"sort"
	"strings"

	"catalitium/internal/normalize"
)

// JobFilter carries the canonical search predicates. CountryCode may be an
// ISO-2 code, the EU umbrella, the HIGH_PAY pseudo-region, or free text that
// did not resolve to a code (matched loosely against location columns).
type JobFilter struct {
	Title       string
	CountryCode string
}

func (f JobFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Title) == "" && strings.TrimSpace(f.CountryCode) == ""
}

// HighPayCities are the hubs a HIGH_PAY pseudo-country query searches,
// ordered by preference.
var HighPayCities = []string{
	"san francisco", "new york", "zurich", "berlin", "paris", "madrid", "london",
}

var euHubCities = []string{"madrid", "paris", "berlin", "barcelona", "milan", "milano"}

// whereBuilder accumulates ANDed SQL clauses with positional parameters.
// Everything that reaches SQL goes through args; no user text is ever
// interpolated into the query string.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) param(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) and(clause string) {
	if clause == "" {
		return
	}
	b.clauses = append(b.clauses, clause)
}

func (b *whereBuilder) where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.clauses, " AND ")
}

func escapeLike(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `%`, `\%`)
	v = strings.ReplaceAll(v, `_`, `\_`)
	return v
}

// buildWhere translates a JobFilter into a WHERE clause plus args. The title
// predicate is a case-insensitive substring match over title and description;
// "remote" and "developer" tokens get widened handling so those searches
// also hit location text and synonym titles.
func buildWhere(f JobFilter) (string, []any) {
	b := &whereBuilder{}

	title := strings.TrimSpace(strings.ToLower(f.Title))
	if title != "" {
		tokens := strings.Fields(title)
		remoteFlag := false
		developerFlag := false
		core := make([]string, 0, len(tokens))
		for _, tok := range tokens {
			switch tok {
			case "remote":
				remoteFlag = true
			case "developer":
				developerFlag = true
			default:
				core = append(core, tok)
			}
		}

		if coreQuery := strings.Join(core, " "); coreQuery != "" {
			like := "%" + escapeLike(coreQuery) + "%"
			p := b.param(like)
			b.and(fmt.Sprintf(`(LOWER(job_title) LIKE %s ESCAPE '\' OR LOWER(job_description) LIKE %s ESCAPE '\')`, p, p))
		}
		if remoteFlag {
			p := b.param("%remote%")
			b.and(fmt.Sprintf(`(LOWER(job_title) LIKE %s ESCAPE '\' OR LOWER(job_description) LIKE %s ESCAPE '\' OR LOWER(location) LIKE %s ESCAPE '\')`, p, p, p))
		}
		if developerFlag {
			terms := []string{"developer", "programmer", "coder", "software developer", "software engineer"}
			sub := make([]string, 0, len(terms))
			for _, term := range terms {
				p := b.param("%" + escapeLike(term) + "%")
				sub = append(sub, fmt.Sprintf(`LOWER(job_title) LIKE %s ESCAPE '\' OR LOWER(job_description) LIKE %s ESCAPE '\'`, p, p))
			}
			b.and("(" + strings.Join(sub, " OR ") + ")")
		}
	}

	country := strings.TrimSpace(f.CountryCode)
	if country != "" {
		upper := strings.ToUpper(country)
		switch {
		case upper == "HIGH_PAY":
			ps := make([]string, 0, len(HighPayCities))
			for _, city := range HighPayCities {
				ps = append(ps, b.param(city))
			}
			b.and(fmt.Sprintf("LOWER(COALESCE(city, '')) IN (%s)", strings.Join(ps, ", ")))
		case upper == "EU":
			codes := make([]string, 0, len(normalize.EUCodes))
			for _, c := range normalize.EUCodes {
				codes = append(codes, b.param(strings.ToLower(c)))
			}
			hubs := make([]string, 0, len(euHubCities))
			for _, h := range euHubCities {
				hubs = append(hubs, b.param(h))
			}
			b.and(fmt.Sprintf("(LOWER(COALESCE(country, '')) IN (%s) OR LOWER(COALESCE(city, '')) IN (%s))",
				strings.Join(codes, ", "), strings.Join(hubs, ", ")))
		case len(upper) == 2 && isAlphaUpper(upper):
			sub := []string{fmt.Sprintf("LOWER(COALESCE(country, '')) = %s", b.param(strings.ToLower(upper)))}
			for _, alias := range aliasesForCode(upper) {
				p := b.param("%" + escapeLike(alias) + "%")
				sub = append(sub, fmt.Sprintf(`LOWER(COALESCE(location, '')) LIKE %s ESCAPE '\'`, p))
			}
			b.and("(" + strings.Join(sub, " OR ") + ")")
		default:
			p := b.param("%" + escapeLike(strings.ToLower(country)) + "%")
			cols := []string{"location", "city", "region", "country"}
			sub := make([]string, 0, len(cols))
			for _, col := range cols {
				sub = append(sub, fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE %s ESCAPE '\'`, col, p))
			}
			b.and("(" + strings.Join(sub, " OR ") + ")")
		}
	}

	return b.where(), b.args
}

// aliasesForCode returns the long-form names mapped to a country code, used
// to widen location matching for listings that never set a country column.
func aliasesForCode(code string) []string {
	out := make([]string, 0, 4)
	for alias, mapped := range normalize.CountryAliases {
		if mapped == code && len(alias) > 2 {
			out = append(out, alias)
		}
	}
	// Deterministic clause layout regardless of map iteration order.
	sort.Strings(out)
	return out
}

func isAlphaUpper(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
