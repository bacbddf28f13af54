package normalize

import (
	"regexp"
	"strings"
)

// SalaryHint is a numeric range pulled out of free-text title input. It is
// recorded for analytics and the high-pay rewrite, never used as a hard
// search filter. Floor/Ceiling are nil when the corresponding bound was not
// present.
type SalaryHint struct {
	Floor    *int
	Ceiling  *int
	Currency string
}

func (h SalaryHint) Empty() bool {
	return h.Floor == nil && h.Ceiling == nil
}

var (
	moneyToken   = regexp.MustCompile(`(?i)\d[\d,.\s]*k?`)
	salaryRange  = regexp.MustCompile(`(?i)(\d[\d,.\s]*k?)\s*[-–]\s*(\d[\d,.\s]*k?)`)
	salaryAbove  = regexp.MustCompile(`(?i)>\s*=?\s*(\d[\d,.\s]*k?)`)
	salaryBelow  = regexp.MustCompile(`(?i)<\s*=?\s*(\d[\d,.\s]*k?)`)
	salarySingle = regexp.MustCompile(`(?i)\d[\d,.\s]*k?`)
)

// ParseMoneyNumbers extracts integer amounts from text, expanding a trailing
// "k" to thousands. "80k" -> 80000, "1,200" -> 1200.
func ParseMoneyNumbers(text string) []int {
	if text == "" {
		return nil
	}
	var nums []int
	for _, raw := range moneyToken.FindAllString(text, -1) {
		clean := strings.ToLower(raw)
		clean = strings.ReplaceAll(clean, ",", "")
		clean = strings.ReplaceAll(clean, " ", "")
		mult := 1
		if strings.HasSuffix(clean, "k") {
			mult = 1000
			clean = strings.TrimSuffix(clean, "k")
		}
		clean = strings.ReplaceAll(clean, ".", "")
		if clean == "" || !isDigits(clean) {
			continue
		}
		n := 0
		for _, r := range clean {
			n = n*10 + int(r-'0')
		}
		nums = append(nums, n*mult)
	}
	return nums
}

// ParseSalaryQuery detects inline salary filters like "80k-120k", ">100k",
// "<=90k" or a bare "120k" in a raw title query. It returns the query with
// the matched fragment removed, plus the extracted hint. Absence of a match
// is not an error; the hint is simply empty.
func ParseSalaryQuery(raw string) (string, SalaryHint) {
	if raw == "" {
		return "", SalaryHint{}
	}
	s := strings.TrimSpace(raw)

	if loc := salaryRange.FindStringSubmatchIndex(s); loc != nil {
		low := ParseMoneyNumbers(s[loc[2]:loc[3]])
		high := ParseMoneyNumbers(s[loc[4]:loc[5]])
		hint := SalaryHint{Currency: currencyBefore(s, loc[0])}
		if len(low) > 0 {
			hint.Floor = &low[0]
		}
		if len(high) > 0 {
			hint.Ceiling = &high[len(high)-1]
		}
		return stripMatch(s, loc[0], loc[1]), hint
	}

	if loc := salaryAbove.FindStringSubmatchIndex(s); loc != nil {
		vals := ParseMoneyNumbers(s[loc[2]:loc[3]])
		hint := SalaryHint{Currency: currencyBefore(s, loc[0])}
		if len(vals) > 0 {
			hint.Floor = &vals[0]
		}
		return stripMatch(s, loc[0], loc[1]), hint
	}

	if loc := salaryBelow.FindStringSubmatchIndex(s); loc != nil {
		vals := ParseMoneyNumbers(s[loc[2]:loc[3]])
		hint := SalaryHint{Currency: currencyBefore(s, loc[0])}
		if len(vals) > 0 {
			hint.Ceiling = &vals[0]
		}
		return stripMatch(s, loc[0], loc[1]), hint
	}

	if loc := salarySingle.FindStringIndex(s); loc != nil {
		vals := ParseMoneyNumbers(s[loc[0]:loc[1]])
		hint := SalaryHint{Currency: currencyBefore(s, loc[0])}
		if len(vals) > 0 {
			hint.Floor = &vals[0]
		}
		return stripMatch(s, loc[0], loc[1]), hint
	}

	return s, SalaryHint{}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripMatch(s string, start, end int) string {
	return strings.TrimSpace(strings.TrimSpace(s[:start]) + " " + strings.TrimSpace(s[end:]))
}

// currencyBefore picks up a currency symbol immediately preceding the
// matched amount, e.g. "€80k-100k".
func currencyBefore(s string, start int) string {
	prefix := strings.TrimRight(s[:start], " ")
	if prefix == "" {
		return ""
	}
	if strings.HasSuffix(prefix, "$") {
		return "USD"
	}
	if strings.HasSuffix(prefix, "€") {
		return "EUR"
	}
	if strings.HasSuffix(prefix, "£") {
		return "GBP"
	}
	return ""
}
