package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	thousandsDot   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	thousandsComma = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// LenientFloat mirrors the permissive numeric coercion of the message feed:
// empty text yields nil (distinct from zero), non-numeric text yields NaN
// without a surfaced error. Callers that need hard validation must check
// math.IsNaN themselves.
func LenientFloat(input string) *float64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(normalizeNumericToken(s), 64)
	if err != nil {
		parsed = math.NaN()
	}
	return &parsed
}

// ReportNumber parses one fixed-width report cell. Unlike LenientFloat it
// returns nil for garbage, so diff computation can degrade to its sentinel.
func ReportNumber(input string) *float64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	parsed, err := strconv.ParseFloat(normalizeNumericToken(s), 64)
	if err != nil {
		return nil
	}
	if neg {
		parsed = -parsed
	}
	return &parsed
}

func normalizeNumericToken(token string) string {
	compact := strings.NewReplacer("\u00a0", "", " ", "").Replace(token)
	if thousandsDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if thousandsComma.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
