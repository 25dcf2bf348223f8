// Package parser holds the pure row-to-record parsers for the spreadsheet
// ranges, plus the tolerant numeric coercion they share. Sheets hand back
// free-form strings: currency symbols, thousands separators, accounting
// parentheses, percent signs and assorted "empty" sentinels all appear in
// real data.
package parser

import (
	"strconv"
	"strings"
)

var emptySentinels = map[string]struct{}{
	"n/a":  {},
	"na":   {},
	"none": {},
	"null": {},
	"-":    {},
	"—":    {},
}

func stripCurrency(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ',', '$', ' ', '\t':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// toFloat coerces a cell to a float, treating empty or unparseable cells as 0.
func toFloat(s string) float64 {
	s = stripCurrency(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// asInt coerces a cell to an int, falling back to def. Fractional cells are
// truncated toward zero.
func asInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return def
}

// asFloat coerces a cell to a float, falling back to def. It understands the
// sheet conventions: empty sentinels, accounting parentheses for negatives
// ("($500)" => -500), currency symbols and trailing percent signs.
func asFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if _, ok := emptySentinels[strings.ToLower(s)]; ok {
		return def
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = stripCurrency(s)
	s = strings.TrimSuffix(s, "%")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	if negative {
		return -f
	}
	return f
}
