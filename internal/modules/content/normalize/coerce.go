// Package normalize maps loosely typed spreadsheet rows onto the typed
// content records. Nothing here fails: malformed cells fall back to defaults.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/sheetsite/core/internal/modules/sheets/gviz"
	"golang.org/x/text/unicode/norm"
)

// Text returns a string cell as-is; blank cells become "".
func Text(v gviz.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}

// ID stringifies an identifier cell, whether it arrived as a number or text.
func ID(v gviz.Value) string {
	return NormalizeID(v.String())
}

// NormalizeID trims an identifier and folds numeric spellings ("10", "10.0",
// "010", " 10 ") to one representation. Every parent/child comparison goes
// through it. Digits are compared as text so long ids never lose precision.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || !isPlainNumber(s) {
		return s
	}
	sign := ""
	switch s[0] {
	case '-':
		sign, s = "-", s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	whole = strings.TrimLeft(whole, "0")
	frac = strings.TrimRight(frac, "0")
	if whole == "" {
		whole = "0"
	}
	if whole == "0" && frac == "" {
		return "0"
	}
	if frac != "" {
		return sign + whole + "." + frac
	}
	return sign + whole
}

// SameID compares two identifiers after normalization.
func SameID(a, b string) bool {
	return NormalizeID(a) == NormalizeID(b)
}

// isPlainNumber accepts an optional sign, digits and at most one dot, with
// at least one digit.
func isPlainNumber(s string) bool {
	digits, dots := 0, 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		case (r == '-' || r == '+') && i == 0:
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// Order parses a display-order cell. Numbers are truncated; text is read like
// a leading-integer prefix ("12abc" is 12). Anything unreadable is 0.
func Order(v gviz.Value) int {
	if n, ok := v.Number(); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0
		}
		return int(n)
	}
	return ParseOrder(v.String())
}

// ParseOrder reads the leading integer of s, 0 when there is none.
func ParseOrder(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return sign * n
}

// fold lowercases and NFC-normalizes a label for comparisons.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
