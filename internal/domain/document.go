package domain

import "strings"

// NormalizeDigits drops every non-digit rune.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidDocumentID checks an 11-digit document number with two mod-11 check
// digits (CPF layout). Punctuation is ignored; repeated-digit numbers are rejected.
func ValidDocumentID(doc string) bool {
	digits := NormalizeDigits(doc)
	if len(digits) != 11 {
		return false
	}
	allSame := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}
	return checkDigit(digits[:9], 10) == int(digits[9]-'0') &&
		checkDigit(digits[:10], 11) == int(digits[10]-'0')
}

func checkDigit(prefix string, weight int) int {
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}
