package cardnum

import "strings"

// MaskPrefix is printed in front of the last four characters of a card number.
const MaskPrefix = "****-****-****-"

// IsDigits reports whether s is made of ASCII digits only. Empty s is all digits.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LastN returns the last n bytes of s, or s itself when it is shorter.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Mask hides everything but the last four characters.
// Short numbers are not padded: "12" becomes "****-****-****-12".
func Mask(number string) string {
	if number == "" {
		return ""
	}
	return MaskPrefix + LastN(number, 4)
}

// Normalize strips spaces, tabs and dashes.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}
