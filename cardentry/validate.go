package cardentry

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field names one of the three form inputs.
type Field string

const (
	FieldName       Field = "name"
	FieldCardNumber Field = "cardNumber"
	FieldLimit      Field = "limit"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldCardNumber, FieldLimit}

// ErrUnknownField is returned by ParseField for names outside Fields.
var ErrUnknownField = errors.New("unknown field")

// ParseField maps a wire name to a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldCardNumber, FieldLimit:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownField)
}

const (
	nameMinLen = 2
	nameMaxLen = 50
)

// inputSpace is the whitespace stripped from browser form input: ASCII
// controls, no-break space, the Zs block, line separators and the BOM.
// RE2's \s covers the ASCII part only.
const inputSpace = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	nameChars       = regexp.MustCompile(`^[a-zA-Z` + inputSpace + `]+$`)
	consecutiveWS   = regexp.MustCompile(`[` + inputSpace + `]{2,}`)
	cardNumberChars = regexp.MustCompile(`^\d{1,19}$`)
	limitChars      = regexp.MustCompile(`^-?\d*\.?\d*$`)
)

// ValidateField returns the first rule violated by value, or "" when it is valid.
func ValidateField(field Field, value string) string {
	switch field {
	case FieldName:
		return validateName(value)
	case FieldCardNumber:
		return validateCardNumber(value)
	case FieldLimit:
		return validateLimit(value)
	default:
		return ""
	}
}

func isInputSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

func trimInputSpace(s string) string {
	return strings.TrimFunc(s, isInputSpace)
}

func validateName(value string) string {
	trimmed := trimInputSpace(value)
	switch n := utf8.RuneCountInString(trimmed); {
	case n == 0:
		return "Name is required"
	case n < nameMinLen:
		return "Name must be at least 2 characters long"
	case n > nameMaxLen:
		return "Name must not exceed 50 characters"
	}
	if !nameChars.MatchString(value) {
		return "Name can only contain letters and spaces"
	}
	if consecutiveWS.MatchString(value) {
		return "Name cannot contain consecutive spaces"
	}
	if value != trimmed {
		return "Name cannot start or end with spaces"
	}
	return ""
}

func validateCardNumber(value string) string {
	if trimInputSpace(value) == "" {
		return "Card number is required"
	}
	if !cardNumberChars.MatchString(value) {
		return "Card number must be numeric and up to 19 digits"
	}
	return ""
}

func validateLimit(value string) string {
	if value == "" {
		return "Credit limit is required"
	}
	if !limitChars.MatchString(value) {
		return "Only numbers are allowed"
	}
	n, ok := parseLimit(value)
	if !ok {
		return "Only numbers are allowed"
	}
	if n <= 0 {
		return "Credit limit must be greater than 0"
	}
	return ""
}

// parseLimit accepts what the limit pattern lets through ("1.", ".5", "-3")
// and rejects the digitless leftovers ("-", ".") and overflow to infinity.
func parseLimit(value string) (float64, bool) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
