package cardentry_test

import (
	"strings"
	"testing"

	"github.com/alovak/cardentry-playground/cardentry"
	"github.com/stretchr/testify/require"
)

func TestValidateField(t *testing.T) {
	cases := []struct {
		field cardentry.Field
		in    string
		want  string
	}{
		{cardentry.FieldName, "", "Name is required"},
		{cardentry.FieldName, "   ", "Name is required"},
		{cardentry.FieldName, "A", "Name must be at least 2 characters long"},
		{cardentry.FieldName, " A ", "Name must be at least 2 characters long"},
		{cardentry.FieldName, strings.Repeat("a", 51), "Name must not exceed 50 characters"},
		{cardentry.FieldName, strings.Repeat("a", 50), ""},
		{cardentry.FieldName, "John123", "Name can only contain letters and spaces"},
		{cardentry.FieldName, "John-Doe", "Name can only contain letters and spaces"},
		{cardentry.FieldName, "John  Doe", "Name cannot contain consecutive spaces"},
		{cardentry.FieldName, "John\t Doe", "Name cannot contain consecutive spaces"},
		{cardentry.FieldName, " John Doe", "Name cannot start or end with spaces"},
		{cardentry.FieldName, "John Doe ", "Name cannot start or end with spaces"},
		{cardentry.FieldName, "John Doe", ""},
		{cardentry.FieldName, "John\u00a0Doe", ""},
		{cardentry.FieldName, "John\vDoe", ""},
		{cardentry.FieldName, "John\u2003Doe", ""},
		{cardentry.FieldName, "John\u3000Doe", ""},
		{cardentry.FieldName, "John\u00a0 Doe", "Name cannot contain consecutive spaces"},
		{cardentry.FieldName, "\ufeffJohn Doe", "Name cannot start or end with spaces"},
		{cardentry.FieldName, "John Doe\u2028", "Name cannot start or end with spaces"},
		{cardentry.FieldName, "\u00a0\u00a0", "Name is required"},
		{cardentry.FieldName, "John\u0085", "Name can only contain letters and spaces"},

		{cardentry.FieldCardNumber, "", "Card number is required"},
		{cardentry.FieldCardNumber, "  ", "Card number is required"},
		{cardentry.FieldCardNumber, "\ufeff", "Card number is required"},
		{cardentry.FieldCardNumber, "\u0085", "Card number must be numeric and up to 19 digits"},
		{cardentry.FieldCardNumber, "1234abc", "Card number must be numeric and up to 19 digits"},
		{cardentry.FieldCardNumber, "4111 1111", "Card number must be numeric and up to 19 digits"},
		{cardentry.FieldCardNumber, strings.Repeat("1", 20), "Card number must be numeric and up to 19 digits"},
		{cardentry.FieldCardNumber, strings.Repeat("1", 19), ""},
		{cardentry.FieldCardNumber, "1", ""},
		{cardentry.FieldCardNumber, "4111111111111111", ""},

		{cardentry.FieldLimit, "", "Credit limit is required"},
		{cardentry.FieldLimit, " ", "Only numbers are allowed"},
		{cardentry.FieldLimit, "12a", "Only numbers are allowed"},
		{cardentry.FieldLimit, "1e5", "Only numbers are allowed"},
		{cardentry.FieldLimit, "-", "Only numbers are allowed"},
		{cardentry.FieldLimit, ".", "Only numbers are allowed"},
		{cardentry.FieldLimit, strings.Repeat("9", 400), "Only numbers are allowed"},
		{cardentry.FieldLimit, "-100", "Credit limit must be greater than 0"},
		{cardentry.FieldLimit, "0", "Credit limit must be greater than 0"},
		{cardentry.FieldLimit, "0.00", "Credit limit must be greater than 0"},
		{cardentry.FieldLimit, "1000", ""},
		{cardentry.FieldLimit, "1.", ""},
		{cardentry.FieldLimit, ".5", ""},
		{cardentry.FieldLimit, "1000.50", ""},

		{cardentry.Field("cvv"), "anything", ""},
	}
	for _, c := range cases {
		got := cardentry.ValidateField(c.field, c.in)
		require.Equal(t, c.want, got, "ValidateField(%s, %q)", c.field, c.in)
		// same input, same answer
		require.Equal(t, got, cardentry.ValidateField(c.field, c.in))
	}
}

func TestParseField(t *testing.T) {
	for _, f := range cardentry.Fields {
		got, err := cardentry.ParseField(string(f))
		require.NoError(t, err)
		require.Equal(t, f, got)
	}

	_, err := cardentry.ParseField("cvv")
	require.ErrorIs(t, err, cardentry.ErrUnknownField)
}
