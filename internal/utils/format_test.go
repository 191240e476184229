package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"whole dollars", 25, "$25.00"},
		{"cents", 189.5, "$189.50"},
		{"thousands grouping", 1234.5, "$1,234.50"},
		{"millions grouping", 1234567.89, "$1,234,567.89"},
		{"sub-cent rounds up", 99.999, "$100.00"},
		{"sub-cent rounds down", 10.004, "$10.00"},
		{"negative", -399.25, "-$399.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain number", "399", 399},
		{"with symbol", "$189.50", 189.5},
		{"with grouping", "$1,234.50", 1234.5},
		{"negative", "-$399.25", -399.25},
		{"whitespace", "  $25.00 ", 25},
		{"sub-cent normalized", "10.006", 10.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := ParseAmount("")
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseAmount("twelve dollars")
		assert.Error(t, err)
	})
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 25, 189.5, 1234.5, 48999.99} {
		formatted := FormatAmount(amount)
		parsed, err := ParseAmount(formatted)
		require.NoError(t, err)
		assert.Equal(t, amount, parsed, formatted)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "Fri, Mar 14, 2025", FormatDisplayDate("2025-03-14"))
	assert.Equal(t, "Wed, Jan 1, 2025", FormatDisplayDate("2025-01-01"))

	// Unparseable input passes through unchanged
	assert.Equal(t, "not-a-date", FormatDisplayDate("not-a-date"))
	assert.Equal(t, "", FormatDisplayDate(""))
}
