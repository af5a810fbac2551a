package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/moonwallet/pkg/money"
)

func TestParseMicro(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"whole coin", "1", 1_000_000},
		{"fractional", "1.5", 1_500_000},
		{"full precision", "0.000001", 1},
		{"trailing zeros", "2.500000", 2_500_000},
		{"leading dot", ".25", 250_000},
		{"zero", "0", 0},
		{"negative", "-3.25", -3_250_000},
		{"whitespace trimmed", "  10  ", 10_000_000},
		{"large amount", "9000000000", 9_000_000_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseMicro(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMicro_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too many decimals", "1.0000001"},
		{"two dots", "1.2.3"},
		{"not a number", "ten"},
		{"overflow", "99999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := money.ParseMicro(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestFormatMicro(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"whole coin", 1_000_000, "1"},
		{"fractional", 1_500_000, "1.5"},
		{"smallest unit", 1, "0.000001"},
		{"zero", 0, "0"},
		{"negative", -3_250_000, "-3.25"},
		{"sub-coin", 250_000, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.FormatMicro(tt.amount))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, amount := range []int64{0, 1, 999_999, 1_000_000, 1_234_567, -42_000_000} {
		parsed, err := money.ParseMicro(money.FormatMicro(amount))
		require.NoError(t, err)
		assert.Equal(t, amount, parsed)
	}
}
