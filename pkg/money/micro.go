package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Decimals is the number of decimal places in a micro-unit amount.
// 1 coin = 1_000_000 micro-units.
const Decimals = 6

// ParseMicro converts a human-readable amount string to micro-units.
// "1.5" → 1500000. String manipulation avoids floating point precision
// issues; extra decimal digits are rejected, not rounded.
func ParseMicro(amountStr string) (int64, error) {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount format")
	}

	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}

	decPart := ""
	if len(parts) == 2 {
		decPart = parts[1]
	}
	if len(decPart) > Decimals {
		return 0, fmt.Errorf("amount has more than %d decimal places", Decimals)
	}
	decPart = decPart + strings.Repeat("0", Decimals-len(decPart))

	combined := strings.TrimLeft(intPart+decPart, "0")
	if combined == "" {
		combined = "0"
	}

	value, err := strconv.ParseInt(combined, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format")
	}

	if negative {
		value = -value
	}
	return value, nil
}

// FormatMicro converts micro-units to a human-readable string.
// 1500000 → "1.5".
func FormatMicro(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := strconv.FormatInt(amount, 10)
	for len(str) <= Decimals {
		str = "0" + str
	}

	pos := len(str) - Decimals
	result := str[:pos] + "." + str[pos:]

	result = strings.TrimRight(result, "0")
	result = strings.TrimRight(result, ".")
	if result == "" {
		result = "0"
	}

	if negative && result != "0" {
		result = "-" + result
	}
	return result
}
