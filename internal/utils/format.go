package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatAmount renders a monetary amount as a display string, e.g. 1234.5
// becomes "$1,234.50". Amounts are rounded to the nearest cent first so the
// string never shows sub-cent noise.
func FormatAmount(amount float64) string {
	cents := int64(math.Round(amount * 100))
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), frac)
}

// ParseAmount parses a display string produced by FormatAmount back into a
// float. FormatAmount and ParseAmount round-trip to the cent.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	// Normalize to whole cents
	value = math.Round(value*100) / 100
	if negative {
		value = -value
	}
	return value, nil
}

// FormatDisplayDate renders an ISO date (2006-01-02) in the long form used
// on confirmations, e.g. "Mon, Jan 2, 2006". Unparseable input is returned
// unchanged.
func FormatDisplayDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("Mon, Jan 2, 2006")
}

// Today returns today's date in ISO form
func Today() string {
	return time.Now().Format("2006-01-02")
}
