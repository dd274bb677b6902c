package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================
// Money utilities — parsing and formatting of currency values
// ============================================================

// ParsePrice extracts a decimal amount from a free-form price string.
// It accepts both Brazilian and US conventions:
//
//	"R$ 1.299,00"  -> 1299.00
//	"US$ 49.99"    -> 49.99
//	"1299.99"      -> 1299.99
//
// When both separators are present, the right-most one is taken as the
// decimal separator. A lone comma followed by exactly two digits is
// treated as a decimal comma; otherwise commas are thousands separators.
func ParsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, &ErrValidation{Field: "price", Message: "empty price string"}
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case 'R', '$', 'U', 'S', ' ', '\t':
			return -1
		}
		return r
	}, s)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// Brazilian format: dot is thousands, comma is decimal
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) == 2 {
			cleaned = parts[0] + "." + parts[1]
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	// Drop anything that is not a digit or the decimal point
	cleaned = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ErrValidation{Field: "price", Message: "malformed price string: " + s}
	}
	return d, nil
}

// FormatBRL renders a value as Brazilian Real: "R$ 1.299,00".
func FormatBRL(v decimal.Decimal) string {
	return "R$ " + groupThousands(v, ".", ",")
}

/// FormatUSD renders a value as US Dollar: "US$ 1,299.00".
func FormatUSD(v decimal.Decimal) string {
	return "US$ " + groupThousands(v, ",", ".")
}

// groupThousands formats v with two decimal places (round half up) and the
// given thousands/decimal separators.
func groupThousands(v decimal.Decimal, thousandsSep, decimalSep string) string {
	s := v.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}

	out := b.String() + decimalSep + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
