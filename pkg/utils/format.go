// Package utils provides shared formatting and parsing helpers.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBRL formats an amount in Brazilian currency style: R$ 1.234,56.
func FormatBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.Split(str, ".")
	result := "R$ " + groupThousands(parts[0]) + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dot separators every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	return groupThousands(s[:n-3]) + "." + s[n-3:]
}

// ParseBRLNumber parses a pt-BR formatted numeric string ("1.234,56",
// "R$ 39,61") into a float. Malformed input normalizes to 0 rather than
// erroring; validation of the resulting value is the caller's concern.
func ParseBRLNumber(s string) float64 {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}

	// Dots are grouping separators, the comma is the decimal mark. Input
	// already using a decimal point ("39.61") is accepted as-is when it
	// carries no comma.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -v
	}
	return v
}

// FormatPercent formats a percentage with an explicit sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats a profit/loss amount with an explicit sign.
func FormatPnL(pnl float64) string {
	formatted := FormatBRL(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatQuantity formats a contract/share count with grouping.
func FormatQuantity(qty int64) string {
	s := strconv.FormatInt(qty, 10)
	if qty < 0 {
		return "-" + groupThousands(s[1:])
	}
	return groupThousands(s)
}
