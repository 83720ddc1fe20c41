package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian numbering: crore, lakh, thousand, then hundreds.
var scales = []struct {
	value int64
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells n using the Indian numbering system. Zero is "".
func NumberToWords(n int64) string {
	if n < 0 {
		return strings.TrimSpace("Minus " + NumberToWords(-n))
	}
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	}
	for _, s := range scales {
		if n >= s.value {
			head := NumberToWords(n/s.value) + " " + s.name
			return strings.TrimSpace(head + " " + NumberToWords(n%s.value))
		}
	}
	return ""
}

// AmountInWords renders a rupee amount, e.g. "Seven Hundred Twenty Rupees Only".
// Paise are taken from the amount rounded to two places.
func AmountInWords(amount decimal.Decimal) string {
	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}
