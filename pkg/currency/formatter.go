package currency

import (
	"fmt"
	"math"
)

// zeroDecimalCurrencies are formatted without a fractional part.
var zeroDecimalCurrencies = map[string]bool{
	"IDR": true,
	"JPY": true,
	"KRW": true,
	"VND": true,
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func Format(amount float64, code string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	var formatted string
	if zeroDecimalCurrencies[code] {
		intStr := fmt.Sprintf("%.0f", math.Round(amount))
		formatted = addThousandsSeparator(intStr, ",")
	} else {
		rounded := RoundCents(amount)
		intPart := math.Floor(rounded)
		cents := math.Round((rounded - intPart) * 100)
		intStr := fmt.Sprintf("%.0f", intPart)
		formatted = addThousandsSeparator(intStr, ",") + fmt.Sprintf(".%02.0f", cents)
	}

	result := code + " " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
