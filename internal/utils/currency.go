package utils

import (
	"fmt"
	"math"
)

// Fares are quoted in whole currency units. RoundToWholeUnit is the
// single rounding point for all fare arithmetic.
func RoundToWholeUnit(amount float64) float64 {
	return math.Round(amount)
}

func FormatFare(amount float64, currencyCode string) string {
	symbol := currencySymbol(currencyCode)
	return fmt.Sprintf("%s%.0f", symbol, RoundToWholeUnit(amount))
}

func currencySymbol(code string) string {
	switch code {
	case "INR", "":
		return "₹"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "AED":
		return "د.إ"
	default:
		return code + " "
	}
}
