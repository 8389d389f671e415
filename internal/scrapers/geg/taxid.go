package geg

import (
	"regexp"
	"strings"
)

var (
	formattedTaxIDRegex = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)
	taxIDRegex          = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}|\b\d{11}\b`)
)

// ContainsTaxID reports whether `text` contains a formatted CPF or a standalone
// run of 11 digits.
func ContainsTaxID(text string) bool {
	return taxIDRegex.MatchString(text)
}

// TaxIDDigits removes the punctuation of a CPF, "086.533.907-40" -> "08653390740".
func TaxIDDigits(taxID string) string {
	var out strings.Builder
	for _, c := range taxID {
		if c >= '0' && c <= '9' {
			out.WriteRune(c)
		}
	}
	return out.String()
}

// FormatTaxID renders a CPF as ###.###.###-##, values that do not have exactly
// 11 digits are returned trimmed but otherwise unchanged.
func FormatTaxID(taxID string) string {
	digits := TaxIDDigits(taxID)
	if len(digits) != 11 {
		return strings.TrimSpace(taxID)
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}
