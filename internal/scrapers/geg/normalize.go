package geg

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// statusWords bleed into the name column on some rows, they are checked in order.
var statusWords = []string{
	"ATIVO",
	"LIBERADO",
	"BLOQUEADO",
	"AFASTADO",
	"FÉRIAS",
}

// FormatNumber renders a portal number ("3,5", "12.25") with two decimals,
// anything that is not a finite number becomes "0.00".
func FormatNumber(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", "."))
	if value == "" {
		return "0.00"
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(n, 'f', 2, 64)
}

// NormalizeName drops status words leaking in front of the name and
// capitalizes every word: "LIBERADO adail VIANA" -> "Adail Viana".
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for _, status := range statusWords {
		if len(words) > 0 && words[0] == status {
			words = words[1:]
		}
	}

	// casers keep state, so they are not shared between calls
	upper := cases.Upper(language.BrazilianPortuguese)
	lower := cases.Lower(language.BrazilianPortuguese)
	for i, word := range words {
		_, size := utf8.DecodeRuneInString(word)
		words[i] = upper.String(word[:size]) + lower.String(word[size:])
	}
	return strings.Join(words, " ")
}

// Clean keeps the first record of every tax ID in input order, records
// without a tax ID are dropped. Names of the kept records are normalized.
func Clean(records []EmployeeRecord) []EmployeeRecord {
	seen := map[string]bool{}
	out := make([]EmployeeRecord, 0, len(records))
	for _, record := range records {
		if record.TaxID == "" || seen[record.TaxID] {
			continue
		}
		seen[record.TaxID] = true

		if record.Name != "" {
			record.Name = NormalizeName(record.Name)
		}
		out = append(out, record)
	}
	return out
}
