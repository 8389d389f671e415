package geg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{input: "3,50", expect: "3.50"},
		{input: "3.5", expect: "3.50"},
		{input: "", expect: "0.00"},
		{input: "abc", expect: "0.00"},
		{input: " 12 ", expect: "12.00"},
		{input: "0", expect: "0.00"},
		{input: "NaN", expect: "0.00"},
		{input: "Inf", expect: "0.00"},
		{input: "-1,5", expect: "-1.50"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, FormatNumber(test.input), "input %q", test.input)
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{input: "adail viana teixeira junior", expect: "Adail Viana Teixeira Junior"},
		{input: "LIBERADO JOSÉ  DA SILVA", expect: "José Da Silva"},
		{input: "ATIVO LIBERADO MARIA", expect: "Maria"},
		{input: "FÉRIAS ÂNGELA", expect: "Ângela"},
		{input: "ATIVOS MARIA", expect: "Ativos Maria"},
		{input: "João-pedro", expect: "João-pedro"},
		{input: "", expect: ""},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, NormalizeName(test.input), "input %q", test.input)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"LIBERADO ATIVO JOAO",
		"  bloqueado  carlos EDUARDO ",
		"AFASTADO FÉRIAS ÉRICA",
		"Adail Viana Teixeira Junior",
	}
	for _, input := range inputs {
		once := NormalizeName(input)
		require.Equal(t, once, NormalizeName(once), "input %q", input)
	}
}

func TestCleanKeepsFirstOccurrence(t *testing.T) {
	records := []EmployeeRecord{
		{Name: "PRIMEIRO NOME", TaxID: "111.111.111-11"},
		{Name: "sem cpf"},
		{Name: "SEGUNDO NOME", TaxID: "111.111.111-11"},
		{Name: "outra pessoa", TaxID: "222.222.222-22"},
	}

	cleaned := Clean(records)
	require.Len(t, cleaned, 2)
	require.Equal(t, "Primeiro Nome", cleaned[0].Name)
	require.Equal(t, "111.111.111-11", cleaned[0].TaxID)
	require.Equal(t, "Outra Pessoa", cleaned[1].Name)

	require.Equal(t, "PRIMEIRO NOME", records[0].Name, "input must not be modified")
	require.Equal(t, cleaned, Clean(cleaned))
}
