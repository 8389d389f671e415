package geg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsTaxID(t *testing.T) {
	require.True(t, ContainsTaxID("086.533.907-40"))
	require.True(t, ContainsTaxID("cpf 08653390740"))
	require.False(t, ContainsTaxID("not a tax id"))
	require.False(t, ContainsTaxID("086533907401"))
	require.False(t, ContainsTaxID(""))
}

func TestTaxIDFormatting(t *testing.T) {
	require.Equal(t, "08653390740", TaxIDDigits("086.533.907-40"))
	require.Equal(t, "086.533.907-40", FormatTaxID("08653390740"))
	require.Equal(t, "086.533.907-40", FormatTaxID(" 086.533.907-40 "))
	require.Equal(t, "1234", FormatTaxID(" 1234 "))
}
