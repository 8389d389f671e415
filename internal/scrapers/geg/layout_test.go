package geg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	layout := DefaultLayout()
	require.NoError(t, layout.Validate())
	require.Len(t, layout.Columns, len(Fields))
}

func TestLayoutValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(l *Layout)
	}{
		{name: "no grid id", modify: func(l *Layout) { l.GridTableID = "" }},
		{name: "unknown field", modify: func(l *Layout) { l.Columns[0].Field = "idade" }},
		{name: "duplicate field", modify: func(l *Layout) { l.Columns[0].Field = FieldName }},
		{name: "negative index", modify: func(l *Layout) { l.Columns[3].Index = -1 }},
		{name: "no tax id", modify: func(l *Layout) { l.Columns = l.Columns[:2] }},
		{name: "tax id column mismatch", modify: func(l *Layout) { l.TaxIDColumn = 0 }},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			layout := DefaultLayout()
			test.modify(&layout)
			require.Error(t, layout.Validate())
		})
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json5")
	err := os.WriteFile(path, []byte(`{
		// the portal moved the operation column
		version: "2025-09",
		columns: [
			{ index: 1, field: "nome" },
			{ index: 2, field: "cpf" },
			{ index: 70, field: "operacao" },
		],
	}`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	require.Equal(t, "2025-09", layout.Version)
	require.Equal(t, DefaultLayout().GridTableID, layout.GridTableID)
	require.Equal(t, 5, layout.MinColumns)
	require.Equal(t, []Column{
		{Index: 1, Field: FieldName},
		{Index: 2, Field: FieldTaxID},
		{Index: 70, Field: FieldOperationSite},
	}, layout.Columns)
}

func writeLayout(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "layout.json5")
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadLayoutZeroValues(t *testing.T) {
	path := writeLayout(t, `{
		tax_id_column: 0,
		min_columns: 0,
		columns: [
			{ index: 0, field: "cpf" },
			{ index: 1, field: "nome" },
		],
	}`)

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	require.Equal(t, 0, layout.TaxIDColumn)
	require.Equal(t, 0, layout.MinColumns)

	row := gridRow("GridRelatorio_PanelGrid_grid_DXDataRow0", map[int]string{
		0: "086.533.907-40",
		1: "adail viana",
	})
	records := GridStrategy{Layout: layout}.Extract(parseDoc(t, gridTable(row)))
	require.Len(t, records, 1)
	require.Equal(t, "086.533.907-40", records[0].TaxID)
	require.Equal(t, "adail viana", records[0].Name)
}

func TestLoadLayoutColumnsKeepOmittedKeysZero(t *testing.T) {
	path := writeLayout(t, `{
		columns: [
			{ index: 1, field: "nome" },
			{ field: "situacao_empregado" },
			{ index: 2, field: "cpf" },
		],
	}`)

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	require.Equal(t, []Column{
		{Index: 1, Field: FieldName},
		{Index: 0, Field: FieldEmploymentStatus},
		{Index: 2, Field: FieldTaxID},
	}, layout.Columns)
}

func TestLoadLayoutKeepsDefaultColumns(t *testing.T) {
	layout, err := LoadLayout(writeLayout(t, `{ version: "2025-08" }`))
	require.NoError(t, err)
	require.Equal(t, "2025-08", layout.Version)
	require.Equal(t, DefaultLayout().Columns, layout.Columns)
}

func TestLoadLayoutRejectsTaxIDMismatch(t *testing.T) {
	path := writeLayout(t, `{
		columns: [
			{ index: 0, field: "cpf" },
			{ index: 1, field: "nome" },
		],
	}`)

	_, err := LoadLayout(path)
	require.Error(t, err)
}

func TestLoadLayoutRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json5")
	err := os.WriteFile(path, []byte(`{ columns: [{ index: 1, field: "nome" }] }`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	_, err = LoadLayout(path)
	require.Error(t, err)
}
