package geg

import (
	"fmt"
	"os"

	"github.com/titanous/json5"
)

// Column maps a zero based cell index of a grid row to a field.
type Column struct {
	Index int   `json:"index"`
	Field Field `json:"field"`
}

// Layout is the positional contract with the rendered report grid. If the
// portal reorders its columns only the layout needs to change.
type Layout struct {
	Version     string   `json:"version"`
	GridTableID string   `json:"grid_table_id"`
	TaxIDColumn int      `json:"tax_id_column"`
	MinColumns  int      `json:"min_columns"`
	Columns     []Column `json:"columns"`
}

// DefaultLayout is the grid layout of the "Situação Condutor Analítico" report.
func DefaultLayout() Layout {
	return Layout{
		Version:     "2025-07",
		GridTableID: "GridRelatorio_PanelGrid_grid_DXMainTable",
		TaxIDColumn: 2,
		MinColumns:  5,
		Columns: []Column{
			{Index: 0, Field: FieldEmploymentStatus},
			{Index: 1, Field: FieldName},
			{Index: 2, Field: FieldTaxID},
			{Index: 3, Field: FieldRole},
			{Index: 4, Field: FieldLicenseStatus},
			{Index: 7, Field: FieldLicenseScore},
			{Index: 8, Field: FieldLicenseExpiry},
			// telemetry counters
			{Index: 34, Field: FieldPhoneUse},
			{Index: 35, Field: FieldEating},
			{Index: 36, Field: FieldSmoking},
			{Index: 37, Field: FieldEyeClosure},
			{Index: 38, Field: FieldSeatbelt},
			{Index: 49, Field: FieldSpeeding1},
			{Index: 50, Field: FieldSpeeding2},
			{Index: 51, Field: FieldSpeeding3},
			{Index: 52, Field: FieldLaneSpeeding1},
			{Index: 53, Field: FieldLaneSpeeding2},
			{Index: 54, Field: FieldLaneSpeeding3},
			{Index: 55, Field: FieldGForce},
			{Index: 56, Field: FieldHarshBraking},
			{Index: 57, Field: FieldPowerOn},
			{Index: 69, Field: FieldOperationSite},
		},
	}
}

// Validate checks that the layout can be used for extraction.
func (l Layout) Validate() error {
	if l.GridTableID == "" {
		return fmt.Errorf("layout %s: grid_table_id is empty", l.Version)
	}
	if l.TaxIDColumn < 0 {
		return fmt.Errorf("layout %s: tax_id_column must not be negative", l.Version)
	}

	seen := map[Field]bool{}
	for _, col := range l.Columns {
		if !col.Field.Valid() {
			return fmt.Errorf("layout %s: unknown field %q", l.Version, col.Field)
		}
		if col.Index < 0 {
			return fmt.Errorf("layout %s: field %s has a negative index", l.Version, col.Field)
		}
		if seen[col.Field] {
			return fmt.Errorf("layout %s: field %s is mapped more than once", l.Version, col.Field)
		}
		seen[col.Field] = true
	}
	if !seen[FieldName] || !seen[FieldTaxID] {
		return fmt.Errorf("layout %s: both %s and %s must be mapped", l.Version, FieldName, FieldTaxID)
	}
	for _, col := range l.Columns {
		if col.Field == FieldTaxID && col.Index != l.TaxIDColumn {
			return fmt.Errorf(
				"layout %s: tax_id_column is %d but %s is mapped to %d",
				l.Version, l.TaxIDColumn, FieldTaxID, col.Index,
			)
		}
	}
	return nil
}

// LoadLayout reads a JSON5 layout file, keys that are omitted keep the value
// of DefaultLayout. Keys that are present win even when zero, and a
// columns list replaces the default list as a whole.
func LoadLayout(path string) (Layout, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}

	layout := DefaultLayout()
	// entries decoded over the default list would inherit its values
	layout.Columns = nil
	err = json5.Unmarshal(contents, &layout)
	if err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if layout.Columns == nil {
		layout.Columns = DefaultLayout().Columns
	}

	err = layout.Validate()
	if err != nil {
		return Layout{}, err
	}
	return layout, nil
}
