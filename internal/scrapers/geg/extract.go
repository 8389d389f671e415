package geg

import (
	"fmt"
	"geg-automation/internal/components/assert"
	"geg-automation/internal/components/telemetry"
	"geg-automation/pkg/htmlutil"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_extract_parse = "extract.parse"
	report_extract_grid  = "extract.grid"
	report_extract_scan  = "extract.scan"
)

const nbspPlaceholder = "&nbsp;"

// Strategy turns a parsed report document into records.
type Strategy interface {
	Source() Source
	Extract(doc *goquery.Document) []EmployeeRecord
}

// GridStrategy reads the structured report grid cell by cell using a Layout.
type GridStrategy struct {
	Layout Layout
}

// ScanStrategy looks for formatted tax IDs in any table row, it is used when
// the report grid is not present.
type ScanStrategy struct{}

// Extractor picks a strategy for a document and runs it.
type Extractor struct {
	layout Layout
	tel    telemetry.API
}

func NewExtractor(layout Layout, tel telemetry.API) Extractor {
	assert.NotNil(tel)
	assert.NotEmptyStr(layout.GridTableID)
	return Extractor{layout: layout, tel: tel}
}

func (e Extractor) Layout() Layout {
	return e.layout
}

func findByID(doc *goquery.Document, tag, id string) *goquery.Selection {
	return doc.Find(tag).FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.AttrOr("id", "") == id
	}).First()
}

// Probe returns the grid strategy if the layout's grid table is present in
// `doc`, the scan strategy otherwise.
func (e Extractor) Probe(doc *goquery.Document) Strategy {
	if findByID(doc, "table", e.layout.GridTableID).Length() > 0 {
		return GridStrategy{Layout: e.layout}
	}
	return ScanStrategy{}
}

// Extract parses `markup` and returns its records in document order, they
// are neither deduplicated nor normalized.
func (e Extractor) Extract(markup string) ([]EmployeeRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		e.tel.ReportBroken(report_extract_parse, err)
		return nil, fmt.Errorf("parse: %w", err)
	}

	strategy := e.Probe(doc)
	records := strategy.Extract(doc)

	switch strategy.Source() {
	case SourceGrid:
		e.tel.ReportDebug(report_extract_grid, "layout", e.layout.Version, "records", len(records))
	case SourceScan:
		e.tel.ReportWarning(
			report_extract_scan,
			fmt.Errorf("grid table %s not found, fell back to pattern scan", e.layout.GridTableID),
			"records", len(records),
		)
	}
	return records, nil
}

func (GridStrategy) Source() Source {
	return SourceGrid
}

func cellValue(cells []string, index int, field Field) string {
	if index >= len(cells) {
		return field.Default()
	}
	value := cells[index]
	if value == "" || value == nbspPlaceholder {
		return field.Default()
	}
	return value
}

func (g GridStrategy) Extract(doc *goquery.Document) []EmployeeRecord {
	var records []EmployeeRecord

	table := findByID(doc, "table", g.Layout.GridTableID)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		id := row.AttrOr("id", "")
		if strings.Contains(id, "Header") || strings.Contains(id, "DXHeadersRow") {
			return
		}

		tds := row.Find("td")
		if tds.Length() < g.Layout.MinColumns {
			return
		}
		cells := make([]string, tds.Length())
		for i, td := range tds.Nodes {
			cells[i] = htmlutil.GetStrippedText(td)
		}

		if g.Layout.TaxIDColumn < len(cells) && !ContainsTaxID(cells[g.Layout.TaxIDColumn]) {
			return
		}

		record := EmployeeRecord{Source: SourceGrid}
		for _, field := range Fields {
			record.Set(field, field.Default())
		}
		for _, col := range g.Layout.Columns {
			record.Set(col.Field, cellValue(cells, col.Index, col.Field))
		}
		if record.Name == "" || record.TaxID == "" {
			return
		}

		for _, field := range Fields {
			if field.IsText() {
				continue
			}
			record.Set(field, FormatNumber(record.Get(field)))
		}
		records = append(records, record)
	})

	return records
}

func (ScanStrategy) Source() Source {
	return SourceScan
}

// scanDefaults is the reduced field set given to every scanned record.
func scanDefaults() EmployeeRecord {
	return EmployeeRecord{
		EmploymentStatus: "ATIVO",
		Role:             "Motorista",
		LicenseStatus:    "LIBERADO",
		LicenseScore:     "0",
		LicenseExpiry:    "",
		PhoneUse:         "0",
		Eating:           "0.00",
		Smoking:          "0.00",
		EyeClosure:       "0.00",
		Seatbelt:         "0.00",
		Speeding1:        "0.00",
		Speeding2:        "0.00",
		Speeding3:        "0.00",
		LaneSpeeding1:    "0.00",
		LaneSpeeding2:    "0.00",
		LaneSpeeding3:    "0.00",
		GForce:           "0.00",
		HarshBraking:     "0.00",
		PowerOn:          "0.00",
		OperationSite:    "CD FORTALEZA",
		Source:           SourceScan,
	}
}

// looksLikeName rejects tax IDs and text starting like a number.
func looksLikeName(text string) bool {
	if text == "" || ContainsTaxID(text) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(text)
	return !(first >= '0' && first <= '9') && first != '.' && first != '-'
}

func (ScanStrategy) Extract(doc *goquery.Document) []EmployeeRecord {
	var records []EmployeeRecord

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			tds := row.Find("td")
			if tds.Length() <= 3 {
				return
			}
			// matched per cell, digits of neighbouring cells never join
			taxID := ""
			name := ""
			for _, td := range tds.Nodes {
				text := htmlutil.GetStrippedText(td)
				if taxID == "" {
					taxID = formattedTaxIDRegex.FindString(text)
				}
				if looksLikeName(text) && utf8.RuneCountInString(text) > utf8.RuneCountInString(name) {
					name = text
				}
			}
			if taxID == "" || name == "" {
				return
			}

			record := scanDefaults()
			record.Name = name
			record.TaxID = taxID
			records = append(records, record)
		})
	})

	return records
}
