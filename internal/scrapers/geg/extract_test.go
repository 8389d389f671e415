package geg

import (
	"geg-automation/internal/components/telemetry"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parseDoc(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestProbe(t *testing.T) {
	extractor := NewExtractor(DefaultLayout(), telemetry.SlogAPI{})

	grid := extractor.Probe(parseDoc(t, gridTable(adailRow())))
	require.Equal(t, SourceGrid, grid.Source())

	scan := extractor.Probe(parseDoc(t, "<table><tr><td>x</td></tr></table>"))
	require.Equal(t, SourceScan, scan.Source())
}

func TestGridStrategyRowFilter(t *testing.T) {
	cases := []struct {
		name   string
		taxID  string
		expect int
	}{
		{name: "not a tax id", taxID: "not a tax id", expect: 0},
		{name: "formatted tax id", taxID: "086.533.907-40", expect: 1},
		{name: "raw digits", taxID: "08653390740", expect: 1},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			markup := gridTable(gridRow("row", map[int]string{
				1: "FULANO DE TAL",
				2: test.taxID,
			}))
			records := GridStrategy{Layout: DefaultLayout()}.Extract(parseDoc(t, markup))
			require.Len(t, records, test.expect)
		})
	}
}

func TestGridStrategySkipsShortAndHeaderRows(t *testing.T) {
	short := `<tr><td>A</td><td>NOME</td><td>086.533.907-40</td><td>x</td></tr>`
	header := gridRow("GridRelatorio_PanelGrid_grid_Header", map[int]string{
		1: "NOME",
		2: "086.533.907-40",
	})
	markup := gridTable(short, header)

	records := GridStrategy{Layout: DefaultLayout()}.Extract(parseDoc(t, markup))
	require.Empty(t, records)
}

func TestGridStrategyFields(t *testing.T) {
	records := GridStrategy{Layout: DefaultLayout()}.Extract(parseDoc(t, gridTable(headerRow(), adailRow())))
	require.Len(t, records, 1)

	expect := EmployeeRecord{
		EmploymentStatus: "FÉRIAS",
		Name:             "adail viana teixeira junior",
		TaxID:            "086.533.907-40",
		Role:             "Motorista Carreta",
		LicenseStatus:    "LIBERADO",
		LicenseScore:     "3.50",
		LicenseExpiry:    "06/02/2032",
		PhoneUse:         "2.00",
		Eating:           "0.00",
		Smoking:          "0.00",
		EyeClosure:       "0.00",
		Seatbelt:         "1.25",
		Speeding1:        "0.00",
		Speeding2:        "0.00",
		Speeding3:        "0.00",
		LaneSpeeding1:    "0.00",
		LaneSpeeding2:    "0.00",
		LaneSpeeding3:    "0.00",
		GForce:           "0.00",
		HarshBraking:     "0.00",
		PowerOn:          "0.00",
		OperationSite:    "NOVA RIO",
		Source:           SourceGrid,
	}
	if diff := cmp.Diff(expect, records[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestGridStrategyMissingCells(t *testing.T) {
	layout := DefaultLayout()
	layout.MinColumns = 3
	markup := gridTable(`<tr><td>ATIVO</td><td>MARIA</td><td>111.111.111-11</td></tr>`)

	records := GridStrategy{Layout: layout}.Extract(parseDoc(t, markup))
	require.Len(t, records, 1)
	require.Equal(t, "", records[0].Role)
	require.Equal(t, "", records[0].OperationSite)
	require.Equal(t, "0.00", records[0].PowerOn)
}

func TestScanStrategy(t *testing.T) {
	markup := `<table>
<tr><td>1</td><td>ignored row</td><td>no id here</td><td>x</td></tr>
<tr><td>12</td><td>086.533.907-40</td><td>JOSE</td><td>MARIA APARECIDA SOUZA</td><td>-5</td></tr>
<tr><td>only</td><td>three</td><td>111.111.111-11</td></tr>
<tr><td>1</td><td>222.222.222-22</td><td>33</td><td>.5</td></tr>
</table>`

	records := ScanStrategy{}.Extract(parseDoc(t, markup))
	require.Len(t, records, 1)

	record := records[0]
	require.Equal(t, "MARIA APARECIDA SOUZA", record.Name)
	require.Equal(t, "086.533.907-40", record.TaxID)
	require.Equal(t, "ATIVO", record.EmploymentStatus)
	require.Equal(t, "Motorista", record.Role)
	require.Equal(t, "LIBERADO", record.LicenseStatus)
	require.Equal(t, "0", record.LicenseScore)
	require.Equal(t, "", record.LicenseExpiry)
	require.Equal(t, "0", record.PhoneUse)
	require.Equal(t, "0.00", record.GForce)
	require.Equal(t, "CD FORTALEZA", record.OperationSite)
	require.Equal(t, SourceScan, record.Source)
}

func TestScanStrategyMatchesWithinCells(t *testing.T) {
	markup := `<table>
<tr><td>086.533.90</td><td>7-40</td><td>NOME PARTIDO</td><td>x</td></tr>
<tr><td>1</td><td>tel <b>086.533.907-40</b></td><td>NOME INTEIRO</td><td>x</td></tr>
</table>`

	records := ScanStrategy{}.Extract(parseDoc(t, markup))
	require.Len(t, records, 1)
	require.Equal(t, "NOME INTEIRO", records[0].Name)
	require.Equal(t, "086.533.907-40", records[0].TaxID)
}

func TestExtractReportsFallback(t *testing.T) {
	tel := &telemetry.Recorder{}
	extractor := NewExtractor(DefaultLayout(), tel)

	records, err := extractor.Extract(`<table><tr><td>a</td><td>086.533.907-40</td><td>FULANO</td><td>b</td></tr></table>`)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, tel.Find("warning"), 1)
}

func TestEndToEndSyntheticGrid(t *testing.T) {
	scraper := NewScraper(Options{}, DefaultLayout(), telemetry.SlogAPI{})

	markup := gridTable(headerRow(), adailRow(), blankTaxIDRow())
	records, err := scraper.Parse(markup)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Adail Viana Teixeira Junior", records[0].Name)
	require.Equal(t, "086.533.907-40", records[0].TaxID)
	require.Equal(t, "LIBERADO", records[0].LicenseStatus)

	fromEnvelope, err := scraper.ParseResponse(envelope(markup))
	require.NoError(t, err)
	require.Equal(t, records, fromEnvelope)
}

func TestParseNoRecords(t *testing.T) {
	scraper := NewScraper(Options{}, DefaultLayout(), telemetry.SlogAPI{})

	_, err := scraper.Parse(gridTable(headerRow(), blankTaxIDRow()))
	require.ErrorIs(t, err, ErrNoRecords)

	_, err = scraper.Parse("")
	require.ErrorIs(t, err, ErrNoRecords)
}
