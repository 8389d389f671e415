package export

import (
	"encoding/csv"
	"fmt"
	"geg-automation/internal/scrapers/geg"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// csvRow mirrors one line of a report written by WriteCSV.
type csvRow struct {
	EmploymentStatus string `csv:"situacao_log_prontuarios_gente_gestao"`
	Name             string `csv:"nome_log_prontuarios_gente_gestao"`
	TaxID            string `csv:"cpf_log_prontuarios_gente_gestao"`
	Role             string `csv:"cargo_log_prontuarios_gente_gestao"`
	LicenseStatus    string `csv:"status_log_prontuarios_gente_gestao"`
	LicenseScore     string `csv:"pontuacao_log_prontuarios_gente_gestao"`
	LicenseExpiry    string `csv:"vencimento_log_prontuarios_gente_gestao"`
	PhoneUse         string `csv:"celular_log_prontuarios_gente_gestao"`
	Eating           string `csv:"alimento_log_prontuarios_gente_gestao"`
	Smoking          string `csv:"fumando_log_prontuarios_gente_gestao"`
	EyeClosure       string `csv:"oclusao_log_prontuarios_gente_gestao"`
	Seatbelt         string `csv:"cinto_log_prontuarios_gente_gestao"`
	Speeding1        string `csv:"velo1_log_prontuarios_gente_gestao"`
	Speeding2        string `csv:"velo2_log_prontuarios_gente_gestao"`
	Speeding3        string `csv:"velo3_log_prontuarios_gente_gestao"`
	LaneSpeeding1    string `csv:"via1_log_prontuarios_gente_gestao"`
	LaneSpeeding2    string `csv:"via2_log_prontuarios_gente_gestao"`
	LaneSpeeding3    string `csv:"via3_log_prontuarios_gente_gestao"`
	GForce           string `csv:"forcag_log_prontuarios_gente_gestao"`
	HarshBraking     string `csv:"frenagem_log_prontuarios_gente_gestao"`
	PowerOn          string `csv:"power_log_prontuarios_gente_gestao"`
	OperationSite    string `csv:"operacao_log_prontuarios_gente_gestao"`
}

func portalExpiry(iso string) string {
	parsed, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return ""
	}
	return parsed.Format(portalDateLayout)
}

func (r csvRow) record() geg.EmployeeRecord {
	return geg.EmployeeRecord{
		EmploymentStatus: r.EmploymentStatus,
		Name:             geg.NormalizeName(r.Name),
		TaxID:            geg.FormatTaxID(r.TaxID),
		Role:             r.Role,
		LicenseStatus:    r.LicenseStatus,
		LicenseScore:     geg.FormatNumber(r.LicenseScore),
		LicenseExpiry:    portalExpiry(r.LicenseExpiry),
		PhoneUse:         geg.FormatNumber(r.PhoneUse),
		Eating:           geg.FormatNumber(r.Eating),
		Smoking:          geg.FormatNumber(r.Smoking),
		EyeClosure:       geg.FormatNumber(r.EyeClosure),
		Seatbelt:         geg.FormatNumber(r.Seatbelt),
		Speeding1:        geg.FormatNumber(r.Speeding1),
		Speeding2:        geg.FormatNumber(r.Speeding2),
		Speeding3:        geg.FormatNumber(r.Speeding3),
		LaneSpeeding1:    geg.FormatNumber(r.LaneSpeeding1),
		LaneSpeeding2:    geg.FormatNumber(r.LaneSpeeding2),
		LaneSpeeding3:    geg.FormatNumber(r.LaneSpeeding3),
		GForce:           geg.FormatNumber(r.GForce),
		HarshBraking:     geg.FormatNumber(r.HarshBraking),
		PowerOn:          geg.FormatNumber(r.PowerOn),
		OperationSite:    r.OperationSite,
		Source:           geg.SourceGrid,
	}
}

// ReadCSV parses a report written by WriteCSV back into records. Tax IDs
// are restored to their punctuated form and names are title cased again,
// the result goes through geg.Clean.
func ReadCSV(r io.Reader) ([]geg.EmployeeRecord, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	reader.Comma = ';'
	reader.LazyQuotes = true

	var rows []csvRow
	err := gocsv.UnmarshalCSV(reader, &rows)
	if err != nil {
		return nil, err
	}

	records := make([]geg.EmployeeRecord, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return geg.Clean(records), nil
}

// ReadCSVFile reads the report at `path`.
func ReadCSVFile(path string) ([]geg.EmployeeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}
