package export

import (
	"fmt"
	"geg-automation/internal/scrapers/geg"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// TableName is the name of the destination table, every CSV column is
// suffixed with it.
const TableName = "log_prontuarios_gente_gestao"

// ExpiryPlaceholder is written when a record has no usable license expiry.
const ExpiryPlaceholder = "2031-12-31"

const (
	portalDateLayout = "02/01/2006"
	isoDateLayout    = "2006-01-02"
)

// csvFields is the column order of the report, the column names are
// <field>_log_prontuarios_gente_gestao.
var csvFields = []string{
	"situacao",
	"nome",
	"cpf",
	"cargo",
	"status",
	"pontuacao",
	"vencimento",
	"celular",
	"alimento",
	"fumando",
	"oclusao",
	"cinto",
	"velo1",
	"velo2",
	"velo3",
	"via1",
	"via2",
	"via3",
	"forcag",
	"frenagem",
	"power",
	"operacao",
}

// ColumnName returns the destination column of a CSV field.
func ColumnName(field string) string {
	return field + "_" + TableName
}

// Filename returns the name of the CSV report produced at `at`.
func Filename(at time.Time) string {
	return fmt.Sprintf("log_prontuario_%s.csv", at.Format("20060102_150405"))
}

// ISOExpiry converts a dd/mm/yyyy expiry into yyyy-mm-dd, ok is false if
// `expiry` is not a valid date.
func ISOExpiry(expiry string) (iso string, ok bool) {
	parsed, err := time.Parse(portalDateLayout, strings.TrimSpace(expiry))
	if err != nil {
		return "", false
	}
	return parsed.Format(isoDateLayout), true
}

func quote(value string) string {
	return `"` + value + `"`
}

func csvLine(record geg.EmployeeRecord, upper cases.Caser) string {
	expiry, ok := ISOExpiry(record.LicenseExpiry)
	if !ok {
		expiry = ExpiryPlaceholder
	}

	values := []string{
		record.EmploymentStatus,
		upper.String(record.Name),
		quote(geg.TaxIDDigits(record.TaxID)),
		record.Role,
		record.LicenseStatus,
		quote(record.LicenseScore),
		quote(expiry),
		quote(record.PhoneUse),
		geg.FormatNumber(record.Eating),
		geg.FormatNumber(record.Smoking),
		geg.FormatNumber(record.EyeClosure),
		geg.FormatNumber(record.Seatbelt),
		geg.FormatNumber(record.Speeding1),
		geg.FormatNumber(record.Speeding2),
		geg.FormatNumber(record.Speeding3),
		geg.FormatNumber(record.LaneSpeeding1),
		geg.FormatNumber(record.LaneSpeeding2),
		geg.FormatNumber(record.LaneSpeeding3),
		geg.FormatNumber(record.GForce),
		geg.FormatNumber(record.HarshBraking),
		geg.FormatNumber(record.PowerOn),
		record.OperationSite,
	}
	return strings.Join(values, ";")
}

// WriteCSV writes the semicolon separated report: UTF-8 with a byte order
// mark, a header of quoted column names and one line per record. Only the
// tax ID, score, expiry and phone use values are quoted.
func WriteCSV(w io.Writer, records []geg.EmployeeRecord) error {
	out := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	header := make([]string, len(csvFields))
	for i, field := range csvFields {
		header[i] = quote(ColumnName(field))
	}
	_, err := io.WriteString(out, strings.Join(header, ";")+"\n")
	if err != nil {
		return err
	}

	upper := cases.Upper(language.BrazilianPortuguese)
	for _, record := range records {
		_, err = io.WriteString(out, csvLine(record, upper)+"\n")
		if err != nil {
			return err
		}
	}
	return out.Close()
}

// WriteCSVFile writes the report into `dir` under Filename(at) and returns
// its path.
func WriteCSVFile(dir string, at time.Time, records []geg.EmployeeRecord) (string, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(at))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	err = WriteCSV(f, records)
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
