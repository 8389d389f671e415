package export

import (
	"fmt"
	"geg-automation/internal/scrapers/geg"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// XLSXFilename returns the name of the spreadsheet twin of Filename(at).
func XLSXFilename(at time.Time) string {
	return strings.TrimSuffix(Filename(at), ".csv") + ".xlsx"
}

// WriteXLSX saves the records as a spreadsheet with the same columns as
// the CSV report. Numeric columns are stored as numbers.
func WriteXLSX(path string, records []geg.EmployeeRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	header := make([]any, len(csvFields))
	for i, field := range csvFields {
		header[i] = ColumnName(field)
	}
	err = sw.SetRow("A1", header)
	if err != nil {
		return err
	}

	rows := TableRows(records, nil, time.Time{})
	for i, row := range rows {
		expiry := ExpiryPlaceholder
		if row.LicenseExpiry.Valid {
			expiry = row.LicenseExpiry.String
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		err = sw.SetRow(cell, []any{
			row.EmploymentStatus,
			strings.ToUpper(row.Name),
			geg.TaxIDDigits(row.TaxID),
			row.Role,
			row.LicenseStatus,
			row.LicenseScore,
			expiry,
			row.PhoneUse,
			row.Eating,
			row.Smoking,
			row.EyeClosure,
			row.Seatbelt,
			row.Speeding1,
			row.Speeding2,
			row.Speeding3,
			row.LaneSpeeding1,
			row.LaneSpeeding2,
			row.LaneSpeeding3,
			row.GForce,
			row.HarshBraking,
			row.PowerOn,
			row.OperationSite,
		})
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	err = sw.Flush()
	if err != nil {
		return err
	}
	return f.SaveAs(path)
}

// WriteXLSXFile writes the spreadsheet into `dir` under XLSXFilename(at)
// and returns its path.
func WriteXLSXFile(dir string, at time.Time, records []geg.EmployeeRecord) (string, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, XLSXFilename(at))
	return path, WriteXLSX(path, records)
}
