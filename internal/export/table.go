package export

import (
	"database/sql"
	"geg-automation/internal/components/db"
	"geg-automation/internal/scrapers/geg"
	"strconv"
	"strings"
	"time"
)

// OperationIDs are the branch and operation registered for an operation site.
type OperationIDs struct {
	BranchID    int64 `json:"branch_id"`
	OperationID int64 `json:"operation_id"`
}

// Operations maps an operation label (as shown in the report) to its ids.
type Operations map[string]OperationIDs

// DefaultOperations returns the sites known at the time of writing.
func DefaultOperations() Operations {
	return Operations{
		"NOVA RIO":   {BranchID: 2, OperationID: 2},
		"NOVA MINAS": {BranchID: 3, OperationID: 2},
	}
}

// Lookup returns the ids of `label`, unknown labels map to zero ids.
func (o Operations) Lookup(label string) OperationIDs {
	label = strings.TrimSpace(label)
	if ids, ok := o[label]; ok {
		return ids
	}
	for known, ids := range o {
		if strings.EqualFold(known, label) {
			return ids
		}
	}
	return OperationIDs{}
}

// ParseExpiry turns a dd/mm/yyyy expiry into a nullable yyyy-mm-dd date.
func ParseExpiry(expiry string) sql.NullString {
	iso, ok := ISOExpiry(expiry)
	return sql.NullString{String: iso, Valid: ok}
}

func parseNumber(value string) float64 {
	n, err := strconv.ParseFloat(geg.FormatNumber(value), 64)
	if err != nil {
		return 0
	}
	return n
}

// TableRows converts records into database rows stamped with `updatedAt`.
func TableRows(records []geg.EmployeeRecord, ops Operations, updatedAt time.Time) []db.Row {
	rows := make([]db.Row, len(records))
	for i, record := range records {
		ids := ops.Lookup(record.OperationSite)
		rows[i] = db.Row{
			TaxID:            geg.FormatTaxID(record.TaxID),
			EmploymentStatus: record.EmploymentStatus,
			Name:             geg.NormalizeName(record.Name),
			Role:             record.Role,
			LicenseStatus:    record.LicenseStatus,
			LicenseScore:     parseNumber(record.LicenseScore),
			LicenseExpiry:    ParseExpiry(record.LicenseExpiry),
			PhoneUse:         parseNumber(record.PhoneUse),
			Eating:           parseNumber(record.Eating),
			Smoking:          parseNumber(record.Smoking),
			EyeClosure:       parseNumber(record.EyeClosure),
			Seatbelt:         parseNumber(record.Seatbelt),
			Speeding1:        parseNumber(record.Speeding1),
			Speeding2:        parseNumber(record.Speeding2),
			Speeding3:        parseNumber(record.Speeding3),
			LaneSpeeding1:    parseNumber(record.LaneSpeeding1),
			LaneSpeeding2:    parseNumber(record.LaneSpeeding2),
			LaneSpeeding3:    parseNumber(record.LaneSpeeding3),
			GForce:           parseNumber(record.GForce),
			HarshBraking:     parseNumber(record.HarshBraking),
			PowerOn:          parseNumber(record.PowerOn),
			OperationSite:    record.OperationSite,
			BranchID:         ids.BranchID,
			OperationID:      ids.OperationID,
			UpdatedAt:        updatedAt,
		}
	}
	return rows
}
