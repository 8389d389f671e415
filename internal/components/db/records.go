package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const recordsTable = "log_prontuarios_gente_gestao"

// Row is the persisted form of one employee record.
type Row struct {
	TaxID            string
	EmploymentStatus string
	Name             string
	Role             string
	LicenseStatus    string
	LicenseScore     float64
	// LicenseExpiry is yyyy-mm-dd or NULL.
	LicenseExpiry sql.NullString
	PhoneUse      float64
	Eating        float64
	Smoking       float64
	EyeClosure    float64
	Seatbelt      float64
	Speeding1     float64
	Speeding2     float64
	Speeding3     float64
	LaneSpeeding1 float64
	LaneSpeeding2 float64
	LaneSpeeding3 float64
	GForce        float64
	HarshBraking  float64
	PowerOn       float64
	OperationSite string
	BranchID      int64
	OperationID   int64
	UpdatedAt     time.Time
}

func suffixed(name string) string {
	return name + "_" + recordsTable
}

// recordColumns is the column order shared by upserts and reads, the
// first column is the primary key.
var recordColumns = []string{
	suffixed("cpf"),
	suffixed("situacao"),
	suffixed("nome"),
	suffixed("cargo"),
	suffixed("status"),
	suffixed("pontuacao"),
	suffixed("vencimento"),
	suffixed("celular"),
	suffixed("alimento"),
	suffixed("fumando"),
	suffixed("oclusao"),
	suffixed("cinto"),
	suffixed("velo1"),
	suffixed("velo2"),
	suffixed("velo3"),
	suffixed("via1"),
	suffixed("via2"),
	suffixed("via3"),
	suffixed("forcag"),
	suffixed("frenagem"),
	suffixed("power"),
	suffixed("operacao"),
	"id_cad_filiais",
	"id_cad_operacoes",
	suffixed("data_atualizacao"),
}

func (r Row) values() []any {
	return []any{
		r.TaxID,
		r.EmploymentStatus,
		r.Name,
		r.Role,
		r.LicenseStatus,
		r.LicenseScore,
		r.LicenseExpiry,
		r.PhoneUse,
		r.Eating,
		r.Smoking,
		r.EyeClosure,
		r.Seatbelt,
		r.Speeding1,
		r.Speeding2,
		r.Speeding3,
		r.LaneSpeeding1,
		r.LaneSpeeding2,
		r.LaneSpeeding3,
		r.GForce,
		r.HarshBraking,
		r.PowerOn,
		r.OperationSite,
		r.BranchID,
		r.OperationID,
		r.UpdatedAt.Unix(),
	}
}

var upsertQuery = func() string {
	placeholders := make([]string, len(recordColumns))
	updates := make([]string, 0, len(recordColumns)-1)
	for i, col := range recordColumns {
		placeholders[i] = "?"
		if i == 0 {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}
	return fmt.Sprintf(
		"insert into %s (%s) values (%s) on conflict (%s) do update set %s",
		recordsTable,
		strings.Join(recordColumns, ", "),
		strings.Join(placeholders, ", "),
		recordColumns[0],
		strings.Join(updates, ", "),
	)
}()

// UpsertRows inserts or replaces every row by tax ID in one transaction.
func (s Store) UpsertRows(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	stmt, err := tx.PrepareContext(ctx, s.rebind(upsertQuery))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx, row.values()...)
		if err != nil {
			s.tel.ReportBroken(report_db_upsert, err, "cpf", row.TaxID)
			return fmt.Errorf("upsert %s: %w", row.TaxID, err)
		}
	}

	err = commit()
	if err != nil {
		return err
	}
	s.tel.ReportCount(report_db_upsert, int64(len(rows)))
	return nil
}

// GetRow returns the stored row for `taxID`, sql.ErrNoRows if there is none.
func (s Store) GetRow(ctx context.Context, taxID string) (Row, error) {
	query := fmt.Sprintf(
		"select %s from %s where %s = ?",
		strings.Join(recordColumns, ", "),
		recordsTable,
		recordColumns[0],
	)

	var row Row
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, s.rebind(query), taxID).Scan(
		&row.TaxID,
		&row.EmploymentStatus,
		&row.Name,
		&row.Role,
		&row.LicenseStatus,
		&row.LicenseScore,
		&row.LicenseExpiry,
		&row.PhoneUse,
		&row.Eating,
		&row.Smoking,
		&row.EyeClosure,
		&row.Seatbelt,
		&row.Speeding1,
		&row.Speeding2,
		&row.Speeding3,
		&row.LaneSpeeding1,
		&row.LaneSpeeding2,
		&row.LaneSpeeding3,
		&row.GForce,
		&row.HarshBraking,
		&row.PowerOn,
		&row.OperationSite,
		&row.BranchID,
		&row.OperationID,
		&updatedAt,
	)
	if err != nil {
		return Row{}, err
	}
	row.UpdatedAt = time.Unix(updatedAt, 0)
	return row, nil
}

// CountRows returns the number of stored employee records.
func (s Store) CountRows(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "select count(*) from "+recordsTable).Scan(&count)
	return count, err
}
