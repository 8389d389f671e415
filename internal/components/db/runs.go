package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Run is one entry of the run log.
type Run struct {
	ID         uuid.UUID
	Email      string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  bool
	Records    int
	Error      string
}

// StartRun records the beginning of a run and returns its id.
func (s Store) StartRun(ctx context.Context, email string, startedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(
		ctx,
		s.rebind("insert into execucoes_automacao_geg (id, email, iniciado_em) values (?, ?, ?)"),
		id.String(), email, startedAt.Unix(),
	)
	if err != nil {
		s.tel.ReportBroken(report_db_run, err, "email", email)
		return uuid.Nil, err
	}
	return id, nil
}

// FinishRun records the outcome of a run, a nil `runErr` means success.
func (s Store) FinishRun(ctx context.Context, id uuid.UUID, finishedAt time.Time, records int, runErr error) error {
	succeeded := 1
	message := ""
	if runErr != nil {
		succeeded = 0
		message = runErr.Error()
	}
	_, err := s.db.ExecContext(
		ctx,
		s.rebind("update execucoes_automacao_geg set finalizado_em = ?, sucesso = ?, registros = ?, erro = ? where id = ?"),
		finishedAt.Unix(), succeeded, records, message, id.String(),
	)
	if err != nil {
		s.tel.ReportBroken(report_db_run, err, "id", id.String())
	}
	return err
}

// LastRunStart returns when the most recent run started, ok is false if
// no run was ever recorded.
func (s Store) LastRunStart(ctx context.Context) (at time.Time, ok bool, err error) {
	var started sql.NullInt64
	err = s.db.QueryRowContext(ctx, "select max(iniciado_em) from execucoes_automacao_geg").Scan(&started)
	if err != nil {
		return time.Time{}, false, err
	}
	if !started.Valid {
		return time.Time{}, false, nil
	}
	return time.Unix(started.Int64, 0), true, nil
}

// GetRun returns a run log entry by id.
func (s Store) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	var run Run
	var rawID string
	var started int64
	var finished sql.NullInt64
	var succeeded int
	err := s.db.QueryRowContext(
		ctx,
		s.rebind("select id, email, iniciado_em, finalizado_em, sucesso, registros, erro from execucoes_automacao_geg where id = ?"),
		id.String(),
	).Scan(&rawID, &run.Email, &started, &finished, &succeeded, &run.Records, &run.Error)
	if err != nil {
		return Run{}, err
	}

	run.ID, err = uuid.Parse(rawID)
	if err != nil {
		return Run{}, err
	}
	run.StartedAt = time.Unix(started, 0)
	if finished.Valid {
		run.FinishedAt = time.Unix(finished.Int64, 0)
	}
	run.Succeeded = succeeded == 1
	return run, nil
}
