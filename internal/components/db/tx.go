package db

import (
	"context"
	"database/sql"
)

// MakeTx begins a transaction. discard is safe to defer, after commit it
// returns sql.ErrTxDone and does nothing.
type MakeTx = func(ctx context.Context) (tx *sql.Tx, discard, commit func() error, err error)

// NewMakeTx begins transactions on `database` with `opts`, nil means the
// driver defaults.
func NewMakeTx(database *sql.DB, opts *sql.TxOptions) MakeTx {
	return func(ctx context.Context) (*sql.Tx, func() error, func() error, error) {
		tx, err := database.BeginTx(ctx, opts)
		if err != nil {
			return nil, nil, nil, err
		}
		return tx, tx.Rollback, tx.Commit, nil
	}
}
