package db

import (
	"context"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var Schema string

// statements splits Schema into individual statements, not every driver
// accepts more than one statement per Exec.
func statements(schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// Migrate creates every table that does not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	for _, stmt := range statements(Schema) {
		_, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			return err
		}
	}
	return nil
}
