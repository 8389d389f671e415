package db

import (
	"database/sql"
	"fmt"
	"geg-automation/internal/components/telemetry"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const (
	report_db_open   = "db.open"
	report_db_upsert = "db.upsert"
	report_db_run    = "db.run-log"
)

// Dialect decides the placeholder style of the queries sent to the database.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// Store holds the credentials, the employee records and the run log.
type Store struct {
	db      *sql.DB
	dialect Dialect
	makeTx  MakeTx
	tel     telemetry.API
}

// NewStore wraps an already opened database.
func NewStore(database *sql.DB, dialect Dialect, tel telemetry.API) Store {
	return Store{
		db:      database,
		dialect: dialect,
		makeTx:  NewMakeTx(database, nil),
		tel:     telemetry.NewScopedAPI("db", tel),
	}
}

// Open picks the driver from the scheme of `url`:
//
//   - postgres:// or postgresql:// -> pgx
//   - libsql://, http(s):// or ws(s):// -> libsql (Turso)
//   - anything else is a sqlite file path (or ":memory:")
func Open(url string, tel telemetry.API) (Store, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		database, err := sql.Open("pgx", url)
		if err != nil {
			return Store{}, err
		}
		return NewStore(database, DialectPostgres, tel), nil
	case strings.HasPrefix(url, "libsql://"),
		strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"),
		strings.HasPrefix(url, "ws://"), strings.HasPrefix(url, "wss://"):
		database, err := sql.Open("libsql", url)
		if err != nil {
			return Store{}, err
		}
		return NewStore(database, DialectSQLite, tel), nil
	}

	database, err := openSQLite(url)
	if err != nil {
		tel.ReportBroken(report_db_open, err, "path", url)
		return Store{}, err
	}
	return NewStore(database, DialectSQLite, tel), nil
}

func openSQLite(path string) (*sql.DB, error) {
	path = strings.TrimPrefix(path, "file:")
	if path == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	memory := path == ":memory:"
	if !memory {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, err
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// single writer, and every :memory: connection is its own database
	database.SetMaxOpenConns(1)
	if !memory {
		_, err = database.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

func (s Store) DB() *sql.DB {
	return s.db
}

func (s Store) Close() error {
	return s.db.Close()
}

// rebind rewrites `?` placeholders into `$1, $2, ...` for postgres.
func (s Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var out strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			out.WriteString("$")
			out.WriteString(strconv.Itoa(n))
			continue
		}
		out.WriteRune(c)
	}
	return out.String()
}
