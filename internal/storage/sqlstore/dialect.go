// Package sqlstore keeps users and books in SQLite or PostgreSQL. Uniqueness
// of emails and titles is enforced by the schema, not by read-then-write.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"bookCatalog/package/client/database"
)

type dialect struct {
	name      string
	schema    []string
	forUpdate string
	numbered  bool
}

var sqliteDialect = dialect{
	name: database.SQLite,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS books (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL UNIQUE,
			author TEXT NOT NULL,
			genre TEXT NOT NULL,
			published_year INTEGER NOT NULL,
			user_id TEXT NOT NULL
		);`,
	},
}

var postgresDialect = dialect{
	name: database.Postgres,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS books (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL UNIQUE,
			author TEXT NOT NULL,
			genre TEXT NOT NULL,
			published_year BIGINT NOT NULL,
			user_id TEXT NOT NULL
		);`,
	},
	forUpdate: " FOR UPDATE",
	numbered:  true,
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case database.SQLite:
		return sqliteDialect, nil
	case database.Postgres:
		return postgresDialect, nil
	}
	return dialect{}, fmt.Errorf("sqlstore: unsupported driver %q", driver)
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	d, err := dialectFor(driver)
	if err != nil {
		return err
	}
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", d.name, err)
		}
	}
	return nil
}
