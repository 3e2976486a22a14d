package database

import (
	"database/sql"
	"fmt"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var schema = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS favorites (
			device_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			cuisines TEXT NOT NULL DEFAULT '',
			timings TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (device_id, restaurant_id)
		)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS favorites (
			device_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			cuisines TEXT NOT NULL DEFAULT '',
			timings TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (device_id, restaurant_id)
		)`,
	},
}

// Migrate creates the favorites table when it does not exist yet.
func Migrate(db *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("unknown dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}
	return nil
}
