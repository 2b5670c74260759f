/*
Copyright (C) 2026  OpenPMD-Go Contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package catalog implements the optional SQL run catalog (SPEC_FULL.md
// §4.11): Open connects to a catalog database and creates its table, and
// Upsert writes a row naming a file, its last written step, backend,
// access mode and close time, independent of and in addition to whatever
// the backend itself writes to disk. No backend or command in this module
// calls Open or Upsert, so CLOSE_FILE does not write catalog rows.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/openpmd/openpmd-go/ioerror"
)

// Entry is one row of the run catalog. RunID is a surrogate key distinct
// from Filename: a run directory can be reused by a later, unrelated run
// (the same openPMD file-name template rotated to a new simulation), and
// Filename alone would then silently merge two runs' history under one
// row.
type Entry struct {
	RunID      string
	Filename   string
	LastStep   int64
	Backend    string
	AccessMode string
	ClosedAt   time.Time
}

// NewEntry fills in RunID with a fresh random UUID when the caller
// hasn't already assigned one (e.g. to keep reusing the same RunID
// across a run's successive CLOSE_FILE upserts).
func NewEntry(runID, filename, backend, accessMode string, lastStep int64, closedAt time.Time) Entry {
	if runID == "" {
		runID = uuid.NewString()
	}
	return Entry{RunID: runID, Filename: filename, LastStep: lastStep, Backend: backend, AccessMode: accessMode, ClosedAt: closedAt}
}

const createTableMySQL = `CREATE TABLE IF NOT EXISTS openpmd_runs (
	run_id CHAR(36) NOT NULL PRIMARY KEY,
	filename VARCHAR(1024) NOT NULL,
	last_step BIGINT NOT NULL,
	backend VARCHAR(64) NOT NULL,
	access_mode VARCHAR(32) NOT NULL,
	closed_at DATETIME NOT NULL
)`

const createTablePostgres = `CREATE TABLE IF NOT EXISTS openpmd_runs (
	run_id UUID PRIMARY KEY,
	filename TEXT NOT NULL,
	last_step BIGINT NOT NULL,
	backend TEXT NOT NULL,
	access_mode TEXT NOT NULL,
	closed_at TIMESTAMPTZ NOT NULL
)`

// Catalog wraps a database/sql handle opened against one of the two
// recognized drivers, "mysql" (github.com/go-sql-driver/mysql) or
// "postgres" (github.com/lib/pq).
type Catalog struct {
	driver string
	db     *sql.DB
}

// Open establishes the catalog database connection and ensures the
// openpmd_runs table exists. driver must be "mysql" or "postgres".
func Open(driver, dsn string) (*Catalog, error) {
	switch driver {
	case "mysql", "postgres":
	default:
		return nil, &ioerror.BackendConfigSchema{
			JSONPath: []string{"catalog", "driver"},
			Message:  fmt.Sprintf("unrecognized catalog driver %q, want mysql or postgres", driver),
		}
	}

	sqlDriverName := driver
	if driver == "postgres" {
		sqlDriverName = "postgres" // lib/pq registers itself as "postgres"
	}

	db, err := sql.Open(sqlDriverName, dsn)
	if err != nil {
		return nil, &ioerror.BackendConfigSchema{
			JSONPath: []string{"catalog", "dsn"},
			Message:  "opening catalog database: " + err.Error(),
		}
	}

	createTable := createTableMySQL
	if driver == "postgres" {
		createTable = createTablePostgres
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: creating openpmd_runs table: %w", err)
	}

	return &Catalog{driver: driver, db: db}, nil
}

// Close closes the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// upsertQuery returns the driver-specific upsert statement for Entry,
// split out from Upsert so the SQL text itself is directly testable
// without a live database connection.
func upsertQuery(driver string) string {
	switch driver {
	case "postgres":
		return `INSERT INTO openpmd_runs (run_id, filename, last_step, backend, access_mode, closed_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (run_id) DO UPDATE SET
	filename = EXCLUDED.filename,
	last_step = EXCLUDED.last_step,
	backend = EXCLUDED.backend,
	access_mode = EXCLUDED.access_mode,
	closed_at = EXCLUDED.closed_at`
	default: // mysql
		return `INSERT INTO openpmd_runs (run_id, filename, last_step, backend, access_mode, closed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
	filename = VALUES(filename),
	last_step = VALUES(last_step),
	backend = VALUES(backend),
	access_mode = VALUES(access_mode),
	closed_at = VALUES(closed_at)`
	}
}

// Upsert writes or updates e's row, keyed by RunID, and returns any
// database failure to its caller. No CLOSE_FILE handler in this module
// calls it.
func (c *Catalog) Upsert(ctx context.Context, e Entry) error {
	if e.RunID == "" {
		return fmt.Errorf("catalog: upserting %s: RunID must be set (use NewEntry)", e.Filename)
	}
	_, err := c.db.ExecContext(ctx, upsertQuery(c.driver),
		e.RunID, e.Filename, e.LastStep, e.Backend, e.AccessMode, e.ClosedAt)
	if err != nil {
		return fmt.Errorf("catalog: upserting %s: %w", e.Filename, err)
	}
	return nil
}
