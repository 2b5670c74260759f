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
package catalog

import "strings"

import "testing"

import "time"

func TestNewEntryAssignsARunIDWhenNoneGiven(t *testing.T) {
	a := NewEntry("", "run0", "jsonfile", "Create", 3, time.Time{})
	if a.RunID == "" {
		t.Fatalf("NewEntry left RunID empty")
	}
	b := NewEntry("", "run0", "jsonfile", "Create", 3, time.Time{})
	if a.RunID == b.RunID {
		t.Fatalf("NewEntry produced the same RunID twice: %s", a.RunID)
	}

	kept := NewEntry(a.RunID, "run0", "jsonfile", "Create", 4, time.Time{})
	if kept.RunID != a.RunID {
		t.Fatalf("NewEntry replaced a caller-supplied RunID: got %s, want %s", kept.RunID, a.RunID)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("sqlite", "file::memory:"); err == nil {
		t.Fatalf("expected error for unrecognized driver")
	}
}

func TestUpsertQueryMySQLUsesPositionalPlaceholders(t *testing.T) {
	q := upsertQuery("mysql")
	if !strings.Contains(q, "ON DUPLICATE KEY UPDATE") {
		t.Fatalf("mysql upsert must use ON DUPLICATE KEY UPDATE:\n%s", q)
	}
	if !strings.Contains(q, "?") {
		t.Fatalf("mysql upsert must use ? placeholders:\n%s", q)
	}
}

func TestUpsertQueryPostgresUsesOnConflict(t *testing.T) {
	q := upsertQuery("postgres")
	if !strings.Contains(q, "ON CONFLICT (run_id) DO UPDATE") {
		t.Fatalf("postgres upsert must use ON CONFLICT:\n%s", q)
	}
	if !strings.Contains(q, "$1") {
		t.Fatalf("postgres upsert must use $n placeholders:\n%s", q)
	}
}
