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
package media

import (
	"io"
	"testing"
)

func TestLocalCreateThenOpenRoundTrips(t *testing.T) {
	dir := t.TempDir()
	m := NewLocal(dir)

	w, err := m.Create("run.bp5/data.0")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("payload")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := m.Open("run.bp5/data.0")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q", got)
	}
}

func TestLocalListFiltersByPrefix(t *testing.T) {
	dir := t.TempDir()
	m := NewLocal(dir)
	for _, name := range []string{"run.bp5.0", "run.bp5.1", "other.bp5"} {
		w, _ := m.Create(name)
		w.Close()
	}
	names, err := m.List("run.bp5")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("List returned %v, want 2 entries", names)
	}
}

func TestLocalListTrailingSlashWalksDirectoryTree(t *testing.T) {
	dir := t.TempDir()
	m := NewLocal(dir)
	for _, name := range []string{"run.bp5/E", "run.bp5/attr/unitSI", "other.bp5"} {
		w, err := m.Create(name)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		w.Close()
	}
	names, err := m.List("run.bp5/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("List returned %v, want 2 entries", names)
	}
	if names[0] != "run.bp5/E" || names[1] != "run.bp5/attr/unitSI" {
		t.Fatalf("got %v", names)
	}
}

func TestLocalListTrailingSlashOnMissingDirectoryIsEmpty(t *testing.T) {
	dir := t.TempDir()
	m := NewLocal(dir)
	names, err := m.List("nonexistent.bp5/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no entries, got %v", names)
	}
}

func TestLocalRemove(t *testing.T) {
	dir := t.TempDir()
	m := NewLocal(dir)
	w, _ := m.Create("gone.bp5")
	w.Close()
	if err := m.Remove("gone.bp5"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := m.Open("gone.bp5"); err == nil {
		t.Fatalf("expected error opening removed file")
	}
}

func TestOpenResolvesScheme(t *testing.T) {
	med, key, err := Open("s3://my-bucket/prefix/run.bp5")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := med.(*S3); !ok {
		t.Fatalf("expected *S3, got %T", med)
	}
	if key != "prefix/run.bp5" {
		t.Fatalf("key = %q", key)
	}
}
