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
package adios2

import (
	"testing"

	"github.com/openpmd/openpmd-go/writable"
)

func pathOf(w *writable.Writable[Position]) string {
	pos, err := w.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return ""
	}
	return pos.GroupPath
}

func TestGroupTableMarkActiveWalksAncestorsOnce(t *testing.T) {
	root := writable.NewRoot[Position](nil)
	root.SetFilePosition(Position{})
	meshes := writable.NewChild(root, "meshes")
	e := writable.NewChild(meshes, "E")

	tbl := NewGroupTable(false, false)
	entries, err := tbl.MarkActive(e, 0, pathOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 ancestor entries (root, meshes, meshes/E), got %d: %+v", len(entries), entries)
	}
}

func TestGroupTableMarkActiveSkipsAlreadyMarkedThisStep(t *testing.T) {
	root := writable.NewRoot[Position](nil)
	root.SetFilePosition(Position{})
	meshes := writable.NewChild(root, "meshes")

	tbl := NewGroupTable(false, false)
	if _, err := tbl.MarkActive(meshes, 0, pathOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := tbl.MarkActive(meshes, 0, pathOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no rewrite within the same step, got %+v", entries)
	}
}

func TestGroupTableMarkActiveAtNewStepRequiresModificationSupport(t *testing.T) {
	root := writable.NewRoot[Position](nil)
	meshes := writable.NewChild(root, "meshes")

	tbl := NewGroupTable(false, false)
	if _, err := tbl.MarkActive(meshes, 0, pathOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tbl.MarkActive(meshes, 1, pathOf); err == nil {
		t.Fatalf("expected an error re-marking an existing entry without ADIOS>=2.9 allowModification")
	}
}

func TestGroupTableMarkActiveAtNewStepSucceedsWithModificationSupport(t *testing.T) {
	root := writable.NewRoot[Position](nil)
	root.SetFilePosition(Position{})
	meshes := writable.NewChild(root, "meshes")

	tbl := NewGroupTable(true, true)
	if _, err := tbl.MarkActive(meshes, 0, pathOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := tbl.MarkActive(meshes, 1, pathOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range entries {
		if e.LastActive != 1 {
			t.Fatalf("expected every rewritten entry to land at step 1, got %+v", entries)
		}
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least the meshes entry to be rewritten")
	}
}

func TestGroupTableListChildrenFiltersByStep(t *testing.T) {
	root := writable.NewRoot[Position](nil)
	root.SetFilePosition(Position{})
	meshes := writable.NewChild(root, "meshes")
	fields := writable.NewChild(root, "fields")

	tbl := NewGroupTable(true, true)
	if _, err := tbl.MarkActive(meshes, 0, pathOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tbl.MarkActive(fields, 1, pathOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	children := tbl.ListChildren("", 0)
	if len(children) != 1 || children[0] != "meshes" {
		t.Fatalf("expected only meshes active at step 0, got %v", children)
	}
}

func TestIsGroupTableAttributeRecognizesNamespace(t *testing.T) {
	if !IsGroupTableAttribute(attributeName("meshes")) {
		t.Fatalf("expected attributeName(...) to be recognized as a group-table attribute")
	}
	if IsGroupTableAttribute("meshes/E/unitSI") {
		t.Fatalf("ordinary attribute must not be mistaken for a group-table entry")
	}
}
