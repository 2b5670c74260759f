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
package writable

import (
	"errors"
	"testing"

	"github.com/openpmd/openpmd-go/ioerror"
)

type posixPos struct {
	path string
}

func synth(parent posixPos, key []string) posixPos {
	p := parent.path
	for _, k := range key {
		if p != "/" && p != "" {
			p += "/"
		}
		p += k
	}
	return posixPos{path: p}
}

func TestSetAndGetFilePositionSynthesizesFromParent(t *testing.T) {
	file := NewFileHandle("run.bp5")
	root := NewRoot[posixPos](file)
	root.SetFilePosition(posixPos{path: "/"})

	meshes := NewChild(root, "meshes")
	ex := NewChild(meshes, "E", "x")

	pos, err := ex.SetAndGetFilePosition(synth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.path != "/meshes/E/x" {
		t.Fatalf("got %q", pos.path)
	}

	// cached: a second call must not resynthesize from a mutated parent.
	meshes.SetFilePosition(posixPos{path: "/elsewhere"})
	pos2, _ := ex.SetAndGetFilePosition(synth)
	if pos2.path != "/meshes/E/x" {
		t.Fatalf("expected cached position, got %q", pos2.path)
	}
}

func TestSetAndGetFilePositionUnrootedIsInternalError(t *testing.T) {
	orphan := &Writable[posixPos]{} // no parent, no position set
	_, err := orphan.SetAndGetFilePosition(synth)
	var internal *ioerror.Internal
	if !errors.As(err, &internal) {
		t.Fatalf("expected *ioerror.Internal, got %v", err)
	}
}

func TestFileHandleInvalidationIsSharedAcrossAliases(t *testing.T) {
	file := NewFileHandle("run.bp5")
	root := NewRoot[posixPos](file)
	child := NewChild(root, "meshes")

	if !child.File.Valid() {
		t.Fatalf("expected valid handle")
	}
	root.File.Invalidate() // same pointer as child.File
	if child.File.Valid() {
		t.Fatalf("invalidating one alias must invalidate all aliases")
	}
}

func TestRefreshFileFromParent(t *testing.T) {
	fileA := NewFileHandle("a.bp5")
	fileB := NewFileHandle("b.bp5")
	root := NewRoot[posixPos](fileA)
	child := NewChild(root, "it1")
	child.File = fileB

	child.RefreshFileFromParent(false)
	if child.File != fileB {
		t.Fatalf("preferParent=false must keep existing file")
	}
	child.RefreshFileFromParent(true)
	if child.File != fileA {
		t.Fatalf("preferParent=true must adopt parent's file")
	}
}
