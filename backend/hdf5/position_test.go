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
package hdf5

import "testing"

func TestSynthesizeJoinsSegmentsOntoParent(t *testing.T) {
	parent := Position{Path: "meshes"}
	got := Synthesize(parent, []string{"E", "x"})
	if got.Path != "meshes/E/x" {
		t.Fatalf("got %q", got.Path)
	}
}

func TestSynthesizeWithNoKeyReturnsParentUnchanged(t *testing.T) {
	parent := Position{Path: "meshes"}
	got := Synthesize(parent, nil)
	if got != parent {
		t.Fatalf("got %+v, want %+v", got, parent)
	}
}

func TestSynthesizeFromRoot(t *testing.T) {
	root := Position{Path: ""}
	got := Synthesize(root, []string{"meshes"})
	if got.Path != "meshes" {
		t.Fatalf("got %q", got.Path)
	}
}
