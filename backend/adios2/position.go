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
	"path"
	"strings"
)

// Position is the ADIOS2 backend's concrete writable.Writable file
// position (spec §4.1: "a POSIX-like path plus group/dataset tag"):
// GroupPath is the slash-joined sequence of group names down from the
// root; Tag, when non-empty, names a variable or attribute living at
// that group path rather than the group itself.
type Position struct {
	GroupPath string
	Tag       string
}

// Synthesize implements writable.Synthesizer[Position]: child positions
// append their key segments to the parent's group path.
func Synthesize(parent Position, key []string) Position {
	if len(key) == 0 {
		return parent
	}
	return Position{GroupPath: path.Join(parent.GroupPath, strings.Join(key, "/"))}
}

// VariableName returns the ADIOS2 variable name this position addresses
// (its group path with the key segments joined by '/', ADIOS2 has no
// separate "group" concept at the storage layer — only variable and
// attribute names, spec §4.4.4's "groups have no intrinsic
// representation in ADIOS2").
func (p Position) VariableName() string {
	if p.Tag != "" {
		return path.Join(p.GroupPath, p.Tag)
	}
	return p.GroupPath
}
