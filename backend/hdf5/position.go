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

import "path"

// Position is the HDF5 backend's concrete writable.Writable file
// position (spec §4.1: "for HDF5: an HDF5 path string"). Unlike the
// ADIOS2 adapter, HDF5 groups and datasets share one real path namespace,
// so a single slash-joined Path suffices — no separate group/tag split.
type Position struct {
	Path string
}

// Synthesize implements writable.Synthesizer[Position]: child positions
// append their key segments onto the parent's path.
func Synthesize(parent Position, key []string) Position {
	if len(key) == 0 {
		return parent
	}
	return Position{Path: path.Join(append([]string{parent.Path}, key...)...)}
}
