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
package jsonfile

import "path"

// Position locates a Writable within one open file's group tree, the same
// single slash-joined path backend/hdf5 uses (the JSON dump has a real
// nested-object group namespace too, unlike ADIOS2's flat variable table).
type Position struct {
	Path string
}

// Synthesize extends parent's path by key, matching backend/hdf5's
// writable.Synthesizer[Position] shape.
func Synthesize(parent Position, key []string) Position {
	if len(key) == 0 {
		return parent
	}
	return Position{Path: path.Join(append([]string{parent.Path}, key...)...)}
}
