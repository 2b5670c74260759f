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

import "github.com/openpmd/openpmd-go/chunk"

// candidateBudgetsBytes is the closed descending ladder of chunk byte
// budgets spec §4.5 names: "{4,2,1,0.5,0.25,0.125,0.0625} MiB".
var candidateBudgetsBytes = []int64{
	4 * 1024 * 1024,
	2 * 1024 * 1024,
	1 * 1024 * 1024,
	512 * 1024,
	256 * 1024,
	128 * 1024,
	64 * 1024,
}

// ChunkShape picks a chunk shape for a dataset of the given extent and
// element size, targeting the largest candidate byte budget in spec
// §4.5's ladder (4 MiB). It is ChunkShapeWithBudget pinned to that
// top-of-ladder rung; the ladder's smaller rungs are reached implicitly
// through successive halving rather than needing an explicit
// budget-selection loop.
func ChunkShape(extent chunk.Extent, elementSize int) chunk.Extent {
	return ChunkShapeWithBudget(extent, elementSize, candidateBudgetsBytes[0])
}

// ChunkShapeWithBudget shrinks the widest dimension of extent, one halving
// at a time, until the chunk's byte size fits within budget (spec §4.5:
// "preferring larger dimensions first"). A dataset already within budget
// is chunked as one single chunk equal to its own extent. Used directly
// when hdf5.dataset.chunks names an explicit byte size rather than
// "auto".
func ChunkShapeWithBudget(extent chunk.Extent, elementSize int, budget int64) chunk.Extent {
	if elementSize <= 0 {
		elementSize = 1
	}
	if budget <= 0 {
		budget = candidateBudgetsBytes[0]
	}
	shape := extent.Clone()
	for int64(shape.Elements())*int64(elementSize) > budget {
		widest := widestDimension(shape)
		if shape[widest] <= 1 {
			break // cannot shrink further without degenerating a dimension to zero
		}
		shape[widest] = (shape[widest] + 1) / 2
	}
	return shape
}

func widestDimension(shape chunk.Extent) int {
	widest := 0
	for i, d := range shape {
		if d > shape[widest] {
			widest = i
		}
	}
	return widest
}
