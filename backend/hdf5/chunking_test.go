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

import (
	"testing"

	"github.com/openpmd/openpmd-go/chunk"
)

func TestChunkShapeLeavesSmallDatasetWhole(t *testing.T) {
	extent := chunk.Extent{10, 10}
	got := ChunkShape(extent, 8)
	if got[0] != 10 || got[1] != 10 {
		t.Fatalf("expected whole dataset kept as one chunk, got %v", got)
	}
}

func TestChunkShapeShrinksWidestDimensionFirst(t *testing.T) {
	extent := chunk.Extent{1000000, 16}
	got := ChunkShape(extent, 8)
	if got[0] >= extent[0] {
		t.Fatalf("expected widest dimension (0) to shrink, got %v", got)
	}
	if got[1] != extent[1] {
		t.Fatalf("expected narrow dimension untouched, got %v", got)
	}
	if int64(got.Elements())*8 > candidateBudgetsBytes[0] {
		t.Fatalf("chunk %v still exceeds budget", got)
	}
}

func TestChunkShapeNeverDegeneratesToZero(t *testing.T) {
	extent := chunk.Extent{1, 1, 100000000}
	got := ChunkShape(extent, 8)
	for i, d := range got {
		if d == 0 {
			t.Fatalf("dimension %d degenerated to zero: %v", i, got)
		}
	}
}

func TestChunkShapeWithBudgetHonorsExplicitBudget(t *testing.T) {
	extent := chunk.Extent{1024}
	got := ChunkShapeWithBudget(extent, 8, 64)
	if int64(got.Elements())*8 > 64 {
		t.Fatalf("chunk %v exceeds requested 64-byte budget", got)
	}
}
