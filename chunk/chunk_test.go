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
package chunk

import (
	"testing"

	"github.com/openpmd/openpmd-go/datatype"
)

func TestDatasetValidateRejectsEmptyExtent(t *testing.T) {
	d := Dataset{Datatype: datatype.DOUBLE}
	if err := d.Validate(); err == nil {
		t.Fatalf("expected error for empty extent")
	}
}

func TestDatasetValidateJoinedDimensionRange(t *testing.T) {
	bad := 5
	d := Dataset{Datatype: datatype.DOUBLE, Extent: Extent{4}, JoinedDimension: &bad}
	if err := d.Validate(); err == nil {
		t.Fatalf("expected error for out-of-range joined dimension")
	}
}

func TestSelectionValidateAgainstShape(t *testing.T) {
	shape := Extent{10, 10}
	sel := Selection{Offset: Offset{8, 0}, Extent: Extent{4, 10}}
	if err := sel.ValidateAgainstShape(shape, nil); err == nil {
		t.Fatalf("expected out-of-bounds error")
	}

	sel2 := Selection{Offset: Offset{6, 0}, Extent: Extent{4, 10}}
	if err := sel2.ValidateAgainstShape(shape, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSelectionValidateIgnoresOffsetOnJoinedDimension(t *testing.T) {
	shape := Extent{17, 10}
	joined := 0
	// offset on the joined dimension is meaningless; only extent matters,
	// and it must not be checked against the assembled global shape since
	// each rank only knows its own contribution.
	sel := Selection{Offset: Offset{999, 0}, Extent: Extent{5, 10}}
	if err := sel.ValidateAgainstShape(shape, &joined); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssembleJoined(t *testing.T) {
	shape, offsets := AssembleJoined(Extent{0}, 0, []uint64{5, 3, 7, 2})
	if shape[0] != 17 {
		t.Fatalf("shape[0] = %d, want 17", shape[0])
	}
	want := []uint64{0, 5, 8, 15}
	for i, w := range want {
		if offsets[i] != w {
			t.Fatalf("offsets[%d] = %d, want %d", i, offsets[i], w)
		}
	}
}

func TestCoverageComplete(t *testing.T) {
	shape := Extent{10}
	chunks := []WrittenChunkInfo{
		{Offset: Offset{0}, Extent: Extent{4}, Writer: 0},
		{Offset: Offset{4}, Extent: Extent{6}, Writer: 1},
	}
	if !CoverageComplete(shape, chunks) {
		t.Fatalf("expected complete coverage")
	}
	chunks = append(chunks, WrittenChunkInfo{Offset: Offset{0}, Extent: Extent{4}, Writer: 0})
	if CoverageComplete(shape, chunks) {
		t.Fatalf("expected duplicate submission to be rejected")
	}
}

func TestSpanBytesReresolves(t *testing.T) {
	buf := []byte{1, 2, 3}
	s := NewSpan(0, func() []byte { return buf })
	if s.Bytes()[0] != 1 {
		t.Fatalf("unexpected span contents")
	}
	buf[0] = 9
	if s.Bytes()[0] != 9 {
		t.Fatalf("span must re-fetch, not cache")
	}
}
