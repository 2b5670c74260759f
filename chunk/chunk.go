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
// Package chunk implements the backend-independent chunked dataset model
// (spec §4.3, §4.6): Offset/Extent selections, joined dimensions, dataset
// descriptors, and chunk-inventory reporting.
package chunk

import (
	"fmt"

	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/ioerror"
)

// Offset is an ordered sequence of per-dimension start indices.
type Offset []uint64

// Extent is an ordered sequence of per-dimension lengths.
type Extent []uint64

// Clone returns an independent copy.
func (e Extent) Clone() Extent {
	out := make(Extent, len(e))
	copy(out, e)
	return out
}

// Clone returns an independent copy.
func (o Offset) Clone() Offset {
	out := make(Offset, len(o))
	copy(out, o)
	return out
}

// Elements returns the product of all dimensions (the element count of a
// selection with this extent).
func (e Extent) Elements() uint64 {
	n := uint64(1)
	for _, d := range e {
		n *= d
	}
	return n
}

// OperatorSpec names a compression/transform operator and its string
// parameter dictionary, attached to a dataset at CREATE_DATASET time
// (spec §4.3, §6.1). Concrete codecs live in package operator; this type
// is the wire-shape so package chunk does not need to import operator.
type OperatorSpec struct {
	Type       string
	Parameters map[string]string
}

// Dataset is the descriptor passed to CREATE_DATASET (spec §3, §4.6):
// { datatype, extent, options }, plus an optional joined-dimension index.
type Dataset struct {
	Datatype datatype.Datatype
	Extent   Extent
	// JoinedDimension, if non-nil, names the single dimension index whose
	// global extent is the sum of each writer's contribution (spec §3's
	// "Chunk selection" invariant, §4.3's joined-dimension assembly).
	JoinedDimension *int
	// Options carries backend-specific dataset options (chunk layout
	// hints, resizability) as an opaque string-keyed map so package
	// chunk stays backend-agnostic; backends interpret the keys they
	// recognize and ignore the rest.
	Options map[string]string
	// Operators is the per-variable compression/transform chain.
	Operators []OperatorSpec
	// Resizable marks a dataset created with extendDataset in mind
	// (spec §4.3's extendDataset: "legal only for chunk-layout variables").
	Resizable bool
}

// JoinedIndex returns the joined dimension index and whether one is set.
func (d Dataset) JoinedIndex() (int, bool) {
	if d.JoinedDimension == nil {
		return 0, false
	}
	return *d.JoinedDimension, true
}

// Validate enforces the Dataset descriptor invariants of spec §3: a
// non-empty extent, Datatype in the closed enumeration, and at most one
// joined dimension.
func (d Dataset) Validate() error {
	if !d.Datatype.Valid() {
		return &ioerror.UnsupportedData{Message: fmt.Sprintf("invalid datatype %v", d.Datatype)}
	}
	if len(d.Extent) == 0 {
		return &ioerror.UnsupportedData{Message: "dataset extent must be non-empty"}
	}
	if idx, ok := d.JoinedIndex(); ok {
		if idx < 0 || idx >= len(d.Extent) {
			return &ioerror.UnsupportedData{Message: fmt.Sprintf("joined dimension index %d out of range for extent of rank %d", idx, len(d.Extent))}
		}
	}
	return nil
}

// WrittenChunkInfo reports one block written by one rank, as returned by
// AVAILABLE_CHUNKS (spec §4.3, §6.1).
type WrittenChunkInfo struct {
	Offset Offset
	Extent Extent
	Writer uint32
}

// Selection is the (offset, extent) pair submitted with WRITE_DATASET /
// READ_DATASET / GET_BUFFER_VIEW (spec §3's "Chunk selection").
type Selection struct {
	Offset Offset
	Extent Extent
}

// ValidateAgainstShape enforces spec §3's chunk-selection invariant: for
// non-joined dimensions, offset[i]+extent[i] <= shape[i]; for the joined
// dimension (if any), offset[i] is ignored and only extent[i] matters.
func (s Selection) ValidateAgainstShape(shape Extent, joinedDimension *int) error {
	if len(s.Extent) != len(shape) {
		return &ioerror.UnsupportedData{Message: fmt.Sprintf("selection rank %d does not match dataset rank %d", len(s.Extent), len(shape))}
	}
	if len(s.Offset) != 0 && len(s.Offset) != len(shape) {
		return &ioerror.UnsupportedData{Message: fmt.Sprintf("offset rank %d does not match dataset rank %d", len(s.Offset), len(shape))}
	}
	for i := range shape {
		if joinedDimension != nil && i == *joinedDimension {
			continue // offset is ignored/meaningless on the joined dimension
		}
		var off uint64
		if len(s.Offset) != 0 {
			off = s.Offset[i]
		}
		if off+s.Extent[i] > shape[i] {
			return &ioerror.UnsupportedData{Message: fmt.Sprintf(
				"selection out of bounds in dimension %d: offset %d + extent %d > shape %d",
				i, off, s.Extent[i], shape[i])}
		}
	}
	return nil
}

// AssembleJoined computes the global shape of a dataset with a joined
// dimension after each writer's contribution is known, and the per-writer
// start offset along that dimension — spec §4.3: "Joined-dimension
// datasets assemble the global shape as the sum of per-rank counts in
// submission order." contributions must be supplied in submission order;
// the returned offsets follow that same order.
func AssembleJoined(shapeWithoutJoined Extent, joinedDimension int, contributions []uint64) (shape Extent, offsets []uint64) {
	shape = shapeWithoutJoined.Clone()
	offsets = make([]uint64, len(contributions))
	var running uint64
	for i, c := range contributions {
		offsets[i] = running
		running += c
	}
	// shapeWithoutJoined is expected to already have a placeholder (0 or
	// stale) at joinedDimension; overwrite with the assembled total.
	for len(shape) <= joinedDimension {
		shape = append(shape, 0)
	}
	shape[joinedDimension] = running
	return shape, offsets
}

// CoverageComplete reports whether the chunks' element counts add up to
// the element count of shape with no (offset, extent) pair submitted
// twice, used by tests validating spec §8 property 2 ("Chunk coverage").
// Distinct chunks that partially overlap, or that reach outside shape,
// are not detected. It is intended for test fixtures.
func CoverageComplete(shape Extent, chunks []WrittenChunkInfo) bool {
	total := shape.Elements()
	var covered uint64
	seen := make(map[string]bool)
	for _, c := range chunks {
		key := fmt.Sprint(c.Offset, c.Extent)
		if seen[key] {
			return false // duplicate submission, can't prove no-overlap cheaply
		}
		seen[key] = true
		covered += c.Extent.Elements()
	}
	return covered == total
}
