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
	"github.com/launix-de/NonLockingReadMap"

	"github.com/openpmd/openpmd-go/chunk"
)

// spanCapableEngines are the engines GET_BUFFER_VIEW may use without
// falling back to a copy (spec §4.4.8).
var spanCapableEngines = map[Engine]bool{BP4: true, BP5: true, File: true, FileStream: true}

// SpanRegistry implements the per-file m_updateSpans map (spec §4.4.8):
// GET_BUFFER_VIEW with update=false allocates a new monotonically
// increasing index and stores a type-erased updater; update=true
// re-resolves the (possibly relocated) base pointer through the stored
// updater. valid tracks which indices are still live with the same
// O(1) get/set-by-index bitmap idiom the teacher's compute_proxy.go uses
// for its per-row validMask, repurposed here to per-span liveness.
type SpanRegistry struct {
	updaters []func() []byte
	valid    NonLockingReadMap.NonBlockingBitMap
	next     uint64
}

// NewSpanRegistry constructs an empty registry.
func NewSpanRegistry() *SpanRegistry {
	return &SpanRegistry{}
}

// Supported reports whether engine/hasOperators/spanBasedPutEnabled
// together permit span-based GET_BUFFER_VIEW (spec §4.4.8: "spans are
// unsupported when the variable has operators, when the engine is not in
// a span-capable set, or when the user has disabled span-based puts").
func Supported(engine Engine, hasOperators bool, spanBasedPutEnabled bool) bool {
	return spanBasedPutEnabled && !hasOperators && spanCapableEngines[engine]
}

// New allocates a fresh span index backed by updater, marks it valid,
// and returns the resulting chunk.Span.
func (r *SpanRegistry) New(updater func() []byte) chunk.Span {
	idx := r.next
	r.next++
	if int(idx) >= len(r.updaters) {
		grown := make([]func() []byte, idx+1)
		copy(grown, r.updaters)
		r.updaters = grown
	}
	r.updaters[idx] = updater
	r.valid.Set(uint32(idx), true)
	return chunk.NewSpan(idx, updater)
}

// Update re-resolves index's base pointer through its stored updater,
// per the update=true fetch path of GET_BUFFER_VIEW.
func (r *SpanRegistry) Update(index uint64) (chunk.Span, bool) {
	if index >= uint64(len(r.updaters)) || !r.valid.Get(uint32(index)) {
		return chunk.Span{}, false
	}
	updater := r.updaters[index]
	return chunk.NewSpan(index, updater), true
}

// Clear invalidates every outstanding span, called on ENDSTEP
// alongside the uncommitted-attribute set (spec §4.4.3,
// §4.4.5: "any flush invalidates all outstanding span base pointers").
func (r *SpanRegistry) Clear() {
	r.updaters = nil
	r.valid.Reset()
	r.next = 0
}

// Len reports how many spans are currently valid.
func (r *SpanRegistry) Len() uint {
	return r.valid.Count()
}
