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

import "testing"

func TestSupportedRejectsOperatorsAndNonSpanEngines(t *testing.T) {
	if Supported(BP5, true, true) {
		t.Fatalf("operators must disable span-based puts")
	}
	if Supported(SST, false, true) {
		t.Fatalf("SST is not in the span-capable engine set")
	}
	if !Supported(BP5, false, true) {
		t.Fatalf("BP5 without operators and enabled should be supported")
	}
}

func TestSpanRegistryNewAndUpdate(t *testing.T) {
	r := NewSpanRegistry()
	buf := []byte{1, 2, 3}
	span := r.New(func() []byte { return buf })
	if span.Index != 0 {
		t.Fatalf("expected first index 0, got %d", span.Index)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 live span, got %d", r.Len())
	}
	buf[0] = 9
	refetched, ok := r.Update(0)
	if !ok {
		t.Fatalf("expected index 0 to still be valid")
	}
	if refetched.Bytes()[0] != 9 {
		t.Fatalf("expected refetch to observe the mutated buffer")
	}
}

func TestSpanRegistryUpdateRejectsUnknownIndex(t *testing.T) {
	r := NewSpanRegistry()
	if _, ok := r.Update(42); ok {
		t.Fatalf("expected unknown index to be rejected")
	}
}

func TestSpanRegistryClearInvalidatesAllSpans(t *testing.T) {
	r := NewSpanRegistry()
	r.New(func() []byte { return nil })
	r.New(func() []byte { return nil })
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("expected 0 live spans after Clear, got %d", r.Len())
	}
	if _, ok := r.Update(0); ok {
		t.Fatalf("expected index 0 to be invalid after Clear")
	}
}
