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

// Span is a possibly-relocating view into backend-owned memory returned
// by GET_BUFFER_VIEW (spec §4.3, §4.4.8, §8 property 6). Index identifies
// the view in the backend's per-file span registry and remains valid
// across flushes even though the underlying bytes may move; Bytes()
// re-resolves the current backing slice and must be called again after
// every flush rather than cached by the frontend.
type Span struct {
	Index uint64
	fetch func() []byte
}

// NewSpan wraps a backend-supplied resolver function. fetch is called
// fresh on every Bytes() call so relocations are always observed.
func NewSpan(index uint64, fetch func() []byte) Span {
	return Span{Index: index, fetch: fetch}
}

// Bytes returns the current backing slice. Call again after any flush;
// the previously returned slice may no longer refer to valid backend
// memory (spec §5: "any flush invalidates all outstanding span base
// pointers").
func (s Span) Bytes() []byte {
	if s.fetch == nil {
		return nil
	}
	return s.fetch()
}

// Valid reports whether this Span actually resolves to backend memory, as
// opposed to the zero value returned when a backend declines to manage
// the buffer (spec §4.3: "the frontend falls back to a copy").
func (s Span) Valid() bool {
	return s.fetch != nil
}
