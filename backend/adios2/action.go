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

// BufferedAction is one queued put/get, wrapped per spec §4.4.5. run
// performs the actual ADIOS2-shaped enqueue (our in-process equivalent:
// recording into the file's pending variable/attribute tables) against f.
type BufferedAction interface {
	run(f *File) error
}

// BufferedPut stages a WRITE_DATASET whose bytes are already stable
// (iotask.DataSource.Shared): run enqueues a copy immediately.
type BufferedPut struct {
	Variable string
	Data     []byte
}

func (a BufferedPut) run(f *File) error {
	f.pendingWrites[a.Variable] = append([]byte(nil), a.Data...)
	return nil
}

// BufferedUniquePtrPut stages a WRITE_DATASET whose bytes are uniquely
// owned (iotask.DataSource.Unique): run defers copying the buffer itself
// until flush drains the unique-pointer queue, avoiding a copy (spec
// §4.4.5 point 2: "so the buffer is shown to ADIOS2 as late as
// possible").
type BufferedUniquePtrPut struct {
	Variable string
	Data     []byte // owned, not cloned
}

func (a BufferedUniquePtrPut) run(f *File) error {
	f.uniquePutQueue = append(f.uniquePutQueue, a)
	return nil
}

// BufferedGet stages a READ_DATASET: run copies the currently stored
// bytes into the caller-owned destination buffer.
type BufferedGet struct {
	Variable string
	Dest     []byte
}

func (a BufferedGet) run(f *File) error {
	src := f.variables[a.Variable]
	copy(a.Dest, src)
	return nil
}

// BufferedAttributeWrite stages a WRITE_ATTRIBUTE.
type BufferedAttributeWrite struct {
	Name  string
	Value Params
	Raw   []byte
}

func (a BufferedAttributeWrite) run(f *File) error {
	f.attributes[a.Name] = a.Raw
	f.attributeParams[a.Name] = a.Value
	return nil
}

// drainUniquePutQueue moves every queued unique-pointer put's bytes into
// the file's variable store, then empties the queue (spec §4.4.5 point
// 2 and point 4's "if draining late puts, the unique-pointer queue" is
// also cleared).
func drainUniquePutQueue(f *File) {
	for _, put := range f.uniquePutQueue {
		f.pendingWrites[put.Variable] = put.Data
	}
	f.uniquePutQueue = nil
}
