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
package iotask

// DataSource carries the payload of a WriteDataset/WriteAttribute task as
// one of two ownership variants (spec §3, §4.4.5, §9):
//
//   - Shared: the caller retains ownership and must keep the bytes alive
//     and unmodified until the task is known to have been consumed (a
//     shared_ptr-like borrow in the original source).
//   - Unique: ownership transfers to the backend, which queues it in its
//     own unique-pointer buffer and is free to defer draining it until
//     just before the operation that actually needs the bytes on the
//     wire (EndStep or file close). This is what
//     lets span-based and BufferedPut-style backends avoid an eager copy.
//
// Exactly one of Shared/Unique is set; IsUnique reports which.
type DataSource struct {
	Shared []byte
	Unique []byte
}

// SharedData wraps caller-owned bytes the backend must not retain past the
// task's consumption.
func SharedData(b []byte) DataSource { return DataSource{Shared: b} }

// UniqueData wraps bytes whose ownership transfers to the backend.
func UniqueData(b []byte) DataSource { return DataSource{Unique: b} }

// IsUnique reports whether this DataSource transferred ownership.
func (d DataSource) IsUnique() bool { return d.Unique != nil }

// Bytes returns the payload regardless of which variant holds it.
func (d DataSource) Bytes() []byte {
	if d.Unique != nil {
		return d.Unique
	}
	return d.Shared
}
