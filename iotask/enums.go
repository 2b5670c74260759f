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

// AccessMode is the mode a Series/file was opened in (spec §4.2). It gates
// which task kinds are admissible: the handler rejects task kinds that
// mutate backend state (e.g. WriteDataset) under the read-only modes; no
// mode rejects ReadDataset.
type AccessMode uint8

const (
	ReadOnly AccessMode = iota
	ReadRandomAccess
	ReadLinear
	ReadWrite
	Create
	Append
)

func (m AccessMode) String() string {
	switch m {
	case ReadOnly:
		return "READ_ONLY"
	case ReadRandomAccess:
		return "READ_RANDOM_ACCESS"
	case ReadLinear:
		return "READ_LINEAR"
	case ReadWrite:
		return "READ_WRITE"
	case Create:
		return "CREATE"
	case Append:
		return "APPEND"
	default:
		return "UNKNOWN_ACCESS_MODE"
	}
}

// IsReadOnly reports whether m forbids task kinds that mutate backend state.
func (m AccessMode) IsReadOnly() bool {
	return m == ReadOnly || m == ReadRandomAccess || m == ReadLinear
}

// FlushLevel controls how much of the pending queue a Flush call drains
// (spec §4.2, §9): a skeleton-only flush realizes file/path/dataset
// creation without touching data, an internal flush is triggered by the
// frontend itself (e.g. before a destructive resize), a user flush is the
// explicit Series::flush() call.
type FlushLevel uint8

const (
	SkeletonOnly FlushLevel = iota
	CreateOrOpenFiles
	InternalFlush
	UserFlush
)

func (l FlushLevel) String() string {
	switch l {
	case SkeletonOnly:
		return "SkeletonOnly"
	case CreateOrOpenFiles:
		return "CreateOrOpenFiles"
	case InternalFlush:
		return "InternalFlush"
	case UserFlush:
		return "UserFlush"
	default:
		return "UnknownFlushLevel"
	}
}

// FlushTarget names what a flush is asked to leave durable (spec §6.3):
// FlushBuffer, FlushDisk, or FlushNewStep. handler.Flush does not read
// it and no backend receives it, so no target changes what a flush does;
// in particular FlushNewStep does not end the current step.
type FlushTarget uint8

const (
	FlushBuffer FlushTarget = iota
	FlushDisk
	FlushNewStep
)

// ParsePreference controls when OPEN_FILE discovers a step-based file's
// groups (spec §4.4.3): UpFront parses the whole group table immediately,
// PerStep defers discovery to each ADVANCE.
type ParsePreference uint8

const (
	ParseUpFront ParsePreference = iota
	ParsePerStep
)

// AdvanceMode selects which half of a step transition ADVANCE performs.
type AdvanceMode uint8

const (
	AdvanceBegin AdvanceMode = iota
	AdvanceEnd
)

// AdvanceStatus is the backend's report of the stream state after an
// ADVANCE (spec §4.4.3's stream status state machine).
type AdvanceStatus uint8

const (
	AdvanceOK AdvanceStatus = iota
	AdvanceOver
	AdvanceRandomAccess
)
