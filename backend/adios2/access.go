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
	"strings"

	"github.com/openpmd/openpmd-go/iotask"
)

// Mode is ADIOS2's own IO mode, distinct from iotask.AccessMode so this
// package's translation table stays explicit (spec §4.4.2).
type Mode int

const (
	ModeWrite Mode = iota
	ModeAppend
	ModeRead
	ModeReadRandomAccess
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "Write"
	case ModeAppend:
		return "Append"
	case ModeRead:
		return "Read"
	default:
		return "ReadRandomAccess"
	}
}

// ResolveAccessMode maps iotask.AccessMode to ADIOS2 Mode (spec §4.4.2).
// targetExists reports whether the file already exists, needed to
// resolve READ_WRITE and the Windows APPEND quirk. randomAccessAvailable
// reports whether the engine supports ReadRandomAccess at all; when it
// doesn't, READ_ONLY/READ_RANDOM_ACCESS fall back to plain Read. override,
// if non-empty, is adios2.engine.access_mode from user config and wins
// outright.
func ResolveAccessMode(access iotask.AccessMode, targetExists bool, randomAccessAvailable bool, windows bool, override string) Mode {
	if m, ok := parseModeOverride(override); ok {
		return m
	}
	switch access {
	case iotask.Create:
		return ModeWrite
	case iotask.Append:
		if windows && !targetExists {
			return ModeWrite
		}
		return ModeAppend
	case iotask.ReadLinear:
		return ModeRead
	case iotask.ReadOnly, iotask.ReadRandomAccess:
		if randomAccessAvailable {
			return ModeReadRandomAccess
		}
		return ModeRead
	case iotask.ReadWrite:
		if targetExists {
			if randomAccessAvailable {
				return ModeReadRandomAccess
			}
			return ModeRead
		}
		return ModeWrite
	default:
		return ModeRead
	}
}

func parseModeOverride(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "write":
		return ModeWrite, true
	case "append":
		return ModeAppend, true
	case "read":
		return ModeRead, true
	case "readrandomaccess":
		return ModeReadRandomAccess, true
	}
	return 0, false
}
