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

// Package adios2 implements the ADIOS2 backend adapter (spec §4.4, C4):
// engine/extension resolution, access-mode resolution, the per-file
// stream-status state machine, group table encoding, the deferred-action
// protocol, attribute layout, availability caches and the span protocol.
//
// There is no real Go binding for the ADIOS2 C++ library anywhere in the
// retrieved example pack (ADIOS2 itself ships only C++/Python/Fortran
// bindings), so this adapter does not wrap a cgo library the way the
// original does; instead it reimplements ADIOS2's on-disk protocol
// directly against package media/operator, the same way the teacher's
// own storage package is itself a from-scratch persistence engine rather
// than a wrapper around an existing database.
package adios2

import (
	"fmt"
	"strings"
)

// Engine is the closed set of ADIOS2 engines (spec §4.4.1).
type Engine int

const (
	BP3 Engine = iota
	BP4
	BP5
	File
	FileStream
	HDF5
	SST
	SSC
	NullCore
	Inline
	Staging
)

func (e Engine) String() string {
	switch e {
	case BP3:
		return "bp3"
	case BP4:
		return "bp4"
	case BP5:
		return "bp5"
	case File:
		return "file"
	case FileStream:
		return "filestream"
	case HDF5:
		return "hdf5"
	case SST:
		return "sst"
	case SSC:
		return "ssc"
	case NullCore:
		return "nullcore"
	case Inline:
		return "inline"
	case Staging:
		return "staging"
	default:
		return "unknown"
	}
}

// ParseEngine resolves a user-facing engine name to an Engine, accepting
// any string as a "pretend" unknown engine when pretendEngine is true
// (spec §4.4.1's opt-in for testing unknown engines).
func ParseEngine(name string, pretendEngine bool) (Engine, error) {
	switch strings.ToLower(name) {
	case "bp3":
		return BP3, nil
	case "bp4":
		return BP4, nil
	case "bp5":
		return BP5, nil
	case "file":
		return File, nil
	case "filestream":
		return FileStream, nil
	case "hdf5":
		return HDF5, nil
	case "sst":
		return SST, nil
	case "ssc":
		return SSC, nil
	case "nullcore":
		return NullCore, nil
	case "inline":
		return Inline, nil
	case "staging":
		return Staging, nil
	}
	if pretendEngine {
		return BP5, nil // treated as BP5-shaped for everything downstream
	}
	return 0, fmt.Errorf("adios2: unrecognized engine %q", name)
}

// defaultExtension is ADIOS2's own default on-disk extension per engine,
// standing in for ".%E" in user-supplied extension strings. The real
// ADIOS2 build picks .bp4 or .bp5 depending on which BP engine generation
// it was compiled against; this adapter always resolves to .bp5 since it
// implements the BP5-shaped on-disk layout.
var defaultExtension = map[Engine]string{
	BP3: "bp", BP4: "bp4", BP5: "bp5", File: "bp5", FileStream: "bp5",
	HDF5: "h5", SST: "sst", SSC: "ssc", NullCore: "", Inline: "", Staging: "sst",
}

// ResolveExtension maps (engine, user-supplied extension) to the actual
// on-disk extension (spec §4.4.1). userExt of ".%E" (or "") requests the
// engine's default. Any other value is honored verbatim; warning is
// non-empty when userExt names an extension the engine wouldn't have
// picked itself, mirroring the adapter's "warns on mismatches but
// respects user-supplied extensions" behavior.
func ResolveExtension(engine Engine, userExt string) (ext string, warning string) {
	def := defaultExtension[engine]
	if userExt == "" || userExt == ".%E" {
		return def, ""
	}
	trimmed := strings.TrimPrefix(userExt, ".")
	if trimmed != def && def != "" {
		return trimmed, fmt.Sprintf("adios2: extension %q does not match engine %s's default %q", userExt, engine, def)
	}
	return trimmed, ""
}
