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
	"fmt"

	"github.com/openpmd/openpmd-go/iotask"
)

// StreamStatus is the per-file stream-status state machine (spec §4.4.3).
type StreamStatus int

const (
	Undecided StreamStatus = iota
	DuringStep
	OutsideOfStep
	ReadWithoutStream
	StreamOver
)

func (s StreamStatus) String() string {
	switch s {
	case Undecided:
		return "Undecided"
	case DuringStep:
		return "DuringStep"
	case OutsideOfStep:
		return "OutsideOfStep"
	case ReadWithoutStream:
		return "ReadWithoutStream"
	default:
		return "StreamOver"
	}
}

// perStepEngines require per-step parsing rather than up-front random
// access (spec §4.4.3).
var perStepEngines = map[Engine]bool{
	SST: true, SSC: true, Staging: true, Inline: true, FileStream: true,
}

// InitialStatus computes a file's starting StreamStatus from its engine,
// access mode and (for per-step read engines) whether
// __openPMD_internal/useSteps was found set on open.
func InitialStatus(engine Engine, mode Mode, useSteps bool) StreamStatus {
	if mode == ModeWrite || mode == ModeAppend {
		return OutsideOfStep
	}
	if perStepEngines[engine] || (engine == BP5 && mode == ModeRead) {
		if useSteps {
			return OutsideOfStep
		}
		return Undecided
	}
	// bp3, hdf5, and bp4/bp5/file in READ_ONLY/READ_WRITE.
	return ReadWithoutStream
}

// StreamMachine drives one open file's stream-status transitions.
type StreamMachine struct {
	Status  StreamStatus
	Step    uint64
	Engine  Engine
	Mode    Mode
	onClear func() // clears uncommitted attributes + span registry
}

// NewStreamMachine constructs a machine in its InitialStatus. onClear is
// invoked on every ENDSTEP to drop the uncommitted-attribute set and span
// registry (spec §4.4.3); it may be nil for tests that don't care.
func NewStreamMachine(engine Engine, mode Mode, useSteps bool, onClear func()) *StreamMachine {
	return &StreamMachine{
		Status: InitialStatus(engine, mode, useSteps),
		Engine: engine, Mode: mode, onClear: onClear,
	}
}

// Advance executes one advance() call (spec §4.4.3). endOfStream reports
// whether a BEGINSTEP found no further steps available (read side); it is
// ignored for ENDSTEP.
func (m *StreamMachine) Advance(advanceMode iotask.AdvanceMode, endOfStream bool) (iotask.AdvanceStatus, error) {
	switch advanceMode {
	case iotask.AdvanceBegin:
		switch m.Status {
		case OutsideOfStep, Undecided:
			if endOfStream {
				m.Status = StreamOver
				return iotask.AdvanceOver, nil
			}
			m.Status = DuringStep
			return iotask.AdvanceOK, nil
		case ReadWithoutStream:
			return iotask.AdvanceRandomAccess, nil
		default:
			return 0, fmt.Errorf("adios2: BEGINSTEP invalid in state %s", m.Status)
		}
	case iotask.AdvanceEnd:
		if m.Status != DuringStep {
			return 0, fmt.Errorf("adios2: ENDSTEP invalid in state %s", m.Status)
		}
		m.Status = OutsideOfStep
		m.Step++
		if m.onClear != nil {
			m.onClear()
		}
		return iotask.AdvanceOK, nil
	default:
		return 0, fmt.Errorf("adios2: unknown advance mode %v", advanceMode)
	}
}

// NeedsImplicitStep reports whether a flush in the current state must
// first implicitly open a step (write side) before engine I/O can
// proceed, per spec §4.4.3's "any flush in OutsideOfStep that needs
// engine I/O first implicitly opens a step."
func (m *StreamMachine) NeedsImplicitStep() bool {
	return m.Status == OutsideOfStep && (m.Mode == ModeWrite || m.Mode == ModeAppend)
}
