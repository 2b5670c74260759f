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
	"encoding/json"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/media"
	"github.com/openpmd/openpmd-go/operator"
)

// File holds one open file's entire ADIOS2-shaped state: the stream
// machine, group table, availability caches, span registry, and the
// in-process stand-in for the engine's internal variable/attribute
// stores (spec §4.4).
type File struct {
	Name       string
	medium     media.Medium
	mediumName string

	stream *StreamMachine
	groups *GroupTable
	spans  *SpanRegistry

	availAttributes *AvailabilityCache
	availVariables  *AvailabilityCache

	// variables holds each variable's last-synchronized (EndStep/close)
	// raw bytes; pendingWrites holds bytes written this step/flush not
	// yet synchronized (spec §4.4.5's "enqueue into ADIOS2 via Put/Get").
	variables     map[string][]byte
	pendingWrites map[string][]byte
	operators     map[string]operator.Chain
	shapes        map[string]chunk.Extent
	datatypes     map[string]string
	chunks        map[string][]chunk.WrittenChunkInfo
	// joinedDim records, for a variable created with a joined dimension
	// (chunk.Dataset.JoinedDimension), the dimension index whose global
	// extent is reassembled from every writer's contribution on each
	// WRITE_DATASET (spec §4.3's joined-dimension assembly).
	joinedDim map[string]int

	attributes      map[string][]byte
	attributeParams map[string]Params
	// uncommittedAttributes were written this step and not yet visible
	// to readers in streaming mode (spec §4.4.9's "modification attempts
	// on a committed (previous-step) attribute").
	uncommittedAttributes map[string]bool

	uniquePutQueue []BufferedUniquePtrPut

	layout          AttributeLayout
	useGroupTable   bool
	spanBasedPut    bool
	modifiableAttrs bool
}

// NewFile constructs File state for one just-created/opened file.
func NewFile(name string, medium media.Medium, mediumName string, engine Engine, mode Mode, useSteps bool, useGroupTable, spanBasedPut, modifiableAttrs, adios29 bool) *File {
	f := &File{
		Name: name, medium: medium, mediumName: mediumName,
		variables: make(map[string][]byte), pendingWrites: make(map[string][]byte),
		operators: make(map[string]operator.Chain), shapes: make(map[string]chunk.Extent),
		datatypes: make(map[string]string), chunks: make(map[string][]chunk.WrittenChunkInfo),
		joinedDim: make(map[string]int),
		attributes: make(map[string][]byte), attributeParams: make(map[string]Params),
		uncommittedAttributes: make(map[string]bool),
		useGroupTable:         useGroupTable, spanBasedPut: spanBasedPut, modifiableAttrs: modifiableAttrs,
		layout: ByADIOSVariables,
	}
	f.stream = NewStreamMachine(engine, mode, useSteps, f.onClear)
	f.groups = NewGroupTable(adios29, modifiableAttrs)
	f.spans = NewSpanRegistry()
	f.availAttributes = NewAvailabilityCache(func() map[string]Params { return f.attributeParams })
	f.availVariables = NewAvailabilityCache(func() map[string]Params {
		out := make(map[string]Params, len(f.datatypes))
		for name, dt := range f.datatypes {
			out[name] = Params{"datatype": dt}
		}
		return out
	})
	if !useGroupTable {
		f.layout = ByADIOSAttributes
	}
	return f
}

// onClear runs on every ENDSTEP: drains late unique-pointer puts, clears
// the uncommitted-attribute set and invalidates the span registry (spec
// §4.4.3, §4.4.5 point 4).
func (f *File) onClear() {
	drainUniquePutQueue(f)
	f.commitPendingWrites()
	f.uncommittedAttributes = make(map[string]bool)
	f.spans.Clear()
	f.availAttributes.Invalidate()
	f.availVariables.Invalidate()
}

// commitPendingWrites moves pendingWrites into variables, as ADIOS2's
// PerformPuts/PerformDataWrite would (spec §4.4.5 step 3).
func (f *File) commitPendingWrites() {
	for name, data := range f.pendingWrites {
		f.variables[name] = data
	}
	f.pendingWrites = make(map[string][]byte)
}

// variableMeta is the sidecar persisted alongside each variable's raw
// bytes so a later OPEN_FILE can reconstruct shape/datatype/operator
// chain without a real ADIOS2 metadata parse.
type variableMeta struct {
	Datatype  string               `json:"datatype"`
	Shape     []uint64             `json:"shape"`
	Operators []chunk.OperatorSpec `json:"operators,omitempty"`
}

// attributeMeta wraps a persisted attribute's already-marshaled value
// with the datatype tag needed to decode it back, since attributeParams
// (the in-memory datatype side table) is not itself persisted.
type attributeMeta struct {
	Datatype string          `json:"datatype"`
	Value    json.RawMessage `json:"value"`
}

// persist writes every committed variable's (operator-wrapped) bytes,
// its shape/datatype sidecar, and every attribute to the backing medium,
// one blob per variable/attribute named "<file>/<variable>",
// "<file>/meta/<variable>.json", "<file>/attr/<name>". Called at
// CLOSE_FILE, matching spec §5's ordering guarantee: "writes become
// visible to readers only at EndStep (streaming) or at close (persistent
// engines without steps)."
func (f *File) persist() error {
	for name, raw := range f.variables {
		chain := f.operators[name]
		wrapped, err := chain.Apply(raw)
		if err != nil {
			return err
		}
		if err := writeBlob(f.medium, f.mediumName+"/"+name, wrapped); err != nil {
			return err
		}
		meta, err := json.Marshal(variableMeta{
			Datatype:  f.datatypes[name],
			Shape:     f.shapes[name],
			Operators: []chunk.OperatorSpec(f.operators[name]),
		})
		if err != nil {
			return err
		}
		if err := writeBlob(f.medium, f.mediumName+"/meta/"+name+".json", meta); err != nil {
			return err
		}
	}
	for name, raw := range f.attributes {
		meta, err := json.Marshal(attributeMeta{
			Datatype: f.attributeParams[name]["datatype"],
			Value:    json.RawMessage(raw),
		})
		if err != nil {
			return err
		}
		if err := writeBlob(f.medium, f.mediumName+"/attr/"+name, meta); err != nil {
			return err
		}
	}
	return nil
}

func writeBlob(medium media.Medium, name string, data []byte) error {
	w, err := medium.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
