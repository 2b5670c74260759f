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

import (
	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/datatype"
)

// Per-Kind parameter and result payloads (spec §6.1's operation table).
// Task.Params holds exactly one of these, matching Task.Kind; Task.Result,
// once the backend has drained the task, holds the matching *Result type
// for operations that report something back.

type CreateFileParams struct {
	Name string
}

type CheckFileParams struct {
	Name string
}

type CheckFileResult struct {
	Exists bool
}

type OpenFileParams struct {
	Name string
}

type OpenFileResult struct {
	Preference ParsePreference
}

type CloseFileParams struct{}

type DeleteFileParams struct {
	Name string
}

type CreatePathParams struct {
	Path string
}

type OpenPathParams struct {
	Path string
}

type ClosePathParams struct{}

type DeletePathParams struct {
	Path string
}

type CreateDatasetParams struct {
	Name    string
	Dataset chunk.Dataset
}

type ExtendDatasetParams struct {
	NewExtent chunk.Extent
}

type OpenDatasetParams struct {
	Name string
}

type OpenDatasetResult struct {
	Datatype datatype.Datatype
	Extent   chunk.Extent
}

type DeleteDatasetParams struct{}

type WriteDatasetParams struct {
	Selection chunk.Selection
	Datatype  datatype.Datatype
	Data      DataSource
}

type ReadDatasetParams struct {
	Selection chunk.Selection
	Datatype  datatype.Datatype
	// Buffer is caller-owned destination memory; the backend fills it in
	// place rather than allocating, mirroring the original's raw-pointer
	// read-into-buffer calling convention.
	Buffer []byte
}

type GetBufferViewParams struct {
	Selection chunk.Selection
	Datatype  datatype.Datatype
	// Update requests the backend refresh an existing ViewIndex's span
	// rather than create a new one (spec §4.4.8's span re-fetch path).
	Update    bool
	ViewIndex *uint64
}

type GetBufferViewResult struct {
	Span Span
	// Supported is false when the backend declines to manage the buffer
	// (spec §4.3: "the frontend falls back to a copy"); Span is then the
	// zero value and must not be used.
	Supported bool
}

// Span re-exports chunk.Span under the name the task table uses, so
// callers reading iotask don't also need to import chunk for this one type.
type Span = chunk.Span

type WriteAttributeParams struct {
	Name  string
	Value AttributeValue
	// ChangesOverSteps marks an attribute that is expected to take a new
	// value at each step (spec §4.4.4's per-step attribute handling).
	ChangesOverSteps bool
}

type ReadAttributeParams struct {
	Name string
}

type ReadAttributeResult struct {
	Value AttributeValue
}

type DeleteAttributeParams struct {
	Name string
}

type ListPathsResult struct {
	Paths []string
}

type ListDatasetsResult struct {
	Datasets []string
}

type ListAttributesResult struct {
	Attributes []string
}

type AdvanceParams struct {
	Mode AdvanceMode
}

type AdvanceResult struct {
	Status AdvanceStatus
}

type AvailableChunksResult struct {
	Chunks []chunk.WrittenChunkInfo
}

type TouchParams struct{}

type DeregisterParams struct{}
