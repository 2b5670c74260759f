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
	"testing"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/config"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/media"
	"github.com/openpmd/openpmd-go/writable"
)

// TestBackendRoundTripsThroughWriteAndReopen exercises the full
// CreateFile -> CreatePath -> CreateDataset -> WriteDataset -> Advance ->
// CloseFile -> OpenFile -> OpenDataset -> ReadDataset sequence against a
// real (temp-directory) medium.
func TestBackendRoundTripsThroughWriteAndReopen(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.ADIOS2{}, BP5)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	meshes := writable.NewChild(root, "meshes")
	if err := b.Execute(iotask.NewCreatePath(meshes, iotask.CreatePathParams{Path: "meshes"})); err != nil {
		t.Fatalf("CreatePath: %v", err)
	}

	e := writable.NewChild(meshes, "E")
	dataset := chunk.Dataset{Datatype: datatype.DOUBLE, Extent: chunk.Extent{4}}
	if err := b.Execute(iotask.NewCreateDataset(e, iotask.CreateDatasetParams{Name: "E", Dataset: dataset})); err != nil {
		t.Fatalf("CreateDataset: %v", err)
	}

	payload := []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 2}
	writeTask := iotask.NewWriteDataset(e, iotask.WriteDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{2}},
		Datatype:  datatype.DOUBLE,
		Data:      iotask.SharedData(payload),
	})
	if err := b.Execute(writeTask); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}

	advanceTask := iotask.NewAdvance(root, iotask.AdvanceParams{Mode: iotask.AdvanceEnd})
	if err := b.Execute(advanceTask); err != nil {
		t.Fatalf("Advance(END): %v", err)
	}

	if err := b.Execute(iotask.NewCloseFile(root)); err != nil {
		t.Fatalf("CloseFile: %v", err)
	}

	reopenFile := writable.NewFileHandle("run")
	reopenRoot := writable.NewRoot[Position](reopenFile)
	openTask := iotask.NewOpenFile(reopenRoot, iotask.OpenFileParams{Name: "run"})
	if err := b.Execute(openTask); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if openTask.Result.(iotask.OpenFileResult).Preference != iotask.ParseUpFront {
		t.Fatalf("expected ParseUpFront preference")
	}

	reopenMeshes := writable.NewChild(reopenRoot, "meshes")
	reopenE := writable.NewChild(reopenMeshes, "E")
	openDatasetTask := iotask.NewOpenDataset(reopenE, iotask.OpenDatasetParams{Name: "E"})
	if err := b.Execute(openDatasetTask); err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}
	result := openDatasetTask.Result.(iotask.OpenDatasetResult)
	if result.Datatype != datatype.DOUBLE {
		t.Fatalf("expected DOUBLE datatype, got %v", result.Datatype)
	}

	dest := make([]byte, len(payload))
	readTask := iotask.NewReadDataset(reopenE, iotask.ReadDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{2}},
		Datatype:  datatype.DOUBLE,
		Buffer:    dest,
	})
	if err := b.Execute(readTask); err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	for i, want := range payload {
		if dest[i] != want {
			t.Fatalf("byte %d: got %d want %d", i, dest[i], want)
		}
	}
}

func TestBackendWriteAttributeThenReadItBack(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.ADIOS2{}, BP5)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	writeAttr := iotask.NewWriteAttribute(root, iotask.WriteAttributeParams{
		Name:  "software",
		Value: iotask.AttributeValue{Datatype: datatype.STRING, Value: "openpmd-go"},
	})
	if err := b.Execute(writeAttr); err != nil {
		t.Fatalf("WriteAttribute: %v", err)
	}

	readAttr := iotask.NewReadAttribute(root, iotask.ReadAttributeParams{Name: "software"})
	if err := b.Execute(readAttr); err != nil {
		t.Fatalf("ReadAttribute: %v", err)
	}
	got := readAttr.Result.(iotask.ReadAttributeResult).Value
	if got.Datatype != datatype.STRING || got.Value.(string) != "openpmd-go" {
		t.Fatalf("got %+v", got)
	}
}

// TestBackendJoinedDimensionAssemblesGlobalShape reproduces four ranks
// each writing their own contribution along a joined dimension of /p/id
// (counts 5, 3, 7, 2): the assembled global shape must be their sum, and
// AVAILABLE_CHUNKS must report the offsets that tile it with no gaps.
func TestBackendJoinedDimensionAssemblesGlobalShape(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.ADIOS2{}, BP5)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	particles := writable.NewChild(root, "p")
	joinedDim := 0
	id := writable.NewChild(particles, "id")
	dataset := chunk.Dataset{Datatype: datatype.ULONGLONG, Extent: chunk.Extent{0}, JoinedDimension: &joinedDim}
	if err := b.Execute(iotask.NewCreateDataset(id, iotask.CreateDatasetParams{Name: "id", Dataset: dataset})); err != nil {
		t.Fatalf("CreateDataset: %v", err)
	}

	counts := []uint64{5, 3, 7, 2}
	for _, n := range counts {
		payload := make([]byte, n*8)
		writeTask := iotask.NewWriteDataset(id, iotask.WriteDatasetParams{
			Selection: chunk.Selection{Extent: chunk.Extent{n}},
			Datatype:  datatype.ULONGLONG,
			Data:      iotask.SharedData(payload),
		})
		if err := b.Execute(writeTask); err != nil {
			t.Fatalf("WriteDataset(%d): %v", n, err)
		}
	}

	openTask := iotask.NewOpenDataset(id, iotask.OpenDatasetParams{Name: "id"})
	if err := b.Execute(openTask); err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}
	shape := openTask.Result.(iotask.OpenDatasetResult).Extent
	if len(shape) != 1 || shape[0] != 17 {
		t.Fatalf("assembled shape = %v, want [17]", shape)
	}

	availTask := iotask.NewAvailableChunks(id)
	if err := b.Execute(availTask); err != nil {
		t.Fatalf("AvailableChunks: %v", err)
	}
	chunks := availTask.Result.(iotask.AvailableChunksResult).Chunks
	if !chunk.CoverageComplete(shape, chunks) {
		t.Fatalf("chunks %+v do not tile assembled shape %v", chunks, shape)
	}
	wantOffsets := []uint64{0, 5, 8, 15}
	for i, want := range wantOffsets {
		if chunks[i].Offset[0] != want {
			t.Fatalf("chunk %d offset = %d, want %d", i, chunks[i].Offset[0], want)
		}
	}
}

// TestBackendOperatorChainRoundTripsSameSessionAndAfterReopen covers both
// halves of the WRITE_DATASET -> READ_DATASET round trip through a
// non-empty operator chain: once before CLOSE_FILE (the bytes never
// actually left the process compressed) and once after a fresh OPEN_FILE
// (the bytes just came back off the medium still gzip-wrapped).
func TestBackendOperatorChainRoundTripsSameSessionAndAfterReopen(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.ADIOS2{}, BP5)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	e := writable.NewChild(root, "E")
	dataset := chunk.Dataset{
		Datatype:  datatype.DOUBLE,
		Extent:    chunk.Extent{2},
		Operators: []chunk.OperatorSpec{{Type: "gzip"}},
	}
	if err := b.Execute(iotask.NewCreateDataset(e, iotask.CreateDatasetParams{Name: "E", Dataset: dataset})); err != nil {
		t.Fatalf("CreateDataset: %v", err)
	}

	payload := []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 2}
	writeTask := iotask.NewWriteDataset(e, iotask.WriteDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{2}},
		Datatype:  datatype.DOUBLE,
		Data:      iotask.SharedData(payload),
	})
	if err := b.Execute(writeTask); err != nil {
		t.Fatalf("WriteDataset: %v", err)
	}

	sameSessionDest := make([]byte, len(payload))
	readTask := iotask.NewReadDataset(e, iotask.ReadDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{2}},
		Datatype:  datatype.DOUBLE,
		Buffer:    sameSessionDest,
	})
	if err := b.Execute(readTask); err != nil {
		t.Fatalf("same-session ReadDataset: %v", err)
	}
	if string(sameSessionDest) != string(payload) {
		t.Fatalf("same-session read = %v, want %v", sameSessionDest, payload)
	}

	if err := b.Execute(iotask.NewCloseFile(root)); err != nil {
		t.Fatalf("CloseFile: %v", err)
	}

	reopenFile := writable.NewFileHandle("run")
	reopenRoot := writable.NewRoot[Position](reopenFile)
	if err := b.Execute(iotask.NewOpenFile(reopenRoot, iotask.OpenFileParams{Name: "run"})); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	reopenE := writable.NewChild(reopenRoot, "E")
	if err := b.Execute(iotask.NewOpenDataset(reopenE, iotask.OpenDatasetParams{Name: "E"})); err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}

	reopenDest := make([]byte, len(payload))
	reopenRead := iotask.NewReadDataset(reopenE, iotask.ReadDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{2}},
		Datatype:  datatype.DOUBLE,
		Buffer:    reopenDest,
	})
	if err := b.Execute(reopenRead); err != nil {
		t.Fatalf("post-reopen ReadDataset: %v", err)
	}
	if string(reopenDest) != string(payload) {
		t.Fatalf("post-reopen read = %v, want %v", reopenDest, payload)
	}
}

func TestBackendDeleteFileRemovesAllBlobs(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.ADIOS2{}, BP5)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	step := writable.NewChild(root, "step")
	dataset := chunk.Dataset{Datatype: datatype.INT, Extent: chunk.Extent{1}}
	if err := b.Execute(iotask.NewCreateDataset(step, iotask.CreateDatasetParams{Name: "step", Dataset: dataset})); err != nil {
		t.Fatalf("CreateDataset: %v", err)
	}
	if err := b.Execute(iotask.NewCloseFile(root)); err != nil {
		t.Fatalf("CloseFile: %v", err)
	}
	if err := b.Execute(iotask.NewDeleteFile[Position](nil, iotask.DeleteFileParams{Name: "run"})); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	names, err := medium.List("run/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no blobs left after delete, got %v", names)
	}
}
