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
package hdf5

import (
	"errors"
	"testing"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/config"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/ioerror"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/media"
	"github.com/openpmd/openpmd-go/writable"
)

// TestBackendRoundTripsThroughWriteAndReopen exercises CreateFile ->
// CreatePath -> CreateDataset -> WriteDataset -> CloseFile -> OpenFile ->
// OpenDataset -> ReadDataset against a real (temp-directory) medium.
func TestBackendRoundTripsThroughWriteAndReopen(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

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

	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}
	writeTask := iotask.NewWriteDataset(e, iotask.WriteDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{4}},
		Datatype:  datatype.DOUBLE,
		Data:      iotask.SharedData(payload),
	})
	if err := b.Execute(writeTask); err != nil {
		t.Fatalf("WriteDataset: %v", err)
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
		Selection: chunk.Selection{Offset: chunk.Offset{0}, Extent: chunk.Extent{4}},
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

	listTask := iotask.NewListPaths(reopenRoot)
	if err := b.Execute(listTask); err != nil {
		t.Fatalf("ListPaths: %v", err)
	}
	paths := listTask.Result.(iotask.ListPathsResult).Paths
	if len(paths) != 1 || paths[0] != "meshes" {
		t.Fatalf("expected [meshes], got %v", paths)
	}
}

func TestBackendWriteAttributeThenReadItBack(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

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

// TestReadMissingAttributeReportsReadErrorNotFound pins spec §4.5's
// deliberately-distinct failure shape: an H5Aopen failure on a missing
// attribute is a ReadError{Attribute, NotFound}, not ADIOS2's
// NoSuchAttribute.
func TestReadMissingAttributeReportsReadErrorNotFound(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	readAttr := iotask.NewReadAttribute(root, iotask.ReadAttributeParams{Name: "missing"})
	err := b.Execute(readAttr)
	var readErr *ioerror.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ioerror.ReadError, got %T: %v", err, err)
	}
	if readErr.Object != ioerror.Attribute || readErr.Reason != ioerror.NotFound {
		t.Fatalf("expected {Attribute, NotFound}, got %+v", readErr)
	}
	var wrongKind *ioerror.NoSuchAttribute
	if errors.As(err, &wrongKind) {
		t.Fatalf("expected NOT NoSuchAttribute (that is ADIOS2's kind), got %v", err)
	}
}

func TestBooleanAndComplexAttributesRoundTrip(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	if err := b.Execute(iotask.NewWriteAttribute(root, iotask.WriteAttributeParams{
		Name: "isConst", Value: iotask.AttributeValue{Datatype: datatype.BOOL, Value: true},
	})); err != nil {
		t.Fatalf("WriteAttribute(bool): %v", err)
	}
	boolRead := iotask.NewReadAttribute(root, iotask.ReadAttributeParams{Name: "isConst"})
	if err := b.Execute(boolRead); err != nil {
		t.Fatalf("ReadAttribute(bool): %v", err)
	}
	if v := boolRead.Result.(iotask.ReadAttributeResult).Value.Value.(bool); !v {
		t.Fatalf("expected true, got %v", v)
	}

	phase := complex128(complex(1.5, -2.5))
	if err := b.Execute(iotask.NewWriteAttribute(root, iotask.WriteAttributeParams{
		Name: "phase", Value: iotask.AttributeValue{Datatype: datatype.CDOUBLE, Value: phase},
	})); err != nil {
		t.Fatalf("WriteAttribute(complex): %v", err)
	}
	complexRead := iotask.NewReadAttribute(root, iotask.ReadAttributeParams{Name: "phase"})
	if err := b.Execute(complexRead); err != nil {
		t.Fatalf("ReadAttribute(complex): %v", err)
	}
	if v := complexRead.Result.(iotask.ReadAttributeResult).Value.Value.(complex128); v != phase {
		t.Fatalf("expected %v, got %v", phase, v)
	}
}

func TestGetBufferViewAlwaysUnsupported(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	task := iotask.NewGetBufferView(root, iotask.GetBufferViewParams{
		Selection: chunk.Selection{Extent: chunk.Extent{1}}, Datatype: datatype.DOUBLE,
	})
	if err := b.Execute(task); err != nil {
		t.Fatalf("GetBufferView: %v", err)
	}
	if task.Result.(iotask.GetBufferViewResult).Supported {
		t.Fatalf("HDF5 backend must never support buffer views")
	}
}

func TestDeletePathRemovesNestedDatasetsAndAttributes(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	particles := writable.NewChild(root, "particles")
	if err := b.Execute(iotask.NewCreatePath(particles, iotask.CreatePathParams{Path: "particles"})); err != nil {
		t.Fatalf("CreatePath: %v", err)
	}
	weight := writable.NewChild(particles, "weighting")
	ds := chunk.Dataset{Datatype: datatype.FLOAT, Extent: chunk.Extent{8}}
	if err := b.Execute(iotask.NewCreateDataset(weight, iotask.CreateDatasetParams{Name: "weighting", Dataset: ds})); err != nil {
		t.Fatalf("CreateDataset: %v", err)
	}
	if err := b.Execute(iotask.NewWriteAttribute(particles, iotask.WriteAttributeParams{
		Name: "charge", Value: iotask.AttributeValue{Datatype: datatype.DOUBLE, Value: 1.0},
	})); err != nil {
		t.Fatalf("WriteAttribute: %v", err)
	}

	if err := b.Execute(iotask.NewDeletePath(particles, iotask.DeletePathParams{Path: "particles"})); err != nil {
		t.Fatalf("DeletePath: %v", err)
	}

	listTask := iotask.NewListPaths(root)
	if err := b.Execute(listTask); err != nil {
		t.Fatalf("ListPaths: %v", err)
	}
	if paths := listTask.Result.(iotask.ListPathsResult).Paths; len(paths) != 0 {
		t.Fatalf("expected no paths left, got %v", paths)
	}
}

func TestDeleteFileRemovesAllBlobs(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

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

func TestExtendDatasetRejectsNonResizable(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium, config.HDF5{}, false)

	file := writable.NewFileHandle("run")
	root := writable.NewRoot[Position](file)
	root.SetFilePosition(Position{})
	if err := b.Execute(iotask.NewCreateFile(root, iotask.CreateFileParams{Name: "run"})); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	ds := writable.NewChild(root, "fixed")
	dataset := chunk.Dataset{Datatype: datatype.INT, Extent: chunk.Extent{4}}
	if err := b.Execute(iotask.NewCreateDataset(ds, iotask.CreateDatasetParams{Name: "fixed", Dataset: dataset})); err != nil {
		t.Fatalf("CreateDataset: %v", err)
	}
	err := b.Execute(iotask.NewExtendDataset(ds, iotask.ExtendDatasetParams{NewExtent: chunk.Extent{8}}))
	var wrongUsage *ioerror.WrongAPIUsage
	if !errors.As(err, &wrongUsage) {
		t.Fatalf("expected *ioerror.WrongAPIUsage, got %T: %v", err, err)
	}
}
