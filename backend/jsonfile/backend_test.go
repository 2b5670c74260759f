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
package jsonfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/ioerror"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/media"
	"github.com/openpmd/openpmd-go/writable"
)

func le64(values ...float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func newRootFor(t *testing.T, b *Backend, name string) *writable.Writable[Position] {
	t.Helper()
	handle := writable.NewFileHandle(name)
	root := writable.NewRoot[Position](handle)
	task := &iotask.Task[Position]{Kind: iotask.CreateFile, Target: root, Params: iotask.CreateFileParams{Name: name}}
	if err := b.Execute(task); err != nil {
		t.Fatalf("create file: %v", err)
	}
	return root
}

func TestBackendRoundTripsThroughWriteAndReopen(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium)
	root := newRootFor(t, b, "run")

	meshes := writable.NewChild(root, "meshes")
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.CreatePath, Target: meshes}); err != nil {
		t.Fatalf("create path: %v", err)
	}

	e := writable.NewChild(meshes, "E")
	ds := chunk.Dataset{Datatype: datatype.DOUBLE, Extent: chunk.Extent{2, 2}}
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.CreateDataset, Target: e, Params: iotask.CreateDatasetParams{Dataset: ds}}); err != nil {
		t.Fatalf("create dataset: %v", err)
	}

	data := le64(1, 2, 3, 4)
	writeParams := iotask.WriteDatasetParams{
		Selection: chunk.Selection{Offset: chunk.Offset{0, 0}, Extent: chunk.Extent{2, 2}},
		Datatype:  datatype.DOUBLE,
		Data:      iotask.DataSource{Shared: data},
	}
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.WriteDataset, Target: e, Params: writeParams}); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.CloseFile, Target: root}); err != nil {
		t.Fatalf("close file: %v", err)
	}

	reopenRoot := newOpenedFile(t, b, "run")
	reopenMeshes := writable.NewChild(reopenRoot, "meshes")
	reopenE := writable.NewChild(reopenMeshes, "E")
	openTask := &iotask.Task[Position]{Kind: iotask.OpenDataset, Target: reopenE, Params: iotask.OpenDatasetParams{Name: "E"}}
	if err := b.Execute(openTask); err != nil {
		t.Fatalf("reopen dataset: %v", err)
	}
	result := openTask.Result.(iotask.OpenDatasetResult)
	if result.Datatype != datatype.DOUBLE || len(result.Extent) != 2 || result.Extent[0] != 2 {
		t.Fatalf("unexpected reopened descriptor: %+v", result)
	}

	buf := make([]byte, len(data))
	readTask := &iotask.Task[Position]{
		Kind:   iotask.ReadDataset,
		Target: reopenE,
		Params: iotask.ReadDatasetParams{Selection: chunk.Selection{Offset: chunk.Offset{0, 0}, Extent: chunk.Extent{2, 2}}, Buffer: buf},
	}
	if err := b.Execute(readTask); err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	if !bytes.Equal(buf, data) {
		t.Fatalf("round trip mismatch: got %v want %v", buf, data)
	}

	listTask := &iotask.Task[Position]{Kind: iotask.ListPaths, Target: reopenRoot}
	if err := b.Execute(listTask); err != nil {
		t.Fatalf("list paths: %v", err)
	}
	paths := listTask.Result.(iotask.ListPathsResult).Paths
	if len(paths) != 1 || paths[0] != "meshes" {
		t.Fatalf("expected [meshes], got %v", paths)
	}
}

func newOpenedFile(t *testing.T, b *Backend, name string) *writable.Writable[Position] {
	t.Helper()
	handle := writable.NewFileHandle(name)
	root := writable.NewRoot[Position](handle)
	task := &iotask.Task[Position]{Kind: iotask.OpenFile, Target: root, Params: iotask.OpenFileParams{Name: name}}
	if err := b.Execute(task); err != nil {
		t.Fatalf("open file: %v", err)
	}
	return root
}

func TestBackendWriteAttributeThenReadItBack(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium)
	root := newRootFor(t, b, "run")

	value := iotask.AttributeValue{Datatype: datatype.DOUBLE, Value: float64(3.5)}
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.WriteAttribute, Target: root, Params: iotask.WriteAttributeParams{Name: "unitSI", Value: value}}); err != nil {
		t.Fatalf("write attribute: %v", err)
	}

	readTask := &iotask.Task[Position]{Kind: iotask.ReadAttribute, Target: root, Params: iotask.ReadAttributeParams{Name: "unitSI"}}
	if err := b.Execute(readTask); err != nil {
		t.Fatalf("read attribute: %v", err)
	}
	got := readTask.Result.(iotask.ReadAttributeResult).Value
	if got.Value.(float64) != 3.5 {
		t.Fatalf("got %v", got.Value)
	}
}

func TestReadMissingAttributeReportsReadErrorNotFound(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium)
	root := newRootFor(t, b, "run")

	readTask := &iotask.Task[Position]{Kind: iotask.ReadAttribute, Target: root, Params: iotask.ReadAttributeParams{Name: "missing"}}
	err := b.Execute(readTask)
	var readErr *ioerror.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ioerror.ReadError, got %v (%T)", err, err)
	}
	if readErr.Object != ioerror.Attribute || readErr.Reason != ioerror.NotFound {
		t.Fatalf("unexpected ReadError: %+v", readErr)
	}
}

func TestGetBufferViewAlwaysUnsupported(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium)
	root := newRootFor(t, b, "run")

	task := &iotask.Task[Position]{Kind: iotask.GetBufferView, Target: root}
	if err := b.Execute(task); err != nil {
		t.Fatalf("get buffer view: %v", err)
	}
	if task.Result.(iotask.GetBufferViewResult).Supported {
		t.Fatalf("expected Supported=false for a synchronous backend")
	}
}

func TestDeletePathRemovesNestedDatasetsAndAttributes(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium)
	root := newRootFor(t, b, "run")

	particles := writable.NewChild(root, "particles")
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.CreatePath, Target: particles}); err != nil {
		t.Fatalf("create path: %v", err)
	}
	pos := writable.NewChild(particles, "position")
	ds := chunk.Dataset{Datatype: datatype.DOUBLE, Extent: chunk.Extent{4}}
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.CreateDataset, Target: pos, Params: iotask.CreateDatasetParams{Dataset: ds}}); err != nil {
		t.Fatalf("create dataset: %v", err)
	}

	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.DeletePath, Target: particles}); err != nil {
		t.Fatalf("delete path: %v", err)
	}

	f := b.files["run"]
	if _, ok := f.sets["particles/position"]; ok {
		t.Fatalf("expected nested dataset to be removed")
	}
	if f.groups["particles"] {
		t.Fatalf("expected group to be removed")
	}
}

func TestExtendDatasetRejectsNonResizable(t *testing.T) {
	medium := media.NewLocal(t.TempDir())
	b := New(medium)
	root := newRootFor(t, b, "run")

	e := writable.NewChild(root, "E")
	ds := chunk.Dataset{Datatype: datatype.DOUBLE, Extent: chunk.Extent{2}, Resizable: false}
	if err := b.Execute(&iotask.Task[Position]{Kind: iotask.CreateDataset, Target: e, Params: iotask.CreateDatasetParams{Dataset: ds}}); err != nil {
		t.Fatalf("create dataset: %v", err)
	}

	err := b.Execute(&iotask.Task[Position]{Kind: iotask.ExtendDataset, Target: e, Params: iotask.ExtendDatasetParams{NewExtent: chunk.Extent{4}}})
	var apiErr *ioerror.WrongAPIUsage
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *ioerror.WrongAPIUsage, got %v (%T)", err, err)
	}
}
