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
	"github.com/openpmd/openpmd-go/writable"
)

// Task is one deferred operation against a backend (spec §4.2, C2): a
// Writable target, an operation Kind, and the Kind's matching typed
// Params. The frontend appends Tasks to a Queue; the backend drains the
// queue at flush time, filling in Result as it goes. Failures are returned
// from Backend.Execute and Handler.Flush; nothing in this module sets Err.
//
// Task is generic over P, the backend's file-position type, purely
// because Target is — the Params/Result payloads themselves never depend
// on P.
type Task[P any] struct {
	Target *writable.Writable[P]
	Kind   Kind
	Params any
	Result any
	Err    error
}

// newTask is the shared constructor body every New* helper below uses.
func newTask[P any](target *writable.Writable[P], kind Kind, params any) *Task[P] {
	return &Task[P]{Target: target, Kind: kind, Params: params}
}

func NewCreateFile[P any](target *writable.Writable[P], p CreateFileParams) *Task[P] {
	return newTask(target, CreateFile, p)
}

func NewCheckFile[P any](target *writable.Writable[P], p CheckFileParams) *Task[P] {
	return newTask(target, CheckFile, p)
}

func NewOpenFile[P any](target *writable.Writable[P], p OpenFileParams) *Task[P] {
	return newTask(target, OpenFile, p)
}

func NewCloseFile[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, CloseFile, CloseFileParams{})
}

func NewDeleteFile[P any](target *writable.Writable[P], p DeleteFileParams) *Task[P] {
	return newTask(target, DeleteFile, p)
}

func NewCreatePath[P any](target *writable.Writable[P], p CreatePathParams) *Task[P] {
	return newTask(target, CreatePath, p)
}

func NewOpenPath[P any](target *writable.Writable[P], p OpenPathParams) *Task[P] {
	return newTask(target, OpenPath, p)
}

func NewClosePath[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, ClosePath, ClosePathParams{})
}

func NewDeletePath[P any](target *writable.Writable[P], p DeletePathParams) *Task[P] {
	return newTask(target, DeletePath, p)
}

func NewCreateDataset[P any](target *writable.Writable[P], p CreateDatasetParams) *Task[P] {
	return newTask(target, CreateDataset, p)
}

func NewExtendDataset[P any](target *writable.Writable[P], p ExtendDatasetParams) *Task[P] {
	return newTask(target, ExtendDataset, p)
}

func NewOpenDataset[P any](target *writable.Writable[P], p OpenDatasetParams) *Task[P] {
	return newTask(target, OpenDataset, p)
}

func NewDeleteDataset[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, DeleteDataset, DeleteDatasetParams{})
}

func NewWriteDataset[P any](target *writable.Writable[P], p WriteDatasetParams) *Task[P] {
	return newTask(target, WriteDataset, p)
}

func NewReadDataset[P any](target *writable.Writable[P], p ReadDatasetParams) *Task[P] {
	return newTask(target, ReadDataset, p)
}

func NewGetBufferView[P any](target *writable.Writable[P], p GetBufferViewParams) *Task[P] {
	return newTask(target, GetBufferView, p)
}

func NewWriteAttribute[P any](target *writable.Writable[P], p WriteAttributeParams) *Task[P] {
	return newTask(target, WriteAttribute, p)
}

func NewReadAttribute[P any](target *writable.Writable[P], p ReadAttributeParams) *Task[P] {
	return newTask(target, ReadAttribute, p)
}

func NewDeleteAttribute[P any](target *writable.Writable[P], p DeleteAttributeParams) *Task[P] {
	return newTask(target, DeleteAttribute, p)
}

func NewListPaths[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, ListPaths, nil)
}

func NewListDatasets[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, ListDatasets, nil)
}

func NewListAttributes[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, ListAttributes, nil)
}

func NewAdvance[P any](target *writable.Writable[P], p AdvanceParams) *Task[P] {
	return newTask(target, Advance, p)
}

func NewAvailableChunks[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, AvailableChunks, nil)
}

func NewTouch[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, Touch, TouchParams{})
}

func NewDeregister[P any](target *writable.Writable[P]) *Task[P] {
	return newTask(target, Deregister, DeregisterParams{})
}
