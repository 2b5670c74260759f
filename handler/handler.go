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

// Package handler implements the abstract I/O handler (spec §4.2, C3): it
// owns the task queue (it keeps no per-file dirty set), gates admissibility by
// access mode, and dispatches a flush to a backend adapter in FIFO order,
// preserving still-queued tasks for a failed file in a holding buffer
// rather than dropping them.
package handler

import (
	"fmt"
	"sort"

	"github.com/openpmd/openpmd-go/ioerror"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/writable"
)

// Backend is what an adapter (backend/adios2, backend/hdf5, ...) exposes
// to the handler: execute one task against the file it targets.
type Backend[P any] interface {
	Execute(task *iotask.Task[P]) error
}

// FlushParams mirrors spec §4.2's flush(params): a level selecting how
// much of the queue to realize, and a target naming how durable the
// result must be. Flush reads only Level; Target is not passed to the
// backend, so every target flushes the same way.
type FlushParams struct {
	Level  iotask.FlushLevel
	Target iotask.FlushTarget
}

// Handler is one AbstractIOHandler instance: single-threaded-cooperative,
// not re-entrant (spec §5). It is not safe for concurrent use; callers
// serialize access to a given Series themselves.
type Handler[P any] struct {
	Access iotask.AccessMode

	queue iotask.Queue[P]

	// alreadyEnqueued holds, per filename, tasks that were still pending
	// when a sibling task for that file failed during flush. They are
	// kept alive (spec §4.2's failure semantics) rather than dropped, so
	// any backend memory they still reference survives until the next
	// synchronization point. Flush never executes them again; a later
	// successful UserFlush that touches the same file discards them.
	alreadyEnqueued map[string][]*iotask.Task[P]
}

// New creates a Handler in the given access mode.
func New[P any](access iotask.AccessMode) *Handler[P] {
	return &Handler[P]{
		Access:          access,
		alreadyEnqueued: make(map[string][]*iotask.Task[P]),
	}
}

// writeKinds is the set of task kinds that mutate backend state and are
// therefore inadmissible under a read-only AccessMode (spec §4.2: "write-
// side operations fail fast in read-only modes").
var writeKinds = map[iotask.Kind]bool{
	iotask.CreateFile:      true,
	iotask.DeleteFile:      true,
	iotask.CreatePath:      true,
	iotask.DeletePath:      true,
	iotask.CreateDataset:   true,
	iotask.ExtendDataset:   true,
	iotask.DeleteDataset:   true,
	iotask.WriteDataset:    true,
	iotask.WriteAttribute:  true,
	iotask.DeleteAttribute: true,
	iotask.GetBufferView:   true,
}

// Enqueue appends task to the FIFO, or returns a WrongAPIUsage error
// without enqueuing it if task's Kind mutates state and Access is
// read-only.
func (h *Handler[P]) Enqueue(task *iotask.Task[P]) error {
	if h.Access.IsReadOnly() && writeKinds[task.Kind] {
		return &ioerror.WrongAPIUsage{Message: fmt.Sprintf(
			"%s is not admissible under access mode %s", task.Kind, h.Access)}
	}
	h.queue.Push(task)
	return nil
}

// Pending reports the number of tasks not yet drained by a Flush.
func (h *Handler[P]) Pending() int { return h.queue.Len() }

// structuralKinds is the subset of the taxonomy a SkeletonOnly flush
// realizes (spec §4.2: "SkeletonOnly executes metadata-structural tasks
// only"). Data-bearing and attribute-bearing tasks wait for a higher
// flush level.
var structuralKinds = map[iotask.Kind]bool{
	iotask.CreateFile:    true,
	iotask.CheckFile:     true,
	iotask.OpenFile:      true,
	iotask.CloseFile:     true,
	iotask.DeleteFile:    true,
	iotask.CreatePath:    true,
	iotask.OpenPath:      true,
	iotask.ClosePath:     true,
	iotask.DeletePath:    true,
	iotask.CreateDataset: true,
	iotask.ExtendDataset: true,
	iotask.OpenDataset:   true,
	iotask.DeleteDataset: true,
}

func admissibleAtLevel(kind iotask.Kind, level iotask.FlushLevel) bool {
	if level == iotask.SkeletonOnly {
		return structuralKinds[kind]
	}
	return true
}

// fileOf returns the filename a task's target belongs to, or "" if the
// target has no file handle yet (e.g. a not-yet-created root).
func fileOf[P any](w *writable.Writable[P]) string {
	if w == nil || w.File == nil {
		return ""
	}
	return w.File.Name()
}

// Flush drains the queue, dispatching each admissible task to backend in
// FIFO order (spec §4.2's ordering guarantee). If backend.Execute returns
// an error, every task still pending for that same file is moved into the
// holding buffer instead of being executed or dropped, and the error is
// returned to the caller. Tasks for other files already dispatched before
// the failure are not rolled back.
//
// On UserFlush, a successful run also clears any holding buffer content
// for files that were touched this flush (spec §4.4.5 step 4: "On
// UserFlush, also clear the action queue... On lower flush levels, move
// actions to m_alreadyEnqueued so their memory outlives the internal
// references until the next synchronization").
func (h *Handler[P]) Flush(backend Backend[P], params FlushParams) error {
	pending := h.queue.Drain()

	touchedFiles := make(map[string]bool)
	for i, task := range pending {
		if !admissibleAtLevel(task.Kind, params.Level) {
			// Not realized at this level; put it back for the next flush.
			h.queue.Push(task)
			continue
		}
		file := fileOf(task.Target)
		touchedFiles[file] = true

		if err := backend.Execute(task); err != nil {
			h.holdRemaining(file, pending[i+1:])
			return fmt.Errorf("flush failed on %s (%s): %w", file, task.Kind, err)
		}
	}

	if params.Level == iotask.UserFlush {
		for file := range touchedFiles {
			delete(h.alreadyEnqueued, file)
		}
	}
	return nil
}

// holdRemaining moves every task in remaining that targets file into the
// per-file holding buffer, preserving FIFO order, and requeues the rest
// unchanged so other files' pending work is not lost.
func (h *Handler[P]) holdRemaining(file string, remaining []*iotask.Task[P]) {
	for _, t := range remaining {
		if fileOf(t.Target) == file {
			h.alreadyEnqueued[file] = append(h.alreadyEnqueued[file], t)
		} else {
			h.queue.Push(t)
		}
	}
}

// Held returns the tasks currently parked in the holding buffer for file,
// for adapters that need to keep their own backing memory alive alongside
// them until the next successful synchronization point.
func (h *Handler[P]) Held(file string) []*iotask.Task[P] {
	return h.alreadyEnqueued[file]
}

// TeardownOrder returns files with pending or held work, sorted by name,
// matching spec §4.2's "backend drains files in an unspecified but
// deterministic order (sorted by filename) at teardown to make
// destruction order reproducible."
func (h *Handler[P]) TeardownOrder() []string {
	seen := make(map[string]bool)
	for _, t := range h.queue.Peek() {
		seen[fileOf(t.Target)] = true
	}
	for file := range h.alreadyEnqueued {
		seen[file] = true
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
