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
// Package writable implements the frontend's object graph (spec §4.1,
// C1): a tree of named nodes anchored to backend-opaque file positions.
// The graph itself never interprets a file position's concrete type; it
// only synthesizes one from the parent chain the first time a node needs
// one, via a backend-supplied Synthesizer.
package writable

import "github.com/openpmd/openpmd-go/ioerror"

// Writable is a node in the frontend's object tree (spec §3). P is the
// backend-chosen concrete file-position type (e.g. a POSIX-like path
// plus group/dataset tag for ADIOS2, or a bare path string for HDF5).
type Writable[P any] struct {
	Parent *Writable[P]
	// Key is this node's path segments relative to Parent, e.g.
	// ["meshes", "E", "x"]. The root Writable has an empty Key and a nil
	// Parent.
	Key []string

	File *FileHandle

	position    *P
	hasPosition bool

	written bool
	dirty   bool
}

// NewRoot creates the root node of a graph. The root has no parent and no
// key, per spec §3's Writable invariant.
func NewRoot[P any](file *FileHandle) *Writable[P] {
	return &Writable[P]{File: file}
}

// NewChild creates a node anchored under parent at the given key segments.
func NewChild[P any](parent *Writable[P], key ...string) *Writable[P] {
	return &Writable[P]{Parent: parent, Key: append([]string(nil), key...), File: parent.File}
}

// Written reports whether the backend has observed a create/open for
// this node (spec §3 Writable invariant).
func (w *Writable[P]) Written() bool { return w.written }

// MarkWritten records that the backend has created/opened this node.
func (w *Writable[P]) MarkWritten() { w.written = true }

// Dirty reports whether this node has been flagged with MarkDirty. The
// handler keeps no per-file dirty set, so this flag is not tied to any
// file-level state.
func (w *Writable[P]) Dirty() bool { return w.dirty }

// MarkDirty flags this node as having pending state.
func (w *Writable[P]) MarkDirty() { w.dirty = true }

// ClearDirty flags this node as fully flushed.
func (w *Writable[P]) ClearDirty() { w.dirty = false }

// Synthesizer builds a child's file position given its parent's
// (possibly just-synthesized) position and the child's key segments. Each
// backend supplies its own: ADIOS2 concatenates POSIX-like path segments
// and a group/dataset tag; HDF5 concatenates HDF5 path segments.
type Synthesizer[P any] func(parent P, key []string) P

// SetAndGetFilePosition returns this node's file position, synthesizing
// it from the parent chain on first use and caching the result (spec
// §4.1). Calling it on the root node without a position already set is a
// programming error (the root's position must be set directly by the
// backend at CREATE_FILE/OPEN_FILE time) and returns an Internal error,
// matching spec §4.1's failure model: "attempting to obtain a file
// position for a node whose parent chain is not rooted raises an
// internal error."
func (w *Writable[P]) SetAndGetFilePosition(synth Synthesizer[P]) (P, error) {
	if w.hasPosition {
		return *w.position, nil
	}
	if w.Parent == nil {
		var zero P
		return zero, &ioerror.Internal{Message: "writable: root node has no file position set"}
	}
	parentPos, err := w.Parent.SetAndGetFilePosition(synth)
	if err != nil {
		var zero P
		return zero, err
	}
	pos := synth(parentPos, w.Key)
	w.position = &pos
	w.hasPosition = true
	return pos, nil
}

// SetFilePosition directly assigns a position, used by the backend when
// it already knows the position (e.g. the root node at CREATE_FILE, or a
// node whose position was discovered by OPEN_PATH/OPEN_DATASET rather
// than synthesized).
func (w *Writable[P]) SetFilePosition(pos P) {
	w.position = &pos
	w.hasPosition = true
}

// HasFilePosition reports whether a position has been set or synthesized.
func (w *Writable[P]) HasFilePosition() bool {
	return w.hasPosition
}

// RefreshFileFromParent resolves the FileHandle this node belongs to from
// its parent, optionally preferring the parent's file over this node's
// current one (spec §4.1) — used when a Writable is re-parented across
// an iteration-group switch and must adopt the new group's file.
func (w *Writable[P]) RefreshFileFromParent(preferParent bool) {
	if w.Parent == nil {
		return
	}
	if w.File == nil || preferParent {
		w.File = w.Parent.File
	}
}

// Deregister detaches this node from its parent so it is no longer
// reachable from the root, matching spec §3's Writable lifecycle:
// "deregistered from the backend's writable-to-file map before
// destruction." Backends keep their own writable->file maps (raw pointer
// keyed); this only severs the graph edge.
func (w *Writable[P]) Deregister() {
	w.Parent = nil
}
