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
package writable

import "sync"

// FileHandle is a shared, invalidatable wrapper around a filename (spec
// §3 "File handle"). It is shared by pointer: every Writable belonging to
// the same on-disk/on-stream file holds the same *FileHandle instance, so
// invalidating one instance invalidates all aliases.
//
// Lifetime: created at first CREATE_FILE/OPEN_FILE for a given filename,
// invalidated on DELETE_FILE or on CREATE-mode overwrite of an existing
// file, destroyed with its owning backend state on CLOSE_FILE/finalize.
// FileHandle only tracks its own validity. Neither it nor the handler
// keeps a filename registry, so nothing stops two valid handles from
// naming the same file.
type FileHandle struct {
	mu    sync.RWMutex
	name  string
	valid bool
}

// NewFileHandle creates a handle in the valid state.
func NewFileHandle(name string) *FileHandle {
	return &FileHandle{name: name, valid: true}
}

// Name returns the filename this handle was created for.
func (f *FileHandle) Name() string {
	return f.name
}

// Valid reports whether this handle (and all its aliases) is still live.
func (f *FileHandle) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.valid
}

// Invalidate marks this handle, and every alias sharing the same pointer,
// permanently invalid.
func (f *FileHandle) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid = false
}
