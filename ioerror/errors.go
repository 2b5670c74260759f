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
// Package ioerror defines the closed set of frontend-visible error kinds
// that every backend adapter translates its native errors into (spec §7).
//
// Callers distinguish kinds with errors.As, never by matching strings.
package ioerror

import "fmt"

// AffectedObject names the kind of thing a ReadError concerns.
type AffectedObject int

const (
	File AffectedObject = iota
	Dataset
	Attribute
	Path
	Other
)

func (o AffectedObject) String() string {
	switch o {
	case File:
		return "File"
	case Dataset:
		return "Dataset"
	case Attribute:
		return "Attribute"
	case Path:
		return "Path"
	default:
		return "Other"
	}
}

// Reason is the cause of a ReadError.
type Reason int

const (
	NotFound Reason = iota
	Inaccessible
	CannotRead
	UnexpectedContent
)

func (r Reason) String() string {
	switch r {
	case NotFound:
		return "NotFound"
	case Inaccessible:
		return "Inaccessible"
	case CannotRead:
		return "CannotRead"
	default:
		return "UnexpectedContent"
	}
}

// ReadError reports a failure to read an object, naming what and why.
type ReadError struct {
	Object AffectedObject
	Reason Reason
	Name   string // offending path/name, where known
}

func (e *ReadError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("openpmd: %s %q: %s", e.Object, e.Name, e.Reason)
	}
	return fmt.Sprintf("openpmd: %s: %s", e.Object, e.Reason)
}

// OperationUnsupportedInBackend is raised when a task is well-formed but
// the active backend adapter cannot perform it (e.g. DELETE_PATH on ADIOS2).
type OperationUnsupportedInBackend struct {
	Backend string
	Details string
}

func (e *OperationUnsupportedInBackend) Error() string {
	return fmt.Sprintf("openpmd: operation unsupported in backend %q: %s", e.Backend, e.Details)
}

// BackendConfigSchema is raised for malformed or conflicting JSON/TOML
// backend configuration, naming the offending key path.
type BackendConfigSchema struct {
	JSONPath []string
	Message  string
}

func (e *BackendConfigSchema) Error() string {
	return fmt.Sprintf("openpmd: config schema error at %v: %s", e.JSONPath, e.Message)
}

// WrongAPIUsage is raised for a call that is never legal regardless of
// backend or file state (e.g. writing in READ_ONLY mode).
type WrongAPIUsage struct {
	Message string
}

func (e *WrongAPIUsage) Error() string {
	return "openpmd: wrong API usage: " + e.Message
}

// Internal marks a violated implementation invariant (e.g. a Writable
// whose parent chain is not rooted). These are not meant to be handled
// by callers; they indicate a bug.
type Internal struct {
	Message string
}

func (e *Internal) Error() string {
	return "openpmd: internal error: " + e.Message
}

// NoSuchAttribute is raised when an attribute name is referenced that
// does not exist at the current file position.
type NoSuchAttribute struct {
	Name string
}

func (e *NoSuchAttribute) Error() string {
	return fmt.Sprintf("openpmd: no such attribute %q", e.Name)
}

// UnsupportedData is raised when a value's shape or type cannot be
// represented by the active backend's attribute/dataset encoding.
type UnsupportedData struct {
	Message string
}

func (e *UnsupportedData) Error() string {
	return "openpmd: unsupported data: " + e.Message
}
