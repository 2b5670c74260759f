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
	"fmt"
	"strings"

	"github.com/openpmd/openpmd-go/ioerror"
	"github.com/openpmd/openpmd-go/writable"
)

// groupTableAttributePrefix is the attribute namespace group-table
// entries live under (spec §4.4.4).
const groupTableAttributePrefix = "__openPMD_internal/activeTable/"

// GroupTableEntry records the step in which groupPath was last marked
// active.
type GroupTableEntry struct {
	GroupPath  string
	LastActive uint64
}

// GroupTable implements UseGroupTable::Yes (spec §4.4.4): one entry per
// group, keyed by its attribute name, recording the step it was last
// declared active in.
type GroupTable struct {
	entries        map[string]*GroupTableEntry
	allowModify    bool // ADIOS>=2.9's allowModification
	adios29OrLater bool
}

// NewGroupTable constructs an empty table. allowModify/adios29OrLater
// gate whether MarkActive may update an existing entry in place (spec
// §4.4.4: "modification of existing attributes requires ADIOS>=2.9's
// allowModification").
func NewGroupTable(adios29OrLater, allowModify bool) *GroupTable {
	return &GroupTable{entries: make(map[string]*GroupTableEntry), allowModify: allowModify, adios29OrLater: adios29OrLater}
}

func attributeName(groupPath string) string {
	return groupTableAttributePrefix + groupPath
}

// MarkActive walks w's ancestors, writing the activity attribute for
// each ancestor not yet marked at currentStep (spec §4.4.4's
// markActive(writable)). groupPathOf resolves a Writable to its
// slash-joined group path. Returns the attribute writes that must be
// enqueued, w itself first and the root last.
func (t *GroupTable) MarkActive(w *writable.Writable[Position], currentStep uint64, groupPathOf func(*writable.Writable[Position]) string) ([]GroupTableEntry, error) {
	var toWrite []GroupTableEntry
	for node := w; node != nil; node = node.Parent {
		path := groupPathOf(node)
		entry, exists := t.entries[path]
		if exists && entry.LastActive == currentStep {
			continue // already marked this step
		}
		if exists {
			if !t.adios29OrLater || !t.allowModify {
				return nil, &ioerror.OperationUnsupportedInBackend{
					Backend: "adios2",
					Details: fmt.Sprintf("modifying existing group-table entry %q requires ADIOS>=2.9 allowModification", path),
				}
			}
			entry.LastActive = currentStep
		} else {
			entry = &GroupTableEntry{GroupPath: path, LastActive: currentStep}
			t.entries[path] = entry
		}
		toWrite = append(toWrite, *entry)
	}
	return toWrite, nil
}

// ListChildren filters prefix's group-table entries by currentStep,
// returning only those active at that step (spec §4.4.4: "on read,
// listing children of a path filters table entries by the current
// step").
func (t *GroupTable) ListChildren(prefix string, currentStep uint64) []string {
	var out []string
	for path, entry := range t.entries {
		if entry.LastActive != currentStep {
			continue
		}
		if prefix != "" && !strings.HasPrefix(path, prefix+"/") {
			continue
		}
		rest := strings.TrimPrefix(path, prefix)
		rest = strings.TrimPrefix(rest, "/")
		if rest == "" || strings.Contains(rest, "/") {
			continue // not a direct child
		}
		out = append(out, rest)
	}
	return out
}

// IsGroupTableAttribute reports whether name is a synthesized
// group-table entry rather than a real user attribute, so attribute
// listing can filter it out of LIST_ATTS.
func IsGroupTableAttribute(name string) bool {
	return strings.HasPrefix(name, groupTableAttributePrefix)
}
