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
	"strings"

	"github.com/google/btree"
)

// Params is an ADIOS2-style string-keyed parameter dictionary attached
// to a discovered variable or attribute (spec §4.4.7).
type Params map[string]string

type availabilityEntry struct {
	name   string
	params Params
}

func lessAvailabilityEntry(a, b availabilityEntry) bool {
	return a.name < b.name
}

// AvailabilityCache implements availableAttributes()/availableVariables()
// (spec §4.4.7): a lazily populated, ordered name->Params map, invalidated
// by any write that could change the set, with prefix lookups as ordered
// range scans — the same shape as the teacher's storageShard.deltaBtree
// ordered index over row keys.
type AvailabilityCache struct {
	tree    *btree.BTreeG[availabilityEntry]
	populated bool
	populate  func() map[string]Params
}

// NewAvailabilityCache constructs a cache that calls populate on first
// use (or after any Invalidate) to discover the current name set.
func NewAvailabilityCache(populate func() map[string]Params) *AvailabilityCache {
	return &AvailabilityCache{tree: btree.NewG(8, lessAvailabilityEntry), populate: populate}
}

func (c *AvailabilityCache) ensurePopulated() {
	if c.populated {
		return
	}
	for name, params := range c.populate() {
		c.tree.ReplaceOrInsert(availabilityEntry{name: name, params: params})
	}
	c.populated = true
}

// Invalidate drops the cache, forcing the next lookup to repopulate from
// the backend. Called on deleteAttribute, writeAttribute, and step
// transitions (spec §4.4.7).
func (c *AvailabilityCache) Invalidate() {
	c.tree = btree.NewG(8, lessAvailabilityEntry)
	c.populated = false
}

// Lookup returns the Params for name and whether it was found.
func (c *AvailabilityCache) Lookup(name string) (Params, bool) {
	c.ensurePopulated()
	entry, ok := c.tree.Get(availabilityEntry{name: name})
	if !ok {
		return nil, false
	}
	return entry.params, true
}

// Set records name -> params directly, used after a write the cache
// already knows the outcome of without a full repopulate.
func (c *AvailabilityCache) Set(name string, params Params) {
	c.ensurePopulated()
	c.tree.ReplaceOrInsert(availabilityEntry{name: name, params: params})
}

// Remove drops name from the cache directly (e.g. after deleteAttribute
// succeeds), avoiding a full repopulate.
func (c *AvailabilityCache) Remove(name string) {
	c.ensurePopulated()
	c.tree.Delete(availabilityEntry{name: name})
}

// WithPrefix returns every name sharing prefix, in sorted order, via an
// ordered-map range scan (spec §4.4.7: "prefix lookups are implemented
// as ordered-map range scans").
func (c *AvailabilityCache) WithPrefix(prefix string) []string {
	c.ensurePopulated()
	var out []string
	c.tree.AscendGreaterOrEqual(availabilityEntry{name: prefix}, func(e availabilityEntry) bool {
		if !strings.HasPrefix(e.name, prefix) {
			return false // past the prefix range; stop
		}
		out = append(out, e.name)
		return true
	})
	return out
}

// Len reports the number of known entries, populating first if needed.
func (c *AvailabilityCache) Len() int {
	c.ensurePopulated()
	return c.tree.Len()
}
