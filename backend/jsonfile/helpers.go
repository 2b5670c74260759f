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
	"sort"
	"strings"
)

func splitPath(name string) []string {
	return strings.Split(strings.Trim(name, "/"), "/")
}

func joinAttr(groupPath, name string) string {
	groupPath = strings.Trim(groupPath, "/")
	if groupPath == "" {
		return name
	}
	return groupPath + "/" + name
}

// attrGroupOf/attrNameOf split a "group/path/attrName" key back into its
// two parts, the inverse of joinAttr, for re-serializing an attribute
// record's owning group path and bare name at persist time.
func attrGroupOf(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[:i]
	}
	return ""
}

func attrNameOf(key string) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// topSegment returns the first path segment of name below prefix,
// regardless of how much further nesting follows.
func topSegment(name, prefix string) (string, bool) {
	if prefix != "" {
		if !strings.HasPrefix(name, prefix+"/") {
			return "", false
		}
		name = strings.TrimPrefix(name, prefix+"/")
	}
	if name == "" {
		return "", false
	}
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i], true
	}
	return name, true
}

// directChild reports the next path segment of name below prefix, and
// whether name has more than one segment after prefix (an intermediate
// group rather than a direct leaf).
func directChild(name, prefix string) (string, bool) {
	if prefix != "" && !strings.HasPrefix(name, prefix+"/") {
		return "", false
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(name, prefix), "/")
	if rest == "" {
		return "", false
	}
	i := strings.IndexByte(rest, '/')
	if i < 0 {
		return rest, false
	}
	return rest[:i], true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
