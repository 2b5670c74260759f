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
	"encoding/json"
	"fmt"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/ioerror"
	"github.com/openpmd/openpmd-go/media"
)

// dataset holds one variable's live state: its descriptor plus the raw
// bytes most recently written to it. A JSON dump has no operator chain
// (spec.md never names a JSON-backend compression story, and a dump's
// whole purpose is to stay legible) and no chunk-shape heuristic — every
// WRITE_DATASET simply replaces the variable's current value.
type dataset struct {
	Datatype  string
	Extent    chunk.Extent
	ChunkDims chunk.Extent
	Resizable bool
	Data      []byte
	Chunks    []chunk.WrittenChunkInfo
}

// File holds one open JSON-dump file's entire in-memory state. Like
// backend/hdf5 this adapter is synchronous: no deferred queue, no step
// machine, no span buffers (spec §4.5's "no engine-level streaming model
// to reconcile against" applies here too, a fortiori, since JSON has no
// streaming engine at all).
type File struct {
	Name       string
	medium     media.Medium
	mediumName string

	groups     map[string]bool
	sets       map[string]*dataset
	attributes map[string]attributeRecord
}

type attributeRecord struct {
	Datatype string
	Value    json.RawMessage
}

// NewFile constructs state for a just-created or just-opened file.
func NewFile(name string, medium media.Medium, mediumName string) *File {
	return &File{
		Name: name, medium: medium, mediumName: mediumName,
		groups:     map[string]bool{"": true},
		sets:       make(map[string]*dataset),
		attributes: make(map[string]attributeRecord),
	}
}

// compact renders the file's current live state as the record set persist
// will write, discarding any task history — see record.go's doc comment.
func (f *File) compact() ([]record, error) {
	var out []record
	for g := range f.groups {
		if g == "" {
			continue
		}
		out = append(out, record{Op: opPath, Path: g})
	}
	for name, ds := range f.sets {
		dt := datatype.Parse(ds.Datatype)
		body, err := encodeDataset(dt.Scalar(), ds.Data)
		if err != nil {
			return nil, err
		}
		out = append(out, record{
			Op: opDataset, Path: name, Datatype: ds.Datatype,
			Extent: ds.Extent, ChunkDims: ds.ChunkDims, Resizable: ds.Resizable,
			Data: body,
		})
	}
	for name, rec := range f.attributes {
		out = append(out, record{Op: opAttribute, Path: attrGroupOf(name), Name: attrNameOf(name), Datatype: rec.Datatype, Value: rec.Value})
	}
	return out, nil
}

// persist writes the compacted record set as one JSON-lines blob.
func (f *File) persist() error {
	records, err := f.compact()
	if err != nil {
		return err
	}
	blob, err := writeRecords(records)
	if err != nil {
		return err
	}
	w, err := f.medium.Create(f.mediumName)
	if err != nil {
		return err
	}
	if _, err := w.Write(blob); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// load replays a persisted record set, rebuilding groups/sets/attributes.
func (f *File) load(raw []byte) error {
	records, err := readRecords(raw)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := f.apply(r); err != nil {
			return err
		}
	}
	return nil
}

func (f *File) apply(r record) error {
	switch r.Op {
	case opPath:
		registerGroupPath(f, r.Path)
	case opDataset:
		dt := datatype.Parse(r.Datatype)
		raw, err := decodeDataset(dt.Scalar(), r.Data)
		if err != nil {
			return &ioerror.UnsupportedData{Message: fmt.Sprintf("jsonfile: decoding dataset %q: %v", r.Path, err)}
		}
		f.sets[r.Path] = &dataset{Datatype: r.Datatype, Extent: r.Extent, ChunkDims: r.ChunkDims, Resizable: r.Resizable, Data: raw}
		registerGroupsOf(f, r.Path)
	case opAttribute:
		name := joinAttr(r.Path, r.Name)
		f.attributes[name] = attributeRecord{Datatype: r.Datatype, Value: r.Value}
		registerGroupsOf(f, name)
	default:
		return &ioerror.UnsupportedData{Message: "jsonfile: unknown record op " + r.Op}
	}
	return nil
}

// registerGroupsOf marks every intermediate path segment of name (a
// dataset or attribute leaf) as an existing group, mirroring
// backend/hdf5's reopen reconstruction.
func registerGroupsOf(f *File, name string) {
	segments := splitPath(name)
	var built string
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "" {
			continue
		}
		if built == "" {
			built = segments[i]
		} else {
			built = built + "/" + segments[i]
		}
		f.groups[built] = true
	}
}

// registerGroupPath marks path itself, plus every intermediate segment
// above it, as an existing group (used for a path that is itself a group,
// unlike registerGroupsOf's dataset/attribute leaf).
func registerGroupPath(f *File, path string) {
	segments := splitPath(path)
	var built string
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if built == "" {
			built = seg
		} else {
			built = built + "/" + seg
		}
		f.groups[built] = true
	}
}
