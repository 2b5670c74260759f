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
package hdf5

import (
	"encoding/json"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/media"
	"github.com/openpmd/openpmd-go/operator"
)

// dataset holds one variable's metadata: the frontend-declared shape, the
// per-variable compression chain, and whether it was created resizable
// (EXTEND_DATASET is only legal on a resizable dataset, per spec §4.3).
type dataset struct {
	Datatype  string
	Shape     chunk.Extent
	ChunkDims chunk.Extent
	Operators operator.Chain
	Resizable bool
	Chunks    []chunk.WrittenChunkInfo
}

// File holds one open HDF5-shaped file's entire state. Unlike the ADIOS2
// adapter this backend is synchronous (spec §4.5: "each task maps
// directly to HDF5 calls with no deferred queue"), so there is no stream
// machine, group table, or span registry — only the group/dataset/
// attribute namespace itself.
type File struct {
	Name       string
	medium     media.Medium
	mediumName string

	// CollectiveMetadata mirrors H5P_ALL_COLL_METADATA_OPS (spec §4.5):
	// purely advisory in this single-process adapter, since there is no
	// real MPI communicator to make collective, but threaded through so
	// a future MPI-aware caller has somewhere to read it back from.
	CollectiveMetadata bool

	groups map[string]bool
	data   map[string][]byte
	sets   map[string]*dataset

	attributes map[string]attributeRecord
}

// attributeRecord pairs an attribute's already-marshaled JSON value with
// its datatype tag, mirroring how a real H5Awrite call would record both
// the value and its hid_t together.
type attributeRecord struct {
	Datatype string          `json:"datatype"`
	Value    json.RawMessage `json:"value"`
}

// NewFile constructs File state for one just-created/opened file.
func NewFile(name string, medium media.Medium, mediumName string, collectiveMetadata bool) *File {
	return &File{
		Name: name, medium: medium, mediumName: mediumName,
		CollectiveMetadata: collectiveMetadata,
		groups:             map[string]bool{"": true}, // the root group always exists
		data:               make(map[string][]byte),
		sets:               make(map[string]*dataset),
		attributes:         make(map[string]attributeRecord),
	}
}

// persist writes every dataset's (operator-wrapped) bytes, its metadata
// sidecar, and every attribute to the backing medium. It is called at
// CLOSE_FILE and on every ADVANCE; nothing here is deferred past the point
// it was written in-process, so each call writes the complete current
// state.
func (f *File) persist() error {
	for name, raw := range f.data {
		ds := f.sets[name]
		var operators operator.Chain
		if ds != nil {
			operators = ds.Operators
		}
		wrapped, err := operators.Apply(raw)
		if err != nil {
			return err
		}
		if err := writeBlob(f.medium, f.mediumName+"/"+name, wrapped); err != nil {
			return err
		}
	}
	for name, ds := range f.sets {
		meta, err := json.Marshal(ds)
		if err != nil {
			return err
		}
		if err := writeBlob(f.medium, f.mediumName+"/meta/"+name+".json", meta); err != nil {
			return err
		}
	}
	for name, rec := range f.attributes {
		meta, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := writeBlob(f.medium, f.mediumName+"/attr/"+name, meta); err != nil {
			return err
		}
	}
	return nil
}

func writeBlob(medium media.Medium, name string, data []byte) error {
	w, err := medium.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
