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
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/handler"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/writable"
)

// inspector opens one file read-only and walks it, the non-interactive
// counterpart of openpmd-shell's session: where that loop builds its
// graph one command at a time, this one builds it by recursing through
// LIST_PATHS/LIST_DATASETS itself.
type inspector[P any] struct {
	h       *handler.Handler[P]
	backend handler.Backend[P]
	root    *writable.Writable[P]
	nodes   map[string]*writable.Writable[P]
}

func openInspector[P any](backend handler.Backend[P], name string) (*inspector[P], error) {
	in := &inspector[P]{
		h:       handler.New[P](iotask.ReadOnly),
		backend: backend,
		nodes:   make(map[string]*writable.Writable[P]),
	}
	handle := writable.NewFileHandle(name)
	in.root = writable.NewRoot[P](handle)
	if err := in.run(iotask.NewOpenFile(in.root, iotask.OpenFileParams{Name: name})); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *inspector[P]) close() {
	_ = in.run(iotask.NewCloseFile(in.root))
}

func (in *inspector[P]) run(task *iotask.Task[P]) error {
	if err := in.h.Enqueue(task); err != nil {
		return err
	}
	return in.h.Flush(in.backend, handler.FlushParams{Level: iotask.UserFlush, Target: iotask.FlushDisk})
}

func (in *inspector[P]) node(path string) *writable.Writable[P] {
	path = strings.Trim(path, "/")
	if path == "" {
		return in.root
	}
	if n, ok := in.nodes[path]; ok {
		return n
	}
	segments := strings.Split(path, "/")
	parent := in.root
	built := ""
	for _, seg := range segments {
		if built == "" {
			built = seg
		} else {
			built += "/" + seg
		}
		if n, ok := in.nodes[built]; ok {
			parent = n
			continue
		}
		n := writable.NewChild(parent, seg)
		in.nodes[built] = n
		parent = n
	}
	return parent
}

func (in *inspector[P]) listPaths(path string) ([]string, error) {
	task := iotask.NewListPaths(in.node(path))
	if err := in.run(task); err != nil {
		return nil, err
	}
	out := task.Result.(iotask.ListPathsResult).Paths
	sort.Strings(out)
	return out, nil
}

func (in *inspector[P]) listDatasets(path string) ([]string, error) {
	task := iotask.NewListDatasets(in.node(path))
	if err := in.run(task); err != nil {
		return nil, err
	}
	out := task.Result.(iotask.ListDatasetsResult).Datasets
	sort.Strings(out)
	return out, nil
}

func (in *inspector[P]) listAttributes(path string) ([]string, error) {
	task := iotask.NewListAttributes(in.node(path))
	if err := in.run(task); err != nil {
		return nil, err
	}
	out := task.Result.(iotask.ListAttributesResult).Attributes
	sort.Strings(out)
	return out, nil
}

func (in *inspector[P]) readAttribute(path, name string) (iotask.AttributeValue, error) {
	task := iotask.NewReadAttribute(in.node(path), iotask.ReadAttributeParams{Name: name})
	if err := in.run(task); err != nil {
		return iotask.AttributeValue{}, err
	}
	return task.Result.(iotask.ReadAttributeResult).Value, nil
}

func (in *inspector[P]) openDataset(path string) (datatype.Datatype, chunk.Extent, error) {
	task := iotask.NewOpenDataset(in.node(path), iotask.OpenDatasetParams{Name: path})
	if err := in.run(task); err != nil {
		return datatype.UNDEFINED, nil, err
	}
	result := task.Result.(iotask.OpenDatasetResult)
	return result.Datatype, result.Extent, nil
}

func (in *inspector[P]) availableChunks(path string) ([]chunk.WrittenChunkInfo, error) {
	task := iotask.NewAvailableChunks(in.node(path))
	if err := in.run(task); err != nil {
		return nil, err
	}
	return task.Result.(iotask.AvailableChunksResult).Chunks, nil
}

// dump prints the full attribute/dataset/chunk inventory rooted at path,
// recursing into every child group LIST_PATHS reports.
func (in *inspector[P]) dump(w *strings.Builder, path string, depth int) error {
	indent := strings.Repeat("  ", depth)
	attrs, err := in.listAttributes(path)
	if err != nil {
		return err
	}
	for _, name := range attrs {
		value, err := in.readAttribute(path, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s@%s = %v (%s)\n", indent, name, value.Value, value.Datatype)
	}

	datasets, err := in.listDatasets(path)
	if err != nil {
		return err
	}
	for _, name := range datasets {
		dsPath := joinInspectPath(path, name)
		dt, extent, err := in.openDataset(dsPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s  %s%v\n", indent, name, dt, []uint64(extent))
		chunks, err := in.availableChunks(dsPath)
		if err != nil {
			return err
		}
		for _, c := range chunks {
			fmt.Fprintf(w, "%s  chunk offset=%v extent=%v writer=%d\n", indent, []uint64(c.Offset), []uint64(c.Extent), c.Writer)
		}
		dsAttrs, err := in.listAttributes(dsPath)
		if err != nil {
			return err
		}
		for _, name := range dsAttrs {
			value, err := in.readAttribute(dsPath, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  @%s = %v (%s)\n", indent, name, value.Value, value.Datatype)
		}
	}

	children, err := in.listPaths(path)
	if err != nil {
		return err
	}
	for _, child := range children {
		childPath := joinInspectPath(path, child)
		fmt.Fprintf(w, "%s%s/\n", indent, child)
		if err := in.dump(w, childPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func joinInspectPath(base, leaf string) string {
	base = strings.Trim(base, "/")
	if base == "" {
		return leaf
	}
	return base + "/" + leaf
}
