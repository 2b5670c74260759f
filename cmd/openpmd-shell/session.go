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
	"strconv"
	"strings"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/handler"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/writable"
)

// session drives one Writable graph against a single backend, one command
// at a time. It is the direct generalization of the teacher's scm.Repl
// (scm/prompt.go): that loop reads an expression and evaluates it against
// a Scheme environment; this loop reads a command and turns it into one
// or more I/O tasks flushed against a handler.Handler.
type session[P any] struct {
	h       *handler.Handler[P]
	backend handler.Backend[P]

	root     *writable.Writable[P]
	nodes    map[string]*writable.Writable[P]
	datasets map[string]chunk.Dataset
	fileName string
	fileOpen bool
}

func newSession[P any](backend handler.Backend[P]) *session[P] {
	return &session[P]{
		h:        handler.New[P](iotask.ReadOnly),
		backend:  backend,
		nodes:    make(map[string]*writable.Writable[P]),
		datasets: make(map[string]chunk.Dataset),
	}
}

// node returns (creating on first use) the graph node for a slash-joined
// path relative to root, mirroring how a Series lazily grows its object
// tree as the caller names new groups and datasets.
func (s *session[P]) node(path string) *writable.Writable[P] {
	path = strings.Trim(path, "/")
	if path == "" {
		return s.root
	}
	if n, ok := s.nodes[path]; ok {
		return n
	}
	segments := strings.Split(path, "/")
	parent := s.root
	built := ""
	for _, seg := range segments {
		if built == "" {
			built = seg
		} else {
			built += "/" + seg
		}
		if n, ok := s.nodes[built]; ok {
			parent = n
			continue
		}
		n := writable.NewChild(parent, seg)
		s.nodes[built] = n
		parent = n
	}
	return parent
}

// run enqueues task and immediately flushes it, the REPL cadence: each
// command's effect (and any error) is visible before the next prompt,
// same as the teacher's one-expression-per-line evaluation.
func (s *session[P]) run(task *iotask.Task[P]) error {
	if err := s.h.Enqueue(task); err != nil {
		return err
	}
	return s.h.Flush(s.backend, handler.FlushParams{Level: iotask.UserFlush, Target: iotask.FlushDisk})
}

// dispatch parses one command line and returns the text to print, or an
// error. "quit"/"exit" is reported via errQuit so the caller can close the
// file before the process exits.
var errQuit = fmt.Errorf("quit")

func (s *session[P]) dispatch(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "exit", "quit":
		return "", errQuit
	case "create":
		return s.cmdOpen(args, iotask.Create, true)
	case "open":
		return s.cmdOpen(args, iotask.ReadWrite, false)
	case "openro":
		return s.cmdOpen(args, iotask.ReadOnly, false)
	case "close":
		return s.cmdClose()
	case "mkpath":
		return s.cmdMkpath(args)
	case "rmpath":
		return s.cmdRmpath(args)
	case "mkds":
		return s.cmdMkds(args)
	case "rmds":
		return s.cmdRmds(args)
	case "write":
		return s.cmdWrite(args)
	case "read":
		return s.cmdRead(args)
	case "attrset":
		return s.cmdAttrSet(args)
	case "attrget":
		return s.cmdAttrGet(args)
	case "rmattr":
		return s.cmdAttrDelete(args)
	case "ls":
		return s.cmdListPaths(args)
	case "lsds":
		return s.cmdListDatasets(args)
	case "lsattr":
		return s.cmdListAttributes(args)
	case "chunks":
		return s.cmdChunks(args)
	case "advance":
		return s.cmdAdvance()
	case "flush":
		return "ok", s.h.Flush(s.backend, handler.FlushParams{Level: iotask.UserFlush, Target: iotask.FlushDisk})
	case "help":
		return helpText, nil
	default:
		return "", fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

const helpText = `commands:
  create <name>                         create a new file (truncates an existing one)
  open <name>                           open an existing file read/write
  openro <name>                         open an existing file read-only
  close                                 close the open file
  mkpath <path>                         create a group
  rmpath <path>                         delete a group and everything nested under it
  mkds <path> <datatype> <extent...>    create a dataset, e.g. "mkds meshes/E/x DOUBLE 2 2"
  rmds <path>                           delete a dataset
  write <path> <v...>                   write values filling the dataset's full extent
  read <path>                           read the dataset's full extent back
  attrset <path> <name> <datatype> <v>  write a scalar attribute
  attrget <path> <name>                 read an attribute back
  rmattr <path> <name>                  delete an attribute
  ls <path>                             list child groups
  lsds <path>                           list datasets at a path
  lsattr <path>                         list attributes at a path
  chunks <path>                         list written chunks of a dataset
  advance                               collective step boundary
  flush                                 drain the task queue
  exit | quit                           leave the shell`

func (s *session[P]) cmdOpen(args []string, access iotask.AccessMode, create bool) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <name>", map[bool]string{true: "create", false: "open"}[create])
	}
	name := args[0]
	handle := writable.NewFileHandle(name)
	s.root = writable.NewRoot[P](handle)
	s.nodes = make(map[string]*writable.Writable[P])
	s.datasets = make(map[string]chunk.Dataset)
	s.h.Access = access
	var task *iotask.Task[P]
	if create {
		task = iotask.NewCreateFile(s.root, iotask.CreateFileParams{Name: name})
	} else {
		task = iotask.NewOpenFile(s.root, iotask.OpenFileParams{Name: name})
	}
	if err := s.run(task); err != nil {
		return "", err
	}
	s.fileName = name
	s.fileOpen = true
	return fmt.Sprintf("opened %s (%s)", name, access), nil
}

func (s *session[P]) requireOpen() error {
	if !s.fileOpen {
		return fmt.Errorf("no file open, use \"create\"/\"open\" first")
	}
	return nil
}

func (s *session[P]) cmdClose() (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if err := s.run(iotask.NewCloseFile(s.root)); err != nil {
		return "", err
	}
	s.fileOpen = false
	return fmt.Sprintf("closed %s", s.fileName), nil
}

func (s *session[P]) cmdMkpath(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", fmt.Errorf("usage: mkpath <path>")
	}
	n := s.node(args[0])
	if err := s.run(iotask.NewCreatePath(n, iotask.CreatePathParams{Path: args[0]})); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *session[P]) cmdRmpath(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", fmt.Errorf("usage: rmpath <path>")
	}
	n := s.node(args[0])
	if err := s.run(iotask.NewDeletePath(n, iotask.DeletePathParams{Path: args[0]})); err != nil {
		return "", err
	}
	delete(s.nodes, strings.Trim(args[0], "/"))
	return "ok", nil
}

func (s *session[P]) cmdMkds(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) < 3 {
		return "", fmt.Errorf("usage: mkds <path> <datatype> <extent...>")
	}
	path, dtName, rest := args[0], args[1], args[2:]
	dt := datatype.Parse(dtName)
	if !dt.Valid() {
		return "", fmt.Errorf("unrecognized datatype %q", dtName)
	}
	extent := make(chunk.Extent, len(rest))
	for i, e := range rest {
		v, err := strconv.ParseUint(e, 10, 64)
		if err != nil {
			return "", fmt.Errorf("extent[%d]: %w", i, err)
		}
		extent[i] = v
	}
	ds := chunk.Dataset{Datatype: dt, Extent: extent, Resizable: true}
	n := s.node(path)
	if err := s.run(iotask.NewCreateDataset(n, iotask.CreateDatasetParams{Name: path, Dataset: ds})); err != nil {
		return "", err
	}
	s.datasets[strings.Trim(path, "/")] = ds
	return "ok", nil
}

func (s *session[P]) cmdRmds(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", fmt.Errorf("usage: rmds <path>")
	}
	n := s.node(args[0])
	if err := s.run(iotask.NewDeleteDataset(n)); err != nil {
		return "", err
	}
	delete(s.datasets, strings.Trim(args[0], "/"))
	return "ok", nil
}

func (s *session[P]) cmdWrite(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) < 2 {
		return "", fmt.Errorf("usage: write <path> <v...>")
	}
	path, values := args[0], args[1:]
	ds, ok := s.datasets[strings.Trim(path, "/")]
	if !ok {
		return "", fmt.Errorf("dataset %q was not created by this shell session; \"mkds\" it first", path)
	}
	if uint64(len(values)) != ds.Extent.Elements() {
		return "", fmt.Errorf("expected %d values for extent %v, got %d", ds.Extent.Elements(), ds.Extent, len(values))
	}
	data, err := encodeScalars(ds.Datatype, values)
	if err != nil {
		return "", err
	}
	sel := chunk.Selection{Offset: make(chunk.Offset, len(ds.Extent)), Extent: ds.Extent.Clone()}
	n := s.node(path)
	params := iotask.WriteDatasetParams{Selection: sel, Datatype: ds.Datatype, Data: iotask.SharedData(data)}
	if err := s.run(iotask.NewWriteDataset(n, params)); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *session[P]) cmdRead(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", fmt.Errorf("usage: read <path>")
	}
	path := args[0]
	ds, ok := s.datasets[strings.Trim(path, "/")]
	if !ok {
		n := s.node(path)
		openTask := iotask.NewOpenDataset(n, iotask.OpenDatasetParams{Name: path})
		if err := s.run(openTask); err != nil {
			return "", err
		}
		result := openTask.Result.(iotask.OpenDatasetResult)
		ds = chunk.Dataset{Datatype: result.Datatype, Extent: result.Extent}
		s.datasets[strings.Trim(path, "/")] = ds
	}
	n := s.node(path)
	width := datatype.Size(ds.Datatype)
	if width == 0 {
		return "", fmt.Errorf("datatype %s has no fixed scalar width the shell can decode", ds.Datatype)
	}
	buf := make([]byte, int(ds.Extent.Elements())*width)
	sel := chunk.Selection{Offset: make(chunk.Offset, len(ds.Extent)), Extent: ds.Extent.Clone()}
	params := iotask.ReadDatasetParams{Selection: sel, Datatype: ds.Datatype, Buffer: buf}
	if err := s.run(iotask.NewReadDataset(n, params)); err != nil {
		return "", err
	}
	values, err := decodeScalars(ds.Datatype, buf)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", values), nil
}

func (s *session[P]) cmdAttrSet(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 4 {
		return "", fmt.Errorf("usage: attrset <path> <name> <datatype> <value>")
	}
	path, name, dtName, raw := args[0], args[1], args[2], args[3]
	dt := datatype.Parse(dtName)
	if !dt.Valid() {
		return "", fmt.Errorf("unrecognized datatype %q", dtName)
	}
	value, err := parseScalarAttribute(dt, raw)
	if err != nil {
		return "", err
	}
	n := s.node(path)
	params := iotask.WriteAttributeParams{Name: name, Value: iotask.AttributeValue{Datatype: dt, Value: value}}
	if err := s.run(iotask.NewWriteAttribute(n, params)); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *session[P]) cmdAttrGet(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 2 {
		return "", fmt.Errorf("usage: attrget <path> <name>")
	}
	n := s.node(args[0])
	task := iotask.NewReadAttribute(n, iotask.ReadAttributeParams{Name: args[1]})
	if err := s.run(task); err != nil {
		return "", err
	}
	result := task.Result.(iotask.ReadAttributeResult)
	return fmt.Sprintf("%v (%s)", result.Value.Value, result.Value.Datatype), nil
}

func (s *session[P]) cmdAttrDelete(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 2 {
		return "", fmt.Errorf("usage: rmattr <path> <name>")
	}
	n := s.node(args[0])
	if err := s.run(iotask.NewDeleteAttribute(n, iotask.DeleteAttributeParams{Name: args[1]})); err != nil {
		return "", err
	}
	return "ok", nil
}

func (s *session[P]) cmdListPaths(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	n := s.node(path)
	task := iotask.NewListPaths(n)
	if err := s.run(task); err != nil {
		return "", err
	}
	return fmt.Sprint(task.Result.(iotask.ListPathsResult).Paths), nil
}

func (s *session[P]) cmdListDatasets(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	n := s.node(path)
	task := iotask.NewListDatasets(n)
	if err := s.run(task); err != nil {
		return "", err
	}
	return fmt.Sprint(task.Result.(iotask.ListDatasetsResult).Datasets), nil
}

func (s *session[P]) cmdListAttributes(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	n := s.node(path)
	task := iotask.NewListAttributes(n)
	if err := s.run(task); err != nil {
		return "", err
	}
	return fmt.Sprint(task.Result.(iotask.ListAttributesResult).Attributes), nil
}

func (s *session[P]) cmdChunks(args []string) (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", fmt.Errorf("usage: chunks <path>")
	}
	n := s.node(args[0])
	task := iotask.NewAvailableChunks(n)
	if err := s.run(task); err != nil {
		return "", err
	}
	chunks := task.Result.(iotask.AvailableChunksResult).Chunks
	var b strings.Builder
	for _, c := range chunks {
		fmt.Fprintf(&b, "offset=%v extent=%v writer=%d\n", c.Offset, c.Extent, c.Writer)
	}
	if b.Len() == 0 {
		return "(no chunks)", nil
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (s *session[P]) cmdAdvance() (string, error) {
	if err := s.requireOpen(); err != nil {
		return "", err
	}
	task := iotask.NewAdvance(s.root, iotask.AdvanceParams{Mode: iotask.AdvanceEnd})
	if err := s.run(task); err != nil {
		return "", err
	}
	return fmt.Sprintf("status=%v", task.Result.(iotask.AdvanceResult).Status), nil
}

// finalize is called from the onexit hook and from a clean "exit": it
// flushes and, if a file is still open, closes it, matching spec.md §5's
// "no suspension points, a flush runs to completion or throws" guarantee
// that finalize always gets a chance to run.
func (s *session[P]) finalize() {
	if s.root == nil {
		return
	}
	_ = s.h.Flush(s.backend, handler.FlushParams{Level: iotask.UserFlush, Target: iotask.FlushDisk})
	if s.fileOpen {
		_ = s.run(iotask.NewCloseFile(s.root))
		s.fileOpen = false
	}
}
