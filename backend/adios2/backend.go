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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path"
	"reflect"
	"sort"
	"strings"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/config"
	"github.com/openpmd/openpmd-go/datatype"
	"github.com/openpmd/openpmd-go/ioerror"
	"github.com/openpmd/openpmd-go/iotask"
	"github.com/openpmd/openpmd-go/media"
	"github.com/openpmd/openpmd-go/monitor"
	"github.com/openpmd/openpmd-go/operator"
	"github.com/openpmd/openpmd-go/writable"
)

// Backend implements handler.Backend[Position] (spec §4.4): one instance
// drives every file opened against a given ADIOS2 engine configuration.
type Backend struct {
	Medium media.Medium
	Config config.ADIOS2
	Engine Engine
	// Monitor, if non-nil, receives a stream-status Event on every
	// CLOSE_FILE and ADVANCE (SPEC_FULL.md §4.12); purely observational.
	Monitor *monitor.Registry
	Windows bool
	Adios29 bool

	files map[string]*File
}

// New constructs a Backend bound to medium for the given engine/config.
func New(medium media.Medium, cfg config.ADIOS2, engine Engine) *Backend {
	return &Backend{Medium: medium, Config: cfg, Engine: engine, files: make(map[string]*File)}
}

func (b *Backend) reportStatus(f *File) {
	if b.Monitor == nil {
		return
	}
	b.Monitor.Report(monitor.Event{File: f.Name, Status: f.stream.Status.String(), SpanCount: int(f.spans.Len())})
}

// Execute dispatches one task to the file it targets, implementing
// handler.Backend[Position].
func (b *Backend) Execute(task *iotask.Task[Position]) error {
	switch task.Kind {
	case iotask.CreateFile:
		return b.createFile(task)
	case iotask.CheckFile:
		return b.checkFile(task)
	case iotask.OpenFile:
		return b.openFile(task)
	case iotask.CloseFile:
		return b.closeFile(task)
	case iotask.DeleteFile:
		return b.deleteFile(task)
	case iotask.CreatePath:
		return b.createPath(task)
	case iotask.OpenPath, iotask.ClosePath:
		return nil // no engine-side effect beyond the Writable graph itself
	case iotask.DeletePath:
		return &ioerror.OperationUnsupportedInBackend{Backend: "adios2", Details: "DELETE_PATH has no ADIOS2 analog (no intrinsic group representation)"}
	case iotask.CreateDataset:
		return b.createDataset(task)
	case iotask.ExtendDataset:
		return b.extendDataset(task)
	case iotask.OpenDataset:
		return b.openDataset(task)
	case iotask.DeleteDataset:
		return b.deleteDataset(task)
	case iotask.WriteDataset:
		return b.writeDataset(task)
	case iotask.ReadDataset:
		return b.readDataset(task)
	case iotask.GetBufferView:
		return b.getBufferView(task)
	case iotask.WriteAttribute:
		return b.writeAttribute(task)
	case iotask.ReadAttribute:
		return b.readAttribute(task)
	case iotask.DeleteAttribute:
		return b.deleteAttribute(task)
	case iotask.ListPaths:
		return b.listPaths(task)
	case iotask.ListDatasets:
		return b.listDatasets(task)
	case iotask.ListAttributes:
		return b.listAttributes(task)
	case iotask.Advance:
		return b.advance(task)
	case iotask.AvailableChunks:
		return b.availableChunks(task)
	case iotask.Touch:
		return nil
	case iotask.Deregister:
		task.Target.Deregister()
		return nil
	default:
		return &ioerror.Internal{Message: fmt.Sprintf("adios2: unhandled task kind %s", task.Kind)}
	}
}

func (b *Backend) fileOf(w *writable.Writable[Position]) (*File, error) {
	if w == nil || w.File == nil {
		return nil, &ioerror.Internal{Message: "adios2: task target has no file handle"}
	}
	f, ok := b.files[w.File.Name()]
	if !ok {
		return nil, &ioerror.Internal{Message: fmt.Sprintf("adios2: file %q not open", w.File.Name())}
	}
	return f, nil
}

func (b *Backend) createFile(task *iotask.Task[Position]) error {
	p := task.Params.(iotask.CreateFileParams)
	mode := ResolveAccessMode(iotask.Create, false, true, b.Windows, b.Config.Engine.AccessMode)
	useSteps := true
	f := NewFile(p.Name, b.Medium, p.Name, b.Engine, mode, useSteps,
		b.Config.UseGroupTable, b.Config.UseSpanBasedPut, b.Config.ModifiableAttributes, b.Adios29)
	b.files[p.Name] = f
	task.Target.SetFilePosition(Position{})
	task.Target.MarkWritten()
	return nil
}

func (b *Backend) checkFile(task *iotask.Task[Position]) error {
	p := task.Params.(iotask.CheckFileParams)
	r, err := b.Medium.Open(p.Name)
	exists := err == nil
	if exists {
		r.Close()
	}
	task.Result = iotask.CheckFileResult{Exists: exists}
	return nil
}

func (b *Backend) openFile(task *iotask.Task[Position]) error {
	p := task.Params.(iotask.OpenFileParams)
	names, err := b.Medium.List(p.Name)
	if err != nil || len(names) == 0 {
		return &ioerror.ReadError{Object: ioerror.File, Reason: ioerror.NotFound, Name: p.Name}
	}
	mode := ResolveAccessMode(iotask.ReadOnly, true, true, b.Windows, b.Config.Engine.AccessMode)
	f := NewFile(p.Name, b.Medium, p.Name, b.Engine, mode, true,
		b.Config.UseGroupTable, b.Config.UseSpanBasedPut, b.Config.ModifiableAttributes, b.Adios29)
	if err := b.loadExisting(f); err != nil {
		return err
	}
	b.files[p.Name] = f
	task.Target.SetFilePosition(Position{})
	task.Target.MarkWritten()
	task.Result = iotask.OpenFileResult{Preference: iotask.ParseUpFront}
	return nil
}

// loadExisting reads back every persisted variable/attribute blob (plus
// the shape/datatype sidecars file.go's persist wrote alongside them) for
// a just-opened file, reconstructing the in-process state a fresh ADIOS2
// metadata parse would populate.
func (b *Backend) loadExisting(f *File) error {
	names, err := b.Medium.List(f.mediumName + "/")
	if err != nil {
		return err
	}
	// Metadata sidecars and variable blobs are read in a single List pass
	// in whatever order the medium returns them (alphabetical on Local,
	// which puts any variable whose name sorts before "meta/" ahead of its
	// own sidecar).
	// A variable's operator chain must be known before its bytes can be
	// decompressed, so raw variable blobs are buffered here and only
	// reversed once every meta/ sidecar in the batch has been parsed.
	compressed := make(map[string][]byte)
	for _, name := range names {
		rel := strings.TrimPrefix(name, f.mediumName+"/")
		r, err := b.Medium.Open(name)
		if err != nil {
			continue
		}
		buf, err := readAll(r)
		r.Close()
		if err != nil {
			return err
		}
		switch {
		case strings.HasPrefix(rel, "attr/"):
			attrName := strings.TrimPrefix(rel, "attr/")
			var meta attributeMeta
			if err := json.Unmarshal(buf, &meta); err != nil {
				return &ioerror.UnsupportedData{Message: "adios2: decoding persisted attribute " + attrName + ": " + err.Error()}
			}
			f.attributes[attrName] = []byte(meta.Value)
			f.attributeParams[attrName] = Params{"datatype": meta.Datatype}
		case strings.HasPrefix(rel, "meta/") && strings.HasSuffix(rel, ".json"):
			variable := strings.TrimSuffix(strings.TrimPrefix(rel, "meta/"), ".json")
			var meta variableMeta
			if err := json.Unmarshal(buf, &meta); err != nil {
				return &ioerror.UnsupportedData{Message: "adios2: decoding persisted dataset metadata for " + variable + ": " + err.Error()}
			}
			f.datatypes[variable] = meta.Datatype
			f.shapes[variable] = meta.Shape
			f.operators[variable] = operator.Chain(meta.Operators)
		default:
			compressed[rel] = buf
		}
	}
	for variable, buf := range compressed {
		raw, err := f.operators[variable].Reverse(buf)
		if err != nil {
			return &ioerror.UnsupportedData{Message: "adios2: reversing operator chain for " + variable + ": " + err.Error()}
		}
		f.variables[variable] = raw
	}
	return nil
}

func readAll(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) closeFile(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	drainUniquePutQueue(f)
	f.commitPendingWrites()
	if err := f.persist(); err != nil {
		return err
	}
	b.reportStatus(f)
	delete(b.files, f.Name)
	return nil
}

func (b *Backend) deleteFile(task *iotask.Task[Position]) error {
	p := task.Params.(iotask.DeleteFileParams)
	delete(b.files, p.Name)
	names, err := b.Medium.List(p.Name + "/")
	if err != nil {
		return err
	}
	for _, n := range names {
		if err := b.Medium.Remove(n); err != nil {
			return err
		}
	}
	// Best effort: on a flat-namespace medium (S3, Ceph) there is no
	// separate object at the bare prefix to remove; on Local it cleans
	// up the now-empty directory tree. Either way its failure doesn't
	// indicate the delete as a whole failed.
	b.Medium.Remove(p.Name)
	return nil
}

func (b *Backend) createPath(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	task.Target.SetAndGetFilePosition(Synthesize)
	task.Target.MarkWritten()
	if !f.useGroupTable {
		return nil
	}
	entries, err := f.groups.MarkActive(task.Target, f.stream.Step, func(w *writable.Writable[Position]) string {
		pos, _ := w.SetAndGetFilePosition(Synthesize)
		return pos.GroupPath
	})
	if err != nil {
		return err
	}
	for _, e := range entries {
		raw, _ := json.Marshal(e.LastActive)
		f.attributes[attributeName(e.GroupPath)] = raw
		f.attributeParams[attributeName(e.GroupPath)] = Params{"datatype": "UINT64"}
	}
	return nil
}

func (b *Backend) createDataset(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.CreateDatasetParams)
	if err := p.Dataset.Validate(); err != nil {
		return err
	}
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	variable := pos.VariableName()
	f.shapes[variable] = p.Dataset.Extent
	f.datatypes[variable] = p.Dataset.Datatype.String()
	var chain []chunk.OperatorSpec = p.Dataset.Operators
	f.operators[variable] = chain
	if dim, ok := p.Dataset.JoinedIndex(); ok {
		f.joinedDim[variable] = dim
	} else {
		delete(f.joinedDim, variable)
	}
	task.Target.MarkWritten()
	f.availVariables.Invalidate()
	return nil
}

func (b *Backend) extendDataset(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.ExtendDatasetParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	f.shapes[pos.VariableName()] = p.NewExtent
	return nil
}

func (b *Backend) openDataset(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	_ = task.Params.(iotask.OpenDatasetParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	variable := pos.VariableName()
	shape, ok := f.shapes[variable]
	if !ok {
		return &ioerror.ReadError{Object: ioerror.Dataset, Reason: ioerror.NotFound, Name: variable}
	}
	dt := datatype.Parse(f.datatypes[variable])
	task.Target.MarkWritten()
	task.Result = iotask.OpenDatasetResult{Datatype: dt, Extent: shape}
	return nil
}

func (b *Backend) deleteDataset(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	variable := pos.VariableName()
	delete(f.shapes, variable)
	delete(f.datatypes, variable)
	delete(f.variables, variable)
	delete(f.pendingWrites, variable)
	f.availVariables.Invalidate()
	return nil
}

func (b *Backend) writeDataset(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.WriteDatasetParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	variable := pos.VariableName()
	var joinedDim *int
	if dim, ok := f.joinedDim[variable]; ok {
		joinedDim = &dim
	}
	if shape, ok := f.shapes[variable]; ok {
		if err := p.Selection.ValidateAgainstShape(shape, joinedDim); err != nil {
			return err
		}
	}
	if f.stream.NeedsImplicitStep() {
		if _, err := f.stream.Advance(iotask.AdvanceBegin, false); err != nil {
			return &ioerror.WrongAPIUsage{Message: err.Error()}
		}
	}
	if p.Data.IsUnique() {
		BufferedUniquePtrPut{Variable: variable, Data: p.Data.Bytes()}.run(f)
	} else {
		BufferedPut{Variable: variable, Data: p.Data.Bytes()}.run(f)
	}
	f.chunks[variable] = append(f.chunks[variable], chunk.WrittenChunkInfo{
		Offset: p.Selection.Offset, Extent: p.Selection.Extent,
	})
	if joinedDim != nil {
		assembleJoinedShape(f, variable, *joinedDim)
	}
	return nil
}

// assembleJoinedShape recomputes variable's global shape along dim from
// every chunk submitted so far, in submission order, and backfills each
// chunk's offset along dim to match (spec §4.3's joined-dimension
// assembly, §8 property 3: a joined dataset's global extent is the sum
// of each writer's contribution). The offset a writer submits along a
// joined dimension is meaningless on its own (ValidateAgainstShape skips
// it); this is what AVAILABLE_CHUNKS and OPEN_DATASET actually report.
func assembleJoinedShape(f *File, variable string, dim int) {
	chunks := f.chunks[variable]
	contributions := make([]uint64, len(chunks))
	for i, c := range chunks {
		contributions[i] = c.Extent[dim]
	}
	shape, offsets := chunk.AssembleJoined(f.shapes[variable], dim, contributions)
	f.shapes[variable] = shape
	for i := range chunks {
		off := chunks[i].Offset.Clone()
		for len(off) <= dim {
			off = append(off, 0)
		}
		off[dim] = offsets[i]
		chunks[i].Offset = off
	}
}

func (b *Backend) readDataset(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.ReadDatasetParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	variable := pos.VariableName()
	// f.variables/f.pendingWrites always hold raw, operator-free bytes:
	// the compression chain is applied once, at persist() time, when the
	// bytes actually leave the process; a same-session read here sees
	// exactly what was Put, and a post-reopen read sees what loadExisting
	// already reversed out of the on-disk blob.
	data, ok := f.variables[variable]
	if !ok {
		data, ok = f.pendingWrites[variable]
	}
	if !ok {
		return &ioerror.ReadError{Object: ioerror.Dataset, Reason: ioerror.NotFound, Name: variable}
	}
	copy(p.Buffer, data)
	return nil
}

func (b *Backend) getBufferView(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.GetBufferViewParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	variable := pos.VariableName()
	hasOperators := len(f.operators[variable]) > 0
	if !Supported(b.Engine, hasOperators, f.spanBasedPut) {
		task.Result = iotask.GetBufferViewResult{Supported: false}
		return nil
	}
	if p.Update {
		if p.ViewIndex == nil {
			return &ioerror.WrongAPIUsage{Message: "GET_BUFFER_VIEW update=true requires a ViewIndex"}
		}
		span, ok := f.spans.Update(*p.ViewIndex)
		if !ok {
			return &ioerror.WrongAPIUsage{Message: "GET_BUFFER_VIEW: unknown or invalidated span index"}
		}
		task.Result = iotask.GetBufferViewResult{Span: span, Supported: true}
		return nil
	}
	size := p.Selection.Extent.Elements() * uint64(datatype.Size(p.Datatype))
	buf := make([]byte, size)
	f.pendingWrites[variable] = buf
	span := f.spans.New(func() []byte { return f.pendingWrites[variable] })
	task.Result = iotask.GetBufferViewResult{Span: span, Supported: true}
	return nil
}

func (b *Backend) writeAttribute(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.WriteAttributeParams)
	if err := p.Value.Validate(); err != nil {
		return &ioerror.UnsupportedData{Message: err.Error()}
	}
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	name := path.Join(pos.GroupPath, p.Name)

	if f.stream.Status == DuringStep && f.committedThisFile(name) && !f.uncommittedAttributes[name] {
		if !b.Adios29 || !f.modifiableAttrs {
			// spec §4.4.9: modification attempts on a committed
			// (previous-step) attribute in streaming mode warn and
			// return rather than erroring.
			log.Printf("adios2: ignoring modification of attribute %q committed in an earlier step", name)
			return nil
		}
	}

	raw, err := json.Marshal(p.Value.Value)
	if err != nil {
		return &ioerror.UnsupportedData{Message: err.Error()}
	}
	BufferedAttributeWrite{Name: name, Value: Params{"datatype": p.Value.Datatype.String()}, Raw: raw}.run(f)
	if p.Value.Datatype == datatype.BOOL {
		f.attributes[BooleanMarkerName(name)] = []byte("true")
	}
	f.uncommittedAttributes[name] = true
	f.availAttributes.Invalidate()
	return nil
}

// committedThisFile reports whether name already has a value from a
// prior step (a crude stand-in for ADIOS2's per-step attribute
// versioning: any existing value not marked uncommitted this step).
func (f *File) committedThisFile(name string) bool {
	_, ok := f.attributes[name]
	return ok
}

func (b *Backend) readAttribute(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.ReadAttributeParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	name := path.Join(pos.GroupPath, p.Name)
	raw, ok := f.attributes[name]
	if !ok {
		return &ioerror.NoSuchAttribute{Name: name}
	}
	params := f.attributeParams[name]
	dt := datatype.Parse(params["datatype"])
	value, err := decodeAttribute(dt, raw)
	if err != nil {
		return &ioerror.UnsupportedData{Message: err.Error()}
	}
	task.Result = iotask.ReadAttributeResult{Value: iotask.AttributeValue{Datatype: dt, Value: value}}
	return nil
}

func (b *Backend) deleteAttribute(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.DeleteAttributeParams)
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	name := path.Join(pos.GroupPath, p.Name)
	delete(f.attributes, name)
	delete(f.attributeParams, name)
	f.availAttributes.Invalidate()
	return nil
}

func (b *Backend) listPaths(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	prefix := groupPathOf(task.Target)
	if f.useGroupTable {
		task.Result = iotask.ListPathsResult{Paths: f.groups.ListChildren(prefix, f.stream.Step)}
		return nil
	}
	seen := make(map[string]bool)
	for variable := range f.shapes {
		if child, ok := directChild(variable, prefix); ok {
			seen[child] = true
		}
	}
	task.Result = iotask.ListPathsResult{Paths: sortedKeys(seen)}
	return nil
}

func (b *Backend) listDatasets(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	prefix := groupPathOf(task.Target)
	var out []string
	for variable := range f.shapes {
		rest, ok := directChild(variable, prefix)
		if ok {
			continue // an intermediate group, not a leaf dataset
		}
		if !strings.HasPrefix(variable, joinPrefix(prefix)) {
			continue
		}
		rest = strings.TrimPrefix(strings.TrimPrefix(variable, prefix), "/")
		if rest != "" {
			out = append(out, rest)
		}
	}
	sort.Strings(out)
	task.Result = iotask.ListDatasetsResult{Datasets: out}
	return nil
}

// joinPrefix normalizes prefix for a strict path-boundary HasPrefix check
// (so "meshes/E" never matches a sibling variable like "meshes/E2/x").
func joinPrefix(prefix string) string {
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func (b *Backend) listAttributes(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	prefix := groupPathOf(task.Target)
	var out []string
	for name := range f.attributes {
		if IsGroupTableAttribute(name) {
			continue
		}
		if _, ok := IsBooleanMarker(name); ok {
			continue
		}
		if prefix != "" && !strings.HasPrefix(name, prefix+"/") {
			continue
		}
		rest := strings.TrimPrefix(strings.TrimPrefix(name, prefix), "/")
		if rest != "" && !strings.Contains(rest, "/") {
			out = append(out, rest)
		}
	}
	sort.Strings(out)
	task.Result = iotask.ListAttributesResult{Attributes: out}
	return nil
}

func (b *Backend) advance(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	p := task.Params.(iotask.AdvanceParams)
	status, err := f.stream.Advance(p.Mode, false)
	if err != nil {
		return &ioerror.WrongAPIUsage{Message: err.Error()}
	}
	b.reportStatus(f)
	task.Result = iotask.AdvanceResult{Status: status}
	return nil
}

func (b *Backend) availableChunks(task *iotask.Task[Position]) error {
	f, err := b.fileOf(task.Target)
	if err != nil {
		return err
	}
	pos, err := task.Target.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return err
	}
	task.Result = iotask.AvailableChunksResult{Chunks: f.chunks[pos.VariableName()]}
	return nil
}

func groupPathOf(w *writable.Writable[Position]) string {
	pos, err := w.SetAndGetFilePosition(Synthesize)
	if err != nil {
		return ""
	}
	return pos.GroupPath
}

func directChild(variable, prefix string) (string, bool) {
	if prefix != "" && !strings.HasPrefix(variable, prefix+"/") {
		return "", false
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(variable, prefix), "/")
	i := strings.IndexByte(rest, '/')
	if i < 0 {
		return "", false // it's a leaf dataset, not an intermediate group
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

func decodeAttribute(dt datatype.Datatype, raw []byte) (any, error) {
	target := datatype.ZeroValue(dt) // always a pointer, e.g. *int32
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, err
	}
	return reflect.ValueOf(target).Elem().Interface(), nil
}
