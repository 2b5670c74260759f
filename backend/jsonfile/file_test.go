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
	"testing"

	"github.com/openpmd/openpmd-go/chunk"
	"github.com/openpmd/openpmd-go/datatype"
)

func TestCompactThenLoadRebuildsGroupsSetsAndAttributes(t *testing.T) {
	f := NewFile("run", nil, "run")
	registerGroupPath(f, "meshes")
	f.sets["meshes/E"] = &dataset{Datatype: datatype.DOUBLE.String(), Extent: chunk.Extent{2}, Data: le64(1, 2)}
	f.attributes["meshes/E/unitSI"] = attributeRecord{Datatype: datatype.DOUBLE.String(), Value: mustEncodeFloat(t, 1.0)}

	records, err := f.compact()
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	blob, err := writeRecords(records)
	if err != nil {
		t.Fatalf("write records: %v", err)
	}

	reloaded := NewFile("run", nil, "run")
	if err := reloaded.load(blob); err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reloaded.groups["meshes"] {
		t.Fatalf("expected group 'meshes' to survive the round trip")
	}
	ds, ok := reloaded.sets["meshes/E"]
	if !ok {
		t.Fatalf("expected dataset 'meshes/E' to survive the round trip")
	}
	if string(ds.Data) != string(le64(1, 2)) {
		t.Fatalf("dataset bytes mismatch: got %v", ds.Data)
	}
	if _, ok := reloaded.attributes["meshes/E/unitSI"]; !ok {
		t.Fatalf("expected attribute to survive the round trip")
	}
}

func mustEncodeFloat(t *testing.T, v float64) []byte {
	t.Helper()
	raw, err := encodeAttributeValue(datatype.DOUBLE, v)
	if err != nil {
		t.Fatalf("encode attribute: %v", err)
	}
	return raw
}
