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
	"testing"

	"github.com/openpmd/openpmd-go/datatype"
)

func TestEncodeDecodeComplexScalarRoundTrips(t *testing.T) {
	raw, err := encodeAttributeValue(datatype.CDOUBLE, complex128(complex(3, -4)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeAttributeValue(datatype.CDOUBLE, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(complex128) != complex(3, -4) {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeDecodeComplexVectorRoundTrips(t *testing.T) {
	values := []complex64{complex(1, 2), complex(-1, 0.5)}
	raw, err := encodeAttributeValue(datatype.VEC_CFLOAT, values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeAttributeValue(datatype.VEC_CFLOAT, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	decoded := got.([]complex64)
	if len(decoded) != 2 || decoded[0] != values[0] || decoded[1] != values[1] {
		t.Fatalf("got %v", decoded)
	}
}

func TestBooleanEncodesAsEnumNotJSONLiteral(t *testing.T) {
	raw, err := encodeAttributeValue(datatype.BOOL, true)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var n int8
	if err := json.Unmarshal(raw, &n); err != nil {
		t.Fatalf("expected TRUE to encode as the i8 enum value 1, got %s: %v", raw, err)
	}
	if n != 1 {
		t.Fatalf("expected enum value 1, got %d", n)
	}
	got, err := decodeAttributeValue(datatype.BOOL, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.(bool) != true {
		t.Fatalf("got %v", got)
	}
}

func TestDecodeLegacyTripleFallsBackFromObjectShape(t *testing.T) {
	raw := []byte(`{"x":1.5,"y":2.5,"z":3.5}`)
	got, err := decodeAttributeValue(datatype.VEC_DOUBLE, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	values := got.([]float64)
	if len(values) != 3 || values[0] != 1.5 || values[1] != 2.5 || values[2] != 3.5 {
		t.Fatalf("got %v", values)
	}
}

func TestDecodePlainArrayStillWorksAlongsideLegacyFallback(t *testing.T) {
	raw := []byte(`[1,2,3]`)
	got, err := decodeAttributeValue(datatype.VEC_DOUBLE, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	values := got.([]float64)
	if len(values) != 3 || values[0] != 1 || values[1] != 2 || values[2] != 3 {
		t.Fatalf("got %v", values)
	}
}
