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
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/openpmd/openpmd-go/datatype"
)

// encodeDataset renders a dataset's raw little-endian bytes as a readable
// JSON array of numbers for the fixed-width scalar kinds a real JSON dump
// is meant to be legible for, falling back to a base64-wrapped object for
// the kinds with no natural fixed-width JSON number representation
// (LONG_DOUBLE, the complex kinds, STRING): a JSON dump of those is still
// a valid file, just not a humanly-readable one.
func encodeDataset(scalar datatype.Datatype, raw []byte) (json.RawMessage, error) {
	values, err := decodeNumbers(scalar, raw)
	if err != nil {
		return json.Marshal(map[string]string{"base64": base64.StdEncoding.EncodeToString(raw)})
	}
	return json.Marshal(values)
}

// decodeDataset is encodeDataset's inverse.
func decodeDataset(scalar datatype.Datatype, raw json.RawMessage) ([]byte, error) {
	var wrapped map[string]string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if b64, ok := wrapped["base64"]; ok {
			return base64.StdEncoding.DecodeString(b64)
		}
	}
	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("jsonfile: decoding dataset body: %w", err)
	}
	return encodeNumbers(scalar, values)
}

// decodeNumbers reinterprets raw as a little-endian array of scalar and
// widens every element to float64 for a uniform JSON number rendering.
// Returns an error for kinds with no fixed Go numeric counterpart.
func decodeNumbers(scalar datatype.Datatype, raw []byte) ([]float64, error) {
	size := datatype.Size(scalar)
	if size == 0 || size > 8 || scalar == datatype.CFLOAT {
		return nil, fmt.Errorf("jsonfile: %v has no plain numeric JSON form", scalar)
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("jsonfile: buffer length %d not a multiple of element size %d", len(raw), size)
	}
	n := len(raw) / size
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		chunk := raw[i*size : (i+1)*size]
		out[i] = scalarToFloat64(scalar, chunk)
	}
	return out, nil
}

func scalarToFloat64(scalar datatype.Datatype, chunk []byte) float64 {
	switch scalar {
	case datatype.CHAR, datatype.SCHAR:
		return float64(int8(chunk[0]))
	case datatype.UCHAR, datatype.BOOL:
		return float64(chunk[0])
	case datatype.SHORT:
		return float64(int16(binary.LittleEndian.Uint16(chunk)))
	case datatype.USHORT:
		return float64(binary.LittleEndian.Uint16(chunk))
	case datatype.INT:
		return float64(int32(binary.LittleEndian.Uint32(chunk)))
	case datatype.UINT:
		return float64(binary.LittleEndian.Uint32(chunk))
	case datatype.FLOAT:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
	case datatype.LONG, datatype.LONGLONG:
		return float64(int64(binary.LittleEndian.Uint64(chunk)))
	case datatype.ULONG, datatype.ULONGLONG:
		return float64(binary.LittleEndian.Uint64(chunk))
	case datatype.DOUBLE:
		return math.Float64frombits(binary.LittleEndian.Uint64(chunk))
	default:
		return 0
	}
}

// encodeNumbers is decodeNumbers' inverse: narrows each float64 back to the
// scalar's native little-endian byte width.
func encodeNumbers(scalar datatype.Datatype, values []float64) ([]byte, error) {
	size := datatype.Size(scalar)
	if size == 0 || size > 8 {
		return nil, fmt.Errorf("jsonfile: %v has no plain numeric JSON form", scalar)
	}
	out := make([]byte, size*len(values))
	for i, v := range values {
		chunk := out[i*size : (i+1)*size]
		floatToScalarBytes(scalar, v, chunk)
	}
	return out, nil
}

func floatToScalarBytes(scalar datatype.Datatype, v float64, chunk []byte) {
	switch scalar {
	case datatype.CHAR, datatype.SCHAR:
		chunk[0] = byte(int8(v))
	case datatype.UCHAR, datatype.BOOL:
		chunk[0] = byte(uint8(v))
	case datatype.SHORT:
		binary.LittleEndian.PutUint16(chunk, uint16(int16(v)))
	case datatype.USHORT:
		binary.LittleEndian.PutUint16(chunk, uint16(v))
	case datatype.INT:
		binary.LittleEndian.PutUint32(chunk, uint32(int32(v)))
	case datatype.UINT:
		binary.LittleEndian.PutUint32(chunk, uint32(v))
	case datatype.FLOAT:
		binary.LittleEndian.PutUint32(chunk, math.Float32bits(float32(v)))
	case datatype.LONG, datatype.LONGLONG:
		binary.LittleEndian.PutUint64(chunk, uint64(int64(v)))
	case datatype.ULONG, datatype.ULONGLONG:
		binary.LittleEndian.PutUint64(chunk, uint64(v))
	case datatype.DOUBLE:
		binary.LittleEndian.PutUint64(chunk, math.Float64bits(v))
	}
}
