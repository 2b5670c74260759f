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
	"reflect"

	"github.com/openpmd/openpmd-go/datatype"
)

// complexPair is the on-disk shape of HDF5's compound complex type (spec
// §4.5: "complex numbers are {r,i} compound types"), substituting for the
// H5Tinsert-built compound hid_t a real binding would create.
type complexPair struct {
	R float64 `json:"r"`
	I float64 `json:"i"`
}

// boolEnum is the on-disk shape of HDF5's boolean enum (spec §4.5:
// "Booleans are the {TRUE,FALSE} enum"), matching h5py's own convention
// of an i8 with TRUE=1, FALSE=0 so files stay cross-readable.
type boolEnum int8

const (
	enumFalse boolEnum = 0
	enumTrue  boolEnum = 1
)

// encodeAttributeValue marshals an attribute's value into the wire shape
// its datatype class demands: the {r,i} compound for complex numbers, the
// TRUE/FALSE enum for booleans, and plain JSON for everything else.
func encodeAttributeValue(dt datatype.Datatype, value any) ([]byte, error) {
	switch dt {
	case datatype.CFLOAT:
		c, _ := value.(complex64)
		return json.Marshal(complexPair{R: float64(real(c)), I: float64(imag(c))})
	case datatype.CDOUBLE, datatype.CLONG_DOUBLE:
		c, _ := value.(complex128)
		return json.Marshal(complexPair{R: real(c), I: imag(c)})
	case datatype.VEC_CFLOAT:
		cs, _ := value.([]complex64)
		pairs := make([]complexPair, len(cs))
		for i, c := range cs {
			pairs[i] = complexPair{R: float64(real(c)), I: float64(imag(c))}
		}
		return json.Marshal(pairs)
	case datatype.VEC_CDOUBLE, datatype.VEC_CLONG_DOUBLE:
		cs, _ := value.([]complex128)
		pairs := make([]complexPair, len(cs))
		for i, c := range cs {
			pairs[i] = complexPair{R: real(c), I: imag(c)}
		}
		return json.Marshal(pairs)
	case datatype.BOOL:
		b, _ := value.(bool)
		if b {
			return json.Marshal(enumTrue)
		}
		return json.Marshal(enumFalse)
	case datatype.VEC_BOOL:
		bs, _ := value.([]bool)
		enums := make([]boolEnum, len(bs))
		for i, b := range bs {
			if b {
				enums[i] = enumTrue
			}
		}
		return json.Marshal(enums)
	default:
		return json.Marshal(value)
	}
}

// decodeAttributeValue is the inverse of encodeAttributeValue.
func decodeAttributeValue(dt datatype.Datatype, raw []byte) (any, error) {
	switch dt {
	case datatype.CFLOAT:
		var p complexPair
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return complex(float32(p.R), float32(p.I)), nil
	case datatype.CDOUBLE, datatype.CLONG_DOUBLE:
		var p complexPair
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return complex(p.R, p.I), nil
	case datatype.VEC_CFLOAT:
		var pairs []complexPair
		if err := json.Unmarshal(raw, &pairs); err != nil {
			return nil, err
		}
		out := make([]complex64, len(pairs))
		for i, p := range pairs {
			out[i] = complex(float32(p.R), float32(p.I))
		}
		return out, nil
	case datatype.VEC_CDOUBLE, datatype.VEC_CLONG_DOUBLE:
		var pairs []complexPair
		if err := json.Unmarshal(raw, &pairs); err != nil {
			return nil, err
		}
		out := make([]complex128, len(pairs))
		for i, p := range pairs {
			out[i] = complex(p.R, p.I)
		}
		return out, nil
	case datatype.BOOL:
		var e boolEnum
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return e != enumFalse, nil
	case datatype.VEC_BOOL:
		var enums []boolEnum
		if err := json.Unmarshal(raw, &enums); err != nil {
			return nil, err
		}
		out := make([]bool, len(enums))
		for i, e := range enums {
			out[i] = e != enumFalse
		}
		return out, nil
	default:
		target := datatype.ZeroValue(dt)
		if err := json.Unmarshal(raw, target); err == nil {
			return reflect.ValueOf(target).Elem().Interface(), nil
		}
		if triple, ok := decodeLegacyTriple(dt, raw); ok {
			return triple, nil
		}
		target = datatype.ZeroValue(dt)
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}
		return reflect.ValueOf(target).Elem().Interface(), nil
	}
}

// legacyTriple is the libSplash convention for a 3-vector attribute (e.g.
// an older gridSpacing/position written as three separate named fields
// rather than one array), which a file written by an older openPMD-api
// build may still carry (spec §4.5's note on compatibility with
// pre-group-table layouts).
type legacyTriple struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// decodeLegacyTriple recognizes the {x,y,z} object shape and converts it
// to the []float64/[]float32 a VEC_DOUBLE/VEC_FLOAT attribute expects,
// used only as a fallback when the plain array decode above fails.
func decodeLegacyTriple(dt datatype.Datatype, raw []byte) (any, bool) {
	if dt != datatype.VEC_DOUBLE && dt != datatype.VEC_FLOAT {
		return nil, false
	}
	var t legacyTriple
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false
	}
	if dt == datatype.VEC_FLOAT {
		return []float32{float32(t.X), float32(t.Y), float32(t.Z)}, true
	}
	return []float64{t.X, t.Y, t.Z}, true
}
