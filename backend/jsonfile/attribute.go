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

	"github.com/openpmd/openpmd-go/datatype"
)

// complexPair is the JSON shape a complex scalar/vector element round-trips
// through: encoding/json has no native complex64/complex128 support, so
// this adapter writes each complex value as a plain {r,i} object to keep
// the dump legible.
type complexPair struct {
	R float64 `json:"r,omitempty"`
	I float64 `json:"i,omitempty"`
}

func encodeAttributeValue(dt datatype.Datatype, value any) (json.RawMessage, error) {
	switch dt {
	case datatype.CFLOAT, datatype.CDOUBLE, datatype.CLONG_DOUBLE:
		c, ok := toComplex128(value)
		if !ok {
			return nil, fmt.Errorf("jsonfile: %v attribute value has unexpected type %T", dt, value)
		}
		return json.Marshal(complexPair{R: real(c), I: imag(c)})
	case datatype.VEC_CFLOAT, datatype.VEC_CDOUBLE, datatype.VEC_CLONG_DOUBLE:
		pairs, err := toComplexSlice(value)
		if err != nil {
			return nil, err
		}
		return json.Marshal(pairs)
	default:
		return json.Marshal(value)
	}
}

func decodeAttributeValue(dt datatype.Datatype, raw json.RawMessage) (any, error) {
	switch dt {
	case datatype.CFLOAT, datatype.CDOUBLE, datatype.CLONG_DOUBLE:
		var p complexPair
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		c := complex(p.R, p.I)
		if dt == datatype.CFLOAT {
			return complex64(c), nil
		}
		return c, nil
	case datatype.VEC_CFLOAT:
		var pairs []complexPair
		if err := json.Unmarshal(raw, &pairs); err != nil {
			return nil, err
		}
		out := make([]complex64, len(pairs))
		for i, p := range pairs {
			out[i] = complex64(complex(p.R, p.I))
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
	default:
		target := datatype.ZeroValue(dt)
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}
		return derefZeroValue(target), nil
	}
}

func toComplex128(value any) (complex128, bool) {
	switch v := value.(type) {
	case complex128:
		return v, true
	case complex64:
		return complex128(v), true
	default:
		return 0, false
	}
}

func toComplexSlice(value any) ([]complexPair, error) {
	switch v := value.(type) {
	case []complex64:
		out := make([]complexPair, len(v))
		for i, c := range v {
			out[i] = complexPair{R: float64(real(c)), I: float64(imag(c))}
		}
		return out, nil
	case []complex128:
		out := make([]complexPair, len(v))
		for i, c := range v {
			out[i] = complexPair{R: real(c), I: imag(c)}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("jsonfile: expected a complex vector, got %T", value)
	}
}

// derefZeroValue unwraps the pointer datatype.ZeroValue hands back so
// callers see the plain value, not *T.
func derefZeroValue(target any) any {
	switch v := target.(type) {
	case *string:
		return *v
	case *bool:
		return *v
	case *int8:
		return *v
	case *uint8:
		return *v
	case *int16:
		return *v
	case *uint16:
		return *v
	case *int32:
		return *v
	case *uint32:
		return *v
	case *int64:
		return *v
	case *uint64:
		return *v
	case *float32:
		return *v
	case *float64:
		return *v
	case *[]string:
		return *v
	case *[]bool:
		return *v
	case *[]int8:
		return *v
	case *[]uint8:
		return *v
	case *[]int16:
		return *v
	case *[]uint16:
		return *v
	case *[]int32:
		return *v
	case *[]uint32:
		return *v
	case *[]int64:
		return *v
	case *[]uint64:
		return *v
	case *[]float32:
		return *v
	case *[]float64:
		return *v
	case *[7]float64:
		return *v
	case *datatype.Datatype:
		return *v
	default:
		return target
	}
}
