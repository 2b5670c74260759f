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
package iotask

import (
	"fmt"

	"github.com/openpmd/openpmd-go/datatype"
)

// AttributeValue pairs a closed Datatype tag with the Go value it actually
// holds (spec §3's attribute variant: "the stored tag matches the active
// variant"). Value's concrete Go type is determined by Datatype: a scalar
// kind holds its corresponding Go scalar, a vector kind holds a slice of
// that scalar's Go type, ARR_DBL_7 holds a [7]float64, STRING holds a
// string, BOOL holds a bool, VEC_STRING holds []string.
type AttributeValue struct {
	Datatype datatype.Datatype
	Value    any
}

// Validate checks that Value's concrete Go type matches what Datatype
// promises, matching the closed-variant invariant of spec §3.
func (a AttributeValue) Validate() error {
	if !a.Datatype.Valid() {
		return fmt.Errorf("attribute value: invalid datatype %v", a.Datatype)
	}
	ok := false
	switch a.Datatype {
	case datatype.CHAR, datatype.UCHAR, datatype.SCHAR:
		_, ok = a.Value.(byte)
		if !ok {
			_, ok = a.Value.(int8)
		}
	case datatype.SHORT:
		_, ok = a.Value.(int16)
	case datatype.USHORT:
		_, ok = a.Value.(uint16)
	case datatype.INT:
		_, ok = a.Value.(int32)
	case datatype.UINT:
		_, ok = a.Value.(uint32)
	case datatype.LONG, datatype.LONGLONG:
		_, ok = a.Value.(int64)
	case datatype.ULONG, datatype.ULONGLONG:
		_, ok = a.Value.(uint64)
	case datatype.FLOAT:
		_, ok = a.Value.(float32)
	case datatype.DOUBLE, datatype.LONG_DOUBLE:
		_, ok = a.Value.(float64)
	case datatype.CFLOAT:
		_, ok = a.Value.(complex64)
	case datatype.CDOUBLE, datatype.CLONG_DOUBLE:
		_, ok = a.Value.(complex128)
	case datatype.STRING:
		_, ok = a.Value.(string)
	case datatype.BOOL:
		_, ok = a.Value.(bool)
	case datatype.ARR_DBL_7:
		if v, is := a.Value.([7]float64); is {
			_ = v
			ok = true
		}
	case datatype.DATATYPE:
		_, ok = a.Value.(datatype.Datatype)
	case datatype.VEC_CHAR, datatype.VEC_UCHAR, datatype.VEC_SCHAR:
		_, ok = a.Value.([]byte)
		if !ok {
			_, ok = a.Value.([]int8)
		}
	case datatype.VEC_SHORT:
		_, ok = a.Value.([]int16)
	case datatype.VEC_USHORT:
		_, ok = a.Value.([]uint16)
	case datatype.VEC_INT:
		_, ok = a.Value.([]int32)
	case datatype.VEC_UINT:
		_, ok = a.Value.([]uint32)
	case datatype.VEC_LONG, datatype.VEC_LONGLONG:
		_, ok = a.Value.([]int64)
	case datatype.VEC_ULONG, datatype.VEC_ULONGLONG:
		_, ok = a.Value.([]uint64)
	case datatype.VEC_FLOAT:
		_, ok = a.Value.([]float32)
	case datatype.VEC_DOUBLE, datatype.VEC_LONG_DOUBLE:
		_, ok = a.Value.([]float64)
	case datatype.VEC_CFLOAT:
		_, ok = a.Value.([]complex64)
	case datatype.VEC_CDOUBLE, datatype.VEC_CLONG_DOUBLE:
		_, ok = a.Value.([]complex128)
	case datatype.VEC_STRING:
		_, ok = a.Value.([]string)
	case datatype.VEC_BOOL:
		_, ok = a.Value.([]bool)
	default:
		ok = false
	}
	if !ok {
		return fmt.Errorf("attribute value: Go type %T does not match datatype %v", a.Value, a.Datatype)
	}
	return nil
}
