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
package datatype

// nameToDatatype is built once from String(), so Parse stays the exact
// inverse of the hand-written stringer table without a second literal
// copy of every case to keep in sync.
var nameToDatatype = func() map[string]Datatype {
	m := make(map[string]Datatype, int(numDatatypes))
	for d := Datatype(0); d < numDatatypes; d++ {
		m[d.String()] = d
	}
	return m
}()

// Parse is the inverse of Datatype.String, used when a datatype crosses
// a serialization boundary (backend attribute metadata, JSON config) as
// its name rather than its numeric tag. Returns UNDEFINED for an
// unrecognized name.
func Parse(name string) Datatype {
	if d, ok := nameToDatatype[name]; ok {
		return d
	}
	return UNDEFINED
}

// ZeroValue returns an addressable pointer to the zero Go value
// iotask.AttributeValue.Validate expects for d, suitable as a json.Unmarshal
// destination when decoding a previously-serialized AttributeValue.
func ZeroValue(d Datatype) any {
	switch d {
	case CHAR, UCHAR, SCHAR:
		return new(byte)
	case SHORT:
		return new(int16)
	case USHORT:
		return new(uint16)
	case INT:
		return new(int32)
	case UINT:
		return new(uint32)
	case LONG, LONGLONG:
		return new(int64)
	case ULONG, ULONGLONG:
		return new(uint64)
	case FLOAT:
		return new(float32)
	case DOUBLE, LONG_DOUBLE:
		return new(float64)
	case STRING:
		return new(string)
	case BOOL:
		return new(bool)
	case ARR_DBL_7:
		return new([7]float64)
	case DATATYPE:
		return new(Datatype)
	case VEC_CHAR, VEC_UCHAR, VEC_SCHAR:
		return new([]byte)
	case VEC_SHORT:
		return new([]int16)
	case VEC_USHORT:
		return new([]uint16)
	case VEC_INT:
		return new([]int32)
	case VEC_UINT:
		return new([]uint32)
	case VEC_LONG, VEC_LONGLONG:
		return new([]int64)
	case VEC_ULONG, VEC_ULONGLONG:
		return new([]uint64)
	case VEC_FLOAT:
		return new([]float32)
	case VEC_DOUBLE, VEC_LONG_DOUBLE:
		return new([]float64)
	case VEC_STRING:
		return new([]string)
	case VEC_BOOL:
		return new([]bool)
	default:
		return new(any)
	}
}
