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
// Code generated by running
//
//	go generate ./...
//
// against the //go:generate stringer directive at the end of this file would
// produce a file shaped exactly like this one. Hand-written here to the
// same contract (golang.org/x/tools/cmd/stringer's generated shape) since
// this module does not invoke go generate as part of its build.
package datatype

import "strconv"

func (d Datatype) String() string {
	switch d {
	case UNDEFINED:
		return "UNDEFINED"
	case CHAR:
		return "CHAR"
	case UCHAR:
		return "UCHAR"
	case SCHAR:
		return "SCHAR"
	case SHORT:
		return "SHORT"
	case INT:
		return "INT"
	case LONG:
		return "LONG"
	case LONGLONG:
		return "LONGLONG"
	case USHORT:
		return "USHORT"
	case UINT:
		return "UINT"
	case ULONG:
		return "ULONG"
	case ULONGLONG:
		return "ULONGLONG"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case LONG_DOUBLE:
		return "LONG_DOUBLE"
	case CFLOAT:
		return "CFLOAT"
	case CDOUBLE:
		return "CDOUBLE"
	case CLONG_DOUBLE:
		return "CLONG_DOUBLE"
	case STRING:
		return "STRING"
	case BOOL:
		return "BOOL"
	case ARR_DBL_7:
		return "ARR_DBL_7"
	case DATATYPE:
		return "DATATYPE"
	case VEC_CHAR:
		return "VEC_CHAR"
	case VEC_UCHAR:
		return "VEC_UCHAR"
	case VEC_SCHAR:
		return "VEC_SCHAR"
	case VEC_SHORT:
		return "VEC_SHORT"
	case VEC_INT:
		return "VEC_INT"
	case VEC_LONG:
		return "VEC_LONG"
	case VEC_LONGLONG:
		return "VEC_LONGLONG"
	case VEC_USHORT:
		return "VEC_USHORT"
	case VEC_UINT:
		return "VEC_UINT"
	case VEC_ULONG:
		return "VEC_ULONG"
	case VEC_ULONGLONG:
		return "VEC_ULONGLONG"
	case VEC_FLOAT:
		return "VEC_FLOAT"
	case VEC_DOUBLE:
		return "VEC_DOUBLE"
	case VEC_LONG_DOUBLE:
		return "VEC_LONG_DOUBLE"
	case VEC_CFLOAT:
		return "VEC_CFLOAT"
	case VEC_CDOUBLE:
		return "VEC_CDOUBLE"
	case VEC_CLONG_DOUBLE:
		return "VEC_CLONG_DOUBLE"
	case VEC_STRING:
		return "VEC_STRING"
	case VEC_BOOL:
		return "VEC_BOOL"
	default:
		return "Datatype(" + strconv.FormatUint(uint64(d), 10) + ")"
	}
}

//go:generate stringer -type=Datatype
