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

import "github.com/openpmd/openpmd-go/datatype"

// TypeClass is the closed shape an HDF5 hid_t would take for one
// datatype.Datatype (spec §4.5: "A dynamic Datatype -> hid_t helper
// creates native types for scalars, a custom enum type for booleans,
// compound types for each complex width, and variable-length array types
// sized from the attribute's runtime length"). There is no cgo HDF5
// binding in this module, so NativeType stands in for the hid_t a real
// H5Tcopy/H5Tcreate call would return; it documents what that call would
// build rather than wrapping one.
type TypeClass int

const (
	// ClassNative is a plain scalar/vector HDF5 native type (H5T_NATIVE_*).
	ClassNative TypeClass = iota
	// ClassEnum is the {TRUE=1,FALSE=0} i8 enum used for BOOL, matching
	// h5py's own boolean convention so files stay cross-readable.
	ClassEnum
	// ClassCompound is a two-field {r,i} struct for complex datatypes.
	ClassCompound
	// ClassVLenString is a variable-length string type, sized per value.
	ClassVLenString
)

// NativeType describes the HDF5 type a Datatype maps onto.
type NativeType struct {
	Class       TypeClass
	ElementSize int // bytes per scalar element of the underlying native type
}

// MapType returns the HDF5 type class for d (spec §4.5's type-mapping
// helper). Vector variants map onto the same class as their scalar kind;
// HDF5 represents the "vector" dimension as dataspace rank, not a
// distinct hid_t.
func MapType(d datatype.Datatype) NativeType {
	scalar := d.Scalar()
	switch scalar {
	case datatype.BOOL:
		return NativeType{Class: ClassEnum, ElementSize: 1}
	case datatype.CFLOAT:
		return NativeType{Class: ClassCompound, ElementSize: 4}
	case datatype.CDOUBLE, datatype.CLONG_DOUBLE:
		return NativeType{Class: ClassCompound, ElementSize: 8}
	case datatype.STRING:
		return NativeType{Class: ClassVLenString}
	default:
		return NativeType{Class: ClassNative, ElementSize: datatype.Size(scalar)}
	}
}
