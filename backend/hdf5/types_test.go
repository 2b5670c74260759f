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
	"testing"

	"github.com/openpmd/openpmd-go/datatype"
)

func TestMapTypeClassifiesBoolAsEnum(t *testing.T) {
	if nt := MapType(datatype.BOOL); nt.Class != ClassEnum {
		t.Fatalf("expected ClassEnum, got %v", nt.Class)
	}
}

func TestMapTypeClassifiesComplexAsCompound(t *testing.T) {
	for _, dt := range []datatype.Datatype{datatype.CFLOAT, datatype.CDOUBLE, datatype.CLONG_DOUBLE, datatype.VEC_CDOUBLE} {
		if nt := MapType(dt); nt.Class != ClassCompound {
			t.Fatalf("%v: expected ClassCompound, got %v", dt, nt.Class)
		}
	}
}

func TestMapTypeClassifiesStringAsVLen(t *testing.T) {
	if nt := MapType(datatype.STRING); nt.Class != ClassVLenString {
		t.Fatalf("expected ClassVLenString, got %v", nt.Class)
	}
}

func TestMapTypeClassifiesNumericScalarsAsNative(t *testing.T) {
	for _, dt := range []datatype.Datatype{datatype.INT, datatype.DOUBLE, datatype.VEC_FLOAT} {
		nt := MapType(dt)
		if nt.Class != ClassNative {
			t.Fatalf("%v: expected ClassNative, got %v", dt, nt.Class)
		}
		if nt.ElementSize == 0 {
			t.Fatalf("%v: expected non-zero element size", dt)
		}
	}
}
