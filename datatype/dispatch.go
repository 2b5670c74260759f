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

// Funcs is a compile-time visitor over the closed Datatype enumeration:
// one typed closure per scalar kind. Dispatch selects and calls the
// closure matching a runtime Datatype. This replaces the virtual-function
// and CRTP-functor dispatch of the original source (spec §9) with a
// single generic struct instantiated once per call site.
//
// Vector datatypes dispatch on their underlying scalar kind; callers that
// need to distinguish vector-ness check d.IsVector() themselves before
// calling Dispatch.
type Funcs[R any] struct {
	Char        func() R
	UChar       func() R
	SChar       func() R
	Short       func() R
	Int         func() R
	Long        func() R
	LongLong    func() R
	UShort      func() R
	UInt        func() R
	ULong       func() R
	ULongLong   func() R
	Float       func() R
	Double      func() R
	LongDouble  func() R
	CFloat      func() R
	CDouble     func() R
	CLongDouble func() R
	String      func() R
	Bool        func() R
	ArrDbl7     func() R
	// Default, if non-nil, is used for DATATYPE/UNDEFINED or any kind
	// left nil above instead of panicking.
	Default func(Datatype) R
}

// Dispatch calls the Funcs field matching d's scalar kind.
func (f Funcs[R]) Dispatch(d Datatype) R {
	fn := f.lookup(d.Scalar())
	if fn != nil {
		return fn()
	}
	if f.Default != nil {
		return f.Default(d)
	}
	panic("datatype: Dispatch: no handler registered for " + d.String())
}

func (f Funcs[R]) lookup(scalar Datatype) func() R {
	switch scalar {
	case CHAR:
		return f.Char
	case UCHAR:
		return f.UChar
	case SCHAR:
		return f.SChar
	case SHORT:
		return f.Short
	case INT:
		return f.Int
	case LONG:
		return f.Long
	case LONGLONG:
		return f.LongLong
	case USHORT:
		return f.UShort
	case UINT:
		return f.UInt
	case ULONG:
		return f.ULong
	case ULONGLONG:
		return f.ULongLong
	case FLOAT:
		return f.Float
	case DOUBLE:
		return f.Double
	case LONG_DOUBLE:
		return f.LongDouble
	case CFLOAT:
		return f.CFloat
	case CDOUBLE:
		return f.CDouble
	case CLONG_DOUBLE:
		return f.CLongDouble
	case STRING:
		return f.String
	case BOOL:
		return f.Bool
	case ARR_DBL_7:
		return f.ArrDbl7
	default:
		return nil
	}
}
