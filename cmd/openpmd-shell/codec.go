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
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/openpmd/openpmd-go/datatype"
)

// encodeScalars renders a command line's string arguments as the raw
// little-endian bytes WRITE_DATASET expects, one value per fixed-width
// scalar datatype.Size reports a nonzero width for. This is the shell's
// own minimal numeric input path; it does not attempt the complex or
// string/bool datatypes a real writer would also support.
func encodeScalars(dt datatype.Datatype, values []string) ([]byte, error) {
	width := datatype.Size(dt)
	if width == 0 {
		return nil, fmt.Errorf("datatype %s has no fixed scalar width the shell can write", dt)
	}
	out := make([]byte, len(values)*width)
	for i, raw := range values {
		if err := putScalar(dt, out[i*width:(i+1)*width], raw); err != nil {
			return nil, fmt.Errorf("value %d (%q): %w", i, raw, err)
		}
	}
	return out, nil
}

func putScalar(dt datatype.Datatype, dst []byte, raw string) error {
	switch dt {
	case datatype.CHAR, datatype.UCHAR, datatype.SCHAR:
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return err
		}
		dst[0] = byte(v)
	case datatype.SHORT:
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case datatype.USHORT:
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(dst, uint16(v))
	case datatype.INT:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case datatype.UINT:
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case datatype.LONG, datatype.LONGLONG:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(dst, uint64(v))
	case datatype.ULONG, datatype.ULONGLONG:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(dst, v)
	case datatype.FLOAT:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
	case datatype.DOUBLE:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
	default:
		return fmt.Errorf("datatype %s is not one of the shell's supported scalar kinds", dt)
	}
	return nil
}

// decodeScalars is putScalar's inverse, used by "read" to print a
// dataset's current contents back as plain numbers.
func decodeScalars(dt datatype.Datatype, raw []byte) ([]any, error) {
	width := datatype.Size(dt)
	if width == 0 || len(raw)%width != 0 {
		return nil, fmt.Errorf("datatype %s has no fixed scalar width the shell can read", dt)
	}
	out := make([]any, 0, len(raw)/width)
	for off := 0; off < len(raw); off += width {
		chunk := raw[off : off+width]
		switch dt {
		case datatype.CHAR, datatype.UCHAR, datatype.SCHAR:
			out = append(out, chunk[0])
		case datatype.SHORT:
			out = append(out, int16(binary.LittleEndian.Uint16(chunk)))
		case datatype.USHORT:
			out = append(out, binary.LittleEndian.Uint16(chunk))
		case datatype.INT:
			out = append(out, int32(binary.LittleEndian.Uint32(chunk)))
		case datatype.UINT:
			out = append(out, binary.LittleEndian.Uint32(chunk))
		case datatype.LONG, datatype.LONGLONG:
			out = append(out, int64(binary.LittleEndian.Uint64(chunk)))
		case datatype.ULONG, datatype.ULONGLONG:
			out = append(out, binary.LittleEndian.Uint64(chunk))
		case datatype.FLOAT:
			out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		case datatype.DOUBLE:
			out = append(out, math.Float64frombits(binary.LittleEndian.Uint64(chunk)))
		default:
			return nil, fmt.Errorf("datatype %s is not one of the shell's supported scalar kinds", dt)
		}
	}
	return out, nil
}

// parseScalarAttribute parses a single command-line value into the exact
// Go type iotask.AttributeValue.Validate requires for dt, covering the
// non-vector, non-complex kinds a shell session is likely to poke at by
// hand.
func parseScalarAttribute(dt datatype.Datatype, raw string) (any, error) {
	switch dt {
	case datatype.STRING:
		return raw, nil
	case datatype.BOOL:
		return strconv.ParseBool(raw)
	case datatype.CHAR, datatype.UCHAR, datatype.SCHAR:
		v, err := strconv.ParseUint(raw, 10, 8)
		return byte(v), err
	case datatype.SHORT:
		v, err := strconv.ParseInt(raw, 10, 16)
		return int16(v), err
	case datatype.USHORT:
		v, err := strconv.ParseUint(raw, 10, 16)
		return uint16(v), err
	case datatype.INT:
		v, err := strconv.ParseInt(raw, 10, 32)
		return int32(v), err
	case datatype.UINT:
		v, err := strconv.ParseUint(raw, 10, 32)
		return uint32(v), err
	case datatype.LONG, datatype.LONGLONG:
		v, err := strconv.ParseInt(raw, 10, 64)
		return v, err
	case datatype.ULONG, datatype.ULONGLONG:
		v, err := strconv.ParseUint(raw, 10, 64)
		return v, err
	case datatype.FLOAT:
		v, err := strconv.ParseFloat(raw, 32)
		return float32(v), err
	case datatype.DOUBLE, datatype.LONG_DOUBLE:
		v, err := strconv.ParseFloat(raw, 64)
		return v, err
	default:
		return nil, fmt.Errorf("attrset only supports scalar, non-complex datatypes from the shell (got %s)", dt)
	}
}
