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

// Package operator implements the per-variable compression/transform
// operator chain attached to a dataset at CREATE_DATASET (spec.md §4.3,
// §6.1, SPEC_FULL.md §4.9, C9).
package operator

import (
	"fmt"
	"io"

	"github.com/openpmd/openpmd-go/ioerror"
)

// Codec wraps and unwraps a byte stream for one named operator. Params is
// the operator's string parameter dictionary, exactly as carried on
// chunk.OperatorSpec.
type Codec interface {
	Name() string
	Wrap(w io.Writer, params map[string]string) (io.WriteCloser, error)
	Unwrap(r io.Reader, params map[string]string) (io.ReadCloser, error)
}

var registry = make(map[string]Codec)

// Register adds a codec under its own Name(). Called from each builtin
// codec's init() and available to backends that add engine-specific ones.
func Register(c Codec) {
	registry[c.Name()] = c
}

// Lookup returns the codec registered under name, or
// OperationUnsupportedInBackend if none is registered.
func Lookup(name string) (Codec, error) {
	c, ok := registry[name]
	if !ok {
		return nil, &ioerror.OperationUnsupportedInBackend{
			Backend: "operator", Details: fmt.Sprintf("no codec registered for %q", name),
		}
	}
	return c, nil
}
