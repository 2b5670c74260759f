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
package operator

import (
	"bytes"
	"io"

	"github.com/openpmd/openpmd-go/chunk"
)

// Chain is an ordered list of operators applied around a variable's raw
// bytes, exactly as recorded on a chunk.Dataset at CREATE_DATASET (spec.md
// §4.3's operator chain, §4.4.6's attribute layout).
type Chain []chunk.OperatorSpec

// Apply runs data through every operator in order (spec.md's "chain": the
// first operator wraps the rawest bytes, later ones wrap its output),
// returning the fully wrapped byte stream.
func (c Chain) Apply(data []byte) ([]byte, error) {
	if len(c) == 0 {
		return data, nil
	}
	var buf bytes.Buffer
	var w io.Writer = &buf
	closers := make([]io.Closer, 0, len(c))
	// Build innermost-to-outermost so the first operator in the chain
	// compresses the raw bytes and each subsequent one wraps the prior
	// operator's output, matching spec.md's "operator chain" ordering.
	writers := make([]io.WriteCloser, len(c))
	for i := len(c) - 1; i >= 0; i-- {
		codec, err := Lookup(c[i].Type)
		if err != nil {
			return nil, err
		}
		wc, err := codec.Wrap(w, c[i].Parameters)
		if err != nil {
			return nil, err
		}
		writers[i] = wc
		w = wc
		closers = append(closers, wc)
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	// Close innermost-first is wrong here: the outermost writer (the one
	// actually written to, writers[0]) must flush first so its output
	// reaches the writer beneath it before that one closes.
	for i := 0; i < len(writers); i++ {
		if err := writers[i].Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Reverse undoes every operator in reverse order, reconstructing the raw
// bytes originally passed to Apply.
func (c Chain) Reverse(data []byte) ([]byte, error) {
	if len(c) == 0 {
		return data, nil
	}
	var r io.Reader = bytes.NewReader(data)
	for i := len(c) - 1; i >= 0; i-- {
		codec, err := Lookup(c[i].Type)
		if err != nil {
			return nil, err
		}
		rc, err := codec.Unwrap(r, c[i].Parameters)
		if err != nil {
			return nil, err
		}
		r = rc
	}
	return io.ReadAll(r)
}
