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

// Package media implements the byte-addressable transport layer beneath
// the file-based ADIOS2 engines and the JSON backend (SPEC_FULL.md §4.10,
// C10): local filesystem, S3, and Ceph/RADOS object storage, all behind
// one Medium interface.
package media

import (
	"io"
	"strings"
)

// Medium is a named object store: a flat namespace of byte blobs keyed by
// name, reachable by Open/Create/Remove/List.
type Medium interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
	List(prefix string) ([]string, error)
}

// Open resolves a URL-shaped location to a Medium plus the object name
// within it: "s3://bucket/prefix/name" -> media.S3 for bucket, object
// name "prefix/name" ("ceph://pool/key" likewise -> media.Ceph, "key");
// a bare path with no scheme resolves to media.Local rooted at ".".
func Open(location string) (Medium, string, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		rest := strings.TrimPrefix(location, "s3://")
		bucket, key := splitFirst(rest)
		return NewS3(S3Config{Bucket: bucket}), key, nil
	case strings.HasPrefix(location, "ceph://"):
		rest := strings.TrimPrefix(location, "ceph://")
		pool, key := splitFirst(rest)
		return NewCeph(CephConfig{Pool: pool}), key, nil
	default:
		return NewLocal("."), location, nil
	}
}

func splitFirst(s string) (head, rest string) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// listUnsupportedError is returned by media.Ceph.List, which has no
// efficient prefix enumeration without a maintained manifest object.
type listUnsupportedError struct {
	medium string
}

func (e *listUnsupportedError) Error() string {
	return "media: " + e.medium + " does not support List without a maintained manifest object"
}
