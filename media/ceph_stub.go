//go:build !ceph

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
package media

import "io"

// CephConfig names the pool/prefix a Ceph medium addresses. Present even
// in the stub build so callers can construct a config without a build
// tag; only NewCeph's returned Medium panics on use.
type CephConfig struct {
	UserName    string
	ClusterName string
	ConfFile    string
	Pool        string
	Prefix      string
}

// Ceph is a stub when Ceph support is not compiled in, exactly mirroring
// the teacher's persistence-ceph-stub.go. Build with -tags=ceph to enable
// the real github.com/ceph/go-ceph/rados-backed implementation.
type Ceph struct {
	cfg CephConfig
}

func NewCeph(cfg CephConfig) *Ceph {
	return &Ceph{cfg: cfg}
}

func (m *Ceph) Open(name string) (io.ReadCloser, error) {
	panic("media: Ceph support not compiled in. Build with: go build -tags=ceph")
}

func (m *Ceph) Create(name string) (io.WriteCloser, error) {
	panic("media: Ceph support not compiled in. Build with: go build -tags=ceph")
}

func (m *Ceph) Remove(name string) error {
	panic("media: Ceph support not compiled in. Build with: go build -tags=ceph")
}

func (m *Ceph) List(prefix string) ([]string, error) {
	panic("media: Ceph support not compiled in. Build with: go build -tags=ceph")
}
