//go:build ceph

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

import (
	"bytes"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/ceph/go-ceph/rados"
)

// CephConfig names the pool/prefix a Ceph medium addresses, mirroring the
// teacher's CephFactory fields.
type CephConfig struct {
	UserName    string
	ClusterName string
	ConfFile    string
	Pool        string
	Prefix      string
}

// Ceph is a github.com/ceph/go-ceph/rados-backed Medium, a direct
// generalization of the teacher's persistence-ceph.go: no append
// primitive, so every write is a WriteFull atomic overwrite.
type Ceph struct {
	cfg CephConfig

	mu     sync.Mutex
	conn   *rados.Conn
	ioctx  *rados.IOContext
	opened bool
}

func NewCeph(cfg CephConfig) *Ceph {
	return &Ceph{cfg: cfg}
}

func (m *Ceph) ensureOpen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened {
		return nil
	}
	conn, err := rados.NewConnWithClusterAndUser(m.cfg.ClusterName, m.cfg.UserName)
	if err != nil {
		return err
	}
	if m.cfg.ConfFile != "" {
		if err := conn.ReadConfigFile(m.cfg.ConfFile); err != nil {
			return err
		}
	} else {
		_ = conn.ReadDefaultConfigFile()
	}
	if err := conn.Connect(); err != nil {
		return err
	}
	ioctx, err := conn.OpenIOContext(m.cfg.Pool)
	if err != nil {
		conn.Shutdown()
		return err
	}
	m.conn = conn
	m.ioctx = ioctx
	m.opened = true
	return nil
}

func (m *Ceph) obj(name string) string {
	return path.Join(strings.TrimSuffix(m.cfg.Prefix, "/"), name)
}

func (m *Ceph) Open(name string) (io.ReadCloser, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	obj := m.obj(name)
	stat, err := m.ioctx.Stat(obj)
	if err != nil {
		return nil, err
	}
	data := make([]byte, stat.Size)
	n, err := m.ioctx.Read(obj, data, 0)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data[:n])), nil
}

type cephWriteCloser struct {
	m      *Ceph
	obj    string
	buf    bytes.Buffer
	closed bool
}

func (w *cephWriteCloser) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	return w.buf.Write(p)
}

func (w *cephWriteCloser) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.m.ioctx.WriteFull(w.obj, w.buf.Bytes())
}

func (m *Ceph) Create(name string) (io.WriteCloser, error) {
	if err := m.ensureOpen(); err != nil {
		return nil, err
	}
	return &cephWriteCloser{m: m, obj: m.obj(name)}, nil
}

func (m *Ceph) Remove(name string) error {
	if err := m.ensureOpen(); err != nil {
		return err
	}
	return m.ioctx.Delete(m.obj(name))
}

// List is unsupported: plain librados has no efficient prefix enumeration
// without a maintained manifest/index object, exactly the limitation the
// teacher's persistence-ceph.go documents on CephStorage.Remove.
func (m *Ceph) List(prefix string) ([]string, error) {
	return nil, &listUnsupportedError{medium: "ceph"}
}
