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

// Package monitor implements the optional stream-status websocket
// broadcaster (SPEC_FULL.md §4.12, C12): purely observational, never on
// the write path for correctness. Each backend whose Monitor field is set
// Reports its file's status into a Registry (the ADIOS2 backend includes
// its stream status and span count); every connected websocket client
// receives each report as a JSON event.
package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one broadcast unit: a stream-status transition or a span
// registry size update for one open file.
type Event struct {
	File      string    `json:"file"`
	Status    string    `json:"status"`
	SpanCount int       `json:"span_count"`
	Time      time.Time `json:"time"`
}

// Registry fans reported events out to every currently connected
// websocket client. The zero value is not usable; construct with New.
type Registry struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Event
}

// New constructs an empty Registry, ready to accept connections via
// ServeHTTP and reports via Report.
func New() *Registry {
	return &Registry{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan Event),
	}
}

// Report broadcasts ev to every connected client. Non-blocking: a
// client whose outgoing channel is full is dropped rather than stalling
// the reporter, since this path must never hold up real I/O.
func (r *Registry) Report(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for conn, ch := range r.clients {
		select {
		case ch <- ev:
		default:
			delete(r.clients, conn)
			close(ch)
			conn.Close()
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams every
// subsequent Report call to it until the client disconnects.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	ch := make(chan Event, 64)
	r.mu.Lock()
	r.clients[conn] = ch
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.clients, conn)
		r.mu.Unlock()
		conn.Close()
	}()

	// read loop: discard client messages, detect disconnect.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for ev := range ch {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// ClientCount reports how many websocket clients are currently
// connected, for tests and operational diagnostics.
func (r *Registry) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
