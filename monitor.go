// monitor.go

// This file contains the optional WebSocket feed of command outcomes,
// for watching the control stream from another machine while flying.

// Copyright (C) 2020  Aircomm

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package joy

import (
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const monitorWriteWait = 5 * time.Second

// resultMessage is the JSON shape published per exchange.
type resultMessage struct {
	Command  string    `json:"command"`
	Outcome  string    `json:"outcome"`
	Response string    `json:"response,omitempty"`
	Time     time.Time `json:"time"`
}

// Monitor fans command results out to WebSocket subscribers. Publishing
// never blocks the sender: a subscriber that cannot keep up simply misses
// updates, the same trade the drone link itself makes.
type Monitor struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]chan Result
	listener net.Listener
	server   *http.Server
	upgrader websocket.Upgrader
}

// NewMonitor prepares a monitor to serve on addr (e.g. "127.0.0.1:8890").
func NewMonitor(addr string) (*Monitor, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	m := &Monitor{
		clients:  make(map[*websocket.Conn]chan Result),
		listener: ln,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", m.serveWatch)
	m.server = &http.Server{Handler: mux}
	return m, nil
}

// Addr returns the address the monitor is listening on.
func (m *Monitor) Addr() string {
	return m.listener.Addr().String()
}

// Start serves subscribers in a background goroutine.
func (m *Monitor) Start() {
	go func() {
		if err := m.server.Serve(m.listener); err != http.ErrServerClosed {
			log.Printf("Monitor server stopped - %v\n", err)
		}
	}()
}

// Publish hands one result to every subscriber without blocking.
func (m *Monitor) Publish(res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.clients {
		select {
		case ch <- res:
		default: // subscriber too slow, drop this update for it
		}
	}
}

// Close disconnects all subscribers and stops the server.
func (m *Monitor) Close() {
	m.mu.Lock()
	for conn, ch := range m.clients {
		close(ch)
		delete(m.clients, conn)
	}
	m.mu.Unlock()
	m.server.Close()
}

func (m *Monitor) serveWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Monitor upgrade failed - %v\n", err)
		return
	}

	ch := make(chan Result, 16)
	m.mu.Lock()
	m.clients[conn] = ch
	m.mu.Unlock()

	// reader consumes control frames; any read error unregisters the client
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				m.drop(conn)
				return
			}
		}
	}()

	for res := range ch {
		conn.SetWriteDeadline(time.Now().Add(monitorWriteWait))
		msg := resultMessage{
			Command:  res.Command,
			Outcome:  res.Outcome.String(),
			Response: res.Response,
			Time:     res.Time,
		}
		if err := conn.WriteJSON(msg); err != nil {
			m.drop(conn)
			return
		}
	}
	conn.Close()
}

func (m *Monitor) drop(conn *websocket.Conn) {
	m.mu.Lock()
	if ch, ok := m.clients[conn]; ok {
		close(ch)
		delete(m.clients, conn)
	}
	m.mu.Unlock()
	conn.Close()
}
