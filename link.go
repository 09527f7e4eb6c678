// link.go

// This file contains the UDP command link to the drone's SDK port.

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
	"net"
	"strconv"
	"sync"
	"time"
)

const (
	defaultDroneAddr        = "192.168.10.1"
	defaultDroneControlPort = 8889
)

// CommandLink is the connectionless request/response channel to the drone.
// Each Send is a single datagram out and, at most, a single datagram back;
// there is no handshake, retransmission or ordering beyond that.
type CommandLink struct {
	mu   sync.Mutex // one exchange on the wire at a time
	conn *net.UDPConn
}

// DialLink opens a UDP socket towards the drone's command port.
func DialLink(addr string, port int) (*CommandLink, error) {
	droneAddr, err := net.ResolveUDPAddr("udp", addr+":"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, droneAddr)
	if err != nil {
		return nil, err
	}
	return &CommandLink{conn: conn}, nil
}

// DialLinkDefault opens the link on the drone's default network address.
func DialLinkDefault() (*CommandLink, error) {
	return DialLink(defaultDroneAddr, defaultDroneControlPort)
}

// Send transmits cmd as a single datagram and waits up to timeout for one
// reply datagram. A timeout surfaces as a net error whose Timeout() method
// reports true; the command itself is not retried at this layer or any other.
func (l *CommandLink) Send(cmd string, timeout time.Duration) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.conn.Write([]byte(cmd)); err != nil {
		return nil, err
	}
	if err := l.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	buff := make([]byte, 1024)
	n, err := l.conn.Read(buff)
	if err != nil {
		return nil, err
	}
	return buff[:n], nil
}

// Close shuts the socket down.
func (l *CommandLink) Close() error {
	return l.conn.Close()
}
