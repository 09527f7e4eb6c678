// sender.go

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
	"context"
	"errors"
	"log"
	"net"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultReplyTimeout bounds how long the sender waits for the drone to
	// acknowledge one command.
	DefaultReplyTimeout = 200 * time.Millisecond

	// DefaultPopBackoff is how long the sender sleeps when it finds the
	// queue empty.
	DefaultPopBackoff = 500 * time.Millisecond
)

// Outcome classifies one completed command exchange.
type Outcome int

// A command is acknowledged, answered with something we cannot decode, or
// never answered at all. There is no retry in any of the three cases: a
// stale motion command resent late is worse than one lost.
const (
	Acked Outcome = iota
	Unknown
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Acked:
		return "acked"
	case Unknown:
		return "unknown"
	case TimedOut:
		return "timeout"
	}
	return "invalid"
}

// Result reports one command exchange to observers.
type Result struct {
	Command  string
	Outcome  Outcome
	Response string // decoded reply text, only set when Outcome is Acked
	Time     time.Time
}

// CommandSender drains the queue in FCFS order and performs one synchronous
// request/response exchange per command over the link.
type CommandSender struct {
	queue   *CommandQueue
	link    *CommandLink
	backoff time.Duration
	timeout time.Duration
	observe func(Result) // optional, may be nil
}

// NewCommandSender wires a sender to its queue and link. observe, when not
// nil, is called with every completed exchange.
func NewCommandSender(queue *CommandQueue, link *CommandLink, backoff, timeout time.Duration, observe func(Result)) *CommandSender {
	if backoff <= 0 {
		backoff = DefaultPopBackoff
	}
	if timeout <= 0 {
		timeout = DefaultReplyTimeout
	}
	return &CommandSender{
		queue:   queue,
		link:    link,
		backoff: backoff,
		timeout: timeout,
		observe: observe,
	}
}

// Run pops and transmits commands until ctx is cancelled. An empty queue is
// not an error; the sender backs off and retries. An exchange already in
// flight is never cancelled mid-timeout, so worst-case shutdown latency is
// bounded by the reply timeout.
func (s *CommandSender) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		cmd, ok := s.queue.Pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.backoff):
			}
			continue
		}
		s.exchange(cmd)
	}
}

// exchange transmits one command and classifies the response. Every path
// returns to idle; no failure here escapes the sender's loop.
func (s *CommandSender) exchange(cmd string) Result {
	res := Result{Command: cmd, Time: time.Now()}

	reply, err := s.link.Send(cmd, s.timeout)
	switch {
	case err == nil && utf8.Valid(reply):
		res.Outcome = Acked
		res.Response = strings.TrimSpace(string(reply))
		log.Printf("EXE %s: %s\n", cmd, res.Response)
	case err == nil:
		res.Outcome = Unknown
		log.Printf("EXE %s: unknown\n", cmd)
	default:
		// No reply within the timeout: the command is dropped on the floor.
		res.Outcome = TimedOut
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			log.Printf("EXE %s: no reply\n", cmd)
		} else {
			log.Printf("EXE %s: send error - %v\n", cmd, err)
		}
	}

	if s.observe != nil {
		s.observe(res)
	}
	return res
}
