// controller_test.go

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
	"testing"
	"time"
)

// feedThenBlock replays its script, then blocks until cancellation like a
// real joystick with idle sticks would.
type feedThenBlock struct {
	events []Event
}

func (s *feedThenBlock) Next(ctx context.Context) (Event, error) {
	if len(s.events) > 0 {
		ev := s.events[0]
		s.events = s.events[1:]
		return ev, nil
	}
	<-ctx.Done()
	return Event{}, ctx.Err()
}

func (s *feedThenBlock) Close() error { return nil }

func TestControllerShutdownLands(t *testing.T) {
	port, received := startFakeDrone(t, []byte("ok"))
	link := dialTestLink(t, port)

	cfg := DefaultConfig()
	cfg.Sender.BackoffMs = 10
	cfg.Sender.TimeoutMs = 100

	src := &feedThenBlock{events: []Event{
		{Kind: ButtonDown, Index: 3}, // Y: command mode
		{Kind: ButtonDown, Index: 7}, // START: takeoff
	}}
	ctrl, err := NewController(cfg, src, link)
	if err != nil {
		t.Fatalf("NewController failed with error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{})
	go func() {
		ctrl.Run(ctx)
		close(ran)
	}()

	for _, want := range []string{"command", "takeoff"} {
		select {
		case got := <-received:
			if got != want {
				t.Errorf("Expected '%s' on the wire, got '%s'", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("Timed out waiting for '%s'", want)
		}
	}

	cancel()

	// shutdown must put exactly one forced landing on the wire
	select {
	case got := <-received:
		if got != "land" {
			t.Errorf("Expected final 'land', got '%s'", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the forced landing")
	}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("Controller did not stop after cancellation")
	}
}

func TestControllerShutdownDiscardsQueue(t *testing.T) {
	port, received := startFakeDrone(t, []byte("ok"))
	link := dialTestLink(t, port)

	cfg := DefaultConfig()
	// a backoff much longer than the test keeps the sender from draining
	cfg.Sender.BackoffMs = 60000
	cfg.Sender.TimeoutMs = 100

	ctrl, err := NewController(cfg, &feedThenBlock{}, link)
	if err != nil {
		t.Fatalf("NewController failed with error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ran := make(chan struct{})
	go func() {
		ctrl.Run(ctx)
		close(ran)
	}()

	// sneak stale motion commands in behind the sleeping sender
	time.Sleep(50 * time.Millisecond)
	ctrl.queue.Push("rc 100 0 0 0")
	ctrl.queue.Push("rc 0 100 0 0")

	cancel()
	<-ran

	// only the forced landing may have reached the wire
	select {
	case got := <-received:
		if got != "land" {
			t.Errorf("Expected only 'land' on the wire, got '%s'", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the forced landing")
	}
	select {
	case got := <-received:
		t.Errorf("Stale command '%s' escaped the cleared queue", got)
	case <-time.After(200 * time.Millisecond):
	}
}
