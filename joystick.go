// joystick.go

// This file defines the event types and the source abstraction the
// dispatcher consumes; the device-backed implementation is per-OS.

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

import "context"

// EventKind discriminates the joystick events the controller reacts to.
type EventKind uint8

// Event kinds. Anything else the device reports is filtered out before it
// reaches the dispatcher.
const (
	ButtonDown EventKind = iota
	AxisMotion
)

// Event is one discrete joystick input: a button press, or an axis reading.
// Index is the hardware-reported control number; Value is only meaningful
// for AxisMotion and uses the SDL convention (-32768 to 32767).
type Event struct {
	Kind  EventKind
	Index int
	Value int16
}

// EventSource yields joystick events to the dispatcher. Next blocks until
// an event is available or ctx is cancelled.
type EventSource interface {
	Next(ctx context.Context) (Event, error)
	Close() error
}
