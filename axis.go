// axis.go

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

import "fmt"

const (
	// DefaultDeadZone is the band around the stick's neutral position within
	// which motion events are dropped to suppress sensor drift.
	DefaultDeadZone = 2500

	// axisMaxValue is the largest raw reading the hardware reports.
	// We are using the SDL convention: vals range from -32768 to 32767.
	axisMaxValue = 32767
)

// AxisMapper converts raw analog stick readings into the normalized
// percentage values carried by an 'rc' command. It remembers the last value
// dispatched for each axis so redundant updates produce no traffic.
//
// The mapper is written from exactly one goroutine (the InputDispatcher's),
// so it carries no lock of its own.
type AxisMapper struct {
	state [numAxes]int // percentages in [-100, 100], indexed by Axis
}

// NewAxisMapper returns a mapper with all four axes at neutral.
func NewAxisMapper() *AxisMapper {
	return &AxisMapper{}
}

// Update normalizes raw for the given axis and, if the value differs from
// the one currently stored, records it and returns the composite 'rc'
// command for the full current state of all four axes. ok is false when the
// reading rounds to the stored value and nothing needs to be sent.
func (m *AxisMapper) Update(axis Axis, raw int16) (cmd string, ok bool) {
	if axis < 0 || axis >= numAxes {
		return "", false
	}
	// integer division truncates toward zero, so full deflection (32767)
	// maps to 100 and half deflection (16383) to 49
	val := int(raw) * 100 / axisMaxValue
	if axis == AxisPitch || axis == AxisQuota {
		val = -val // stick forward/up is positive climb/forward
	}
	if m.state[axis] == val {
		return "", false
	}
	m.state[axis] = val
	return m.rcCommand(), true
}

// Value returns the stored normalized percentage for an axis.
func (m *AxisMapper) Value(axis Axis) int {
	if axis < 0 || axis >= numAxes {
		return 0
	}
	return m.state[axis]
}

func (m *AxisMapper) rcCommand() string {
	return fmt.Sprintf("rc %d %d %d %d",
		m.state[AxisRoll], m.state[AxisPitch], m.state[AxisQuota], m.state[AxisYaw])
}
