// axis_test.go

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

import "testing"

func TestAxisNormalization(t *testing.T) {
	m := NewAxisMapper()

	// half deflection truncates toward zero: 16383*100/32767 = 49
	cmd, ok := m.Update(AxisRoll, 16383)
	if !ok {
		t.Fatal("Expected a command for a changed axis")
	}
	if cmd != "rc 49 0 0 0" {
		t.Errorf("Expected 'rc 49 0 0 0', got '%s'", cmd)
	}

	cmd, ok = m.Update(AxisRoll, 32767)
	if !ok || cmd != "rc 100 0 0 0" {
		t.Errorf("Expected 'rc 100 0 0 0', got '%s' (ok=%v)", cmd, ok)
	}

	cmd, ok = m.Update(AxisRoll, -32767)
	if !ok || cmd != "rc -100 0 0 0" {
		t.Errorf("Expected 'rc -100 0 0 0', got '%s' (ok=%v)", cmd, ok)
	}
}

func TestAxisSignInversion(t *testing.T) {
	m := NewAxisMapper()

	// stick forward reads negative raw but must map to positive climb/forward
	cmd, ok := m.Update(AxisPitch, -16383)
	if !ok || cmd != "rc 0 49 0 0" {
		t.Errorf("Expected 'rc 0 49 0 0', got '%s' (ok=%v)", cmd, ok)
	}
	cmd, ok = m.Update(AxisQuota, -32767)
	if !ok || cmd != "rc 0 49 100 0" {
		t.Errorf("Expected 'rc 0 49 100 0', got '%s' (ok=%v)", cmd, ok)
	}
	if m.Value(AxisPitch) != 49 || m.Value(AxisQuota) != 100 {
		t.Errorf("State not updated: pitch=%d quota=%d", m.Value(AxisPitch), m.Value(AxisQuota))
	}
}

func TestAxisChangeSuppression(t *testing.T) {
	m := NewAxisMapper()

	if _, ok := m.Update(AxisYaw, 16383); !ok {
		t.Fatal("First update should emit a command")
	}
	// identical raw value: no traffic
	if cmd, ok := m.Update(AxisYaw, 16383); ok {
		t.Errorf("Redundant update emitted '%s'", cmd)
	}
	// different raw value normalizing to the same percentage: no traffic
	if cmd, ok := m.Update(AxisYaw, 16300); ok {
		t.Errorf("Equal-percentage update emitted '%s'", cmd)
	}
}

func TestAxisFullStateComposition(t *testing.T) {
	m := NewAxisMapper()

	m.Update(AxisRoll, 16383)
	m.Update(AxisPitch, -32767)
	cmd, ok := m.Update(AxisYaw, -16383)
	if !ok {
		t.Fatal("Expected a command")
	}
	// the rc command carries all four axes, not just the changed one
	if cmd != "rc 49 100 0 -49" {
		t.Errorf("Expected 'rc 49 100 0 -49', got '%s'", cmd)
	}
}
