// command.go

// This file defines the textual commands understood by the drone's SDK port
// and the controller actions that produce them.

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

import "strings"

// Commands are sent to the drone as plain ASCII text.
const (
	cmdSDKMode   = "command" // enter SDK mode, must be sent before anything else
	cmdTakeoff   = "takeoff"
	cmdLand      = "land"
	cmdEmergency = "emergency" // stop motors immediately
)

// isMotionCommand reports whether cmd is a stick update rather than a safety
// command. Only motion commands may be discarded when the queue is full.
func isMotionCommand(cmd string) bool {
	return strings.HasPrefix(cmd, "rc ")
}

// Axis identifies one of the four flight control axes carried by an
// 'rc' command.
type Axis int

// The four control axes. 'Quota' is the throttle/climb axis, named as the
// drone's SDK documentation names it.
const (
	AxisRoll Axis = iota
	AxisPitch
	AxisQuota
	AxisYaw
	numAxes
)

func (a Axis) String() string {
	switch a {
	case AxisRoll:
		return "roll"
	case AxisPitch:
		return "pitch"
	case AxisQuota:
		return "quota"
	case AxisYaw:
		return "yaw"
	}
	return "unknown"
}

// actionKind discriminates the controller actions a stick control can be
// bound to.
type actionKind int

const (
	actionNone actionKind = iota // unbound control, ignored
	actionLand
	actionTakeoff
	actionEmergency
	actionCommandMode
	actionSetAxis
)

// action is one entry of the control binding table. The dispatcher applies
// it with a finite switch rather than through a callable registry.
type action struct {
	kind  actionKind
	axis  Axis // only meaningful for actionSetAxis
	force bool // only meaningful for actionLand: clear the queue first
}

// defaultBindings maps control names to actions the way the reference
// Joy controller ships: left stick flies, right stick steers, face and
// menu buttons cover mode changes and safety.
func defaultBindings() map[string]action {
	return map[string]action{
		"SELECT":  {kind: actionLand},
		"START":   {kind: actionTakeoff},
		"A":       {kind: actionEmergency},
		"Y":       {kind: actionCommandMode},
		"LEFT_X":  {kind: actionSetAxis, axis: AxisRoll},
		"LEFT_Y":  {kind: actionSetAxis, axis: AxisPitch},
		"RIGHT_X": {kind: actionSetAxis, axis: AxisYaw},
		"RIGHT_Y": {kind: actionSetAxis, axis: AxisQuota},
	}
}
