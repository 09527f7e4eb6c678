// dispatch.go

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
	"log"
)

// Control names indexed by the button/axis number the hardware reports.
// You may want to customize these to suit your specific Joystick.
var (
	defaultButtonMap = []string{"A", "B", "X", "Y", "LB", "RB", "SELECT", "START", "JL", "JR"}
	defaultAxisMap   = []string{"LEFT_X", "LEFT_Y", "LT", "RIGHT_X", "RIGHT_Y", "RT"}
)

// InputDispatcher consumes joystick events, resolves them through the fixed
// control maps and applies the bound action, which usually ends with a
// command on the queue. It is the sole writer of the axis state.
type InputDispatcher struct {
	source   EventSource
	queue    *CommandQueue
	mapper   *AxisMapper
	bindings map[string]action
	buttons  []string
	axes     []string
	deadZone int16
}

// NewInputDispatcher wires a dispatcher to its event source and queue.
// The binding table is built once here and never mutated afterwards.
func NewInputDispatcher(source EventSource, queue *CommandQueue, mapper *AxisMapper, deadZone int) *InputDispatcher {
	return &InputDispatcher{
		source:   source,
		queue:    queue,
		mapper:   mapper,
		bindings: defaultBindings(),
		buttons:  defaultButtonMap,
		axes:     defaultAxisMap,
		deadZone: int16(deadZone),
	}
}

// Run consumes events until ctx is cancelled or the source fails.
func (d *InputDispatcher) Run(ctx context.Context) {
	for {
		ev, err := d.source.Next(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Joystick read error - %v\n", err)
			}
			return
		}
		d.handle(ev)
	}
}

// handle maps one event to its action. Out-of-range indices and unbound
// control names are ignored, not fatal: a fancier joystick than the map
// covers must not crash the controller.
func (d *InputDispatcher) handle(ev Event) {
	switch ev.Kind {
	case ButtonDown:
		if ev.Index < 0 || ev.Index >= len(d.buttons) {
			return
		}
		d.apply(d.bindings[d.buttons[ev.Index]], 0)
	case AxisMotion:
		mag := int(ev.Value)
		if mag < 0 {
			mag = -mag
		}
		if mag <= int(d.deadZone) {
			return // inside the dead zone, sensor drift
		}
		if ev.Index < 0 || ev.Index >= len(d.axes) {
			return
		}
		d.apply(d.bindings[d.axes[ev.Index]], ev.Value)
	}
}

func (d *InputDispatcher) apply(act action, raw int16) {
	switch act.kind {
	case actionNone:
		// unbound control
	case actionLand:
		log.Println("Pressed Land button")
		if act.force {
			d.queue.Clear()
		}
		d.queue.Push(cmdLand)
	case actionTakeoff:
		log.Println("Pressed Takeoff button")
		d.queue.Push(cmdTakeoff)
	case actionEmergency:
		log.Println("Pressed Emergency button")
		d.queue.Clear()
		d.queue.Push(cmdEmergency)
	case actionCommandMode:
		log.Println("Pressed Command button")
		d.queue.Push(cmdSDKMode)
	case actionSetAxis:
		if cmd, ok := d.mapper.Update(act.axis, raw); ok {
			d.queue.Push(cmd)
		}
	}
}
