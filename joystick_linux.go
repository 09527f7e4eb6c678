// joystick_linux.go

// This file reads the Linux kernel joystick interface (/dev/input/js*).

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
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"unsafe"

	"golang.org/x/sys/unix"
)

// joystick ioctl requests (linux/joystick.h)
const (
	jsiocGName    = 0x80006a13 + (128 << 16) // JSIOCGNAME(128)
	jsiocGAxes    = 0x80016a11               // number of axes
	jsiocGButtons = 0x80016a12               // number of buttons
)

// js_event types
const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80 // OR'd into the type while the initial state is replayed
)

// jsEvent mirrors the kernel's struct js_event.
type jsEvent struct {
	Time  uint32 // event timestamp in milliseconds
	Value int16
	Type  uint8
	Index uint8
}

// Joystick is an EventSource backed by a /dev/input/js* device node.
type Joystick struct {
	file    *os.File
	name    string
	axes    uint8
	buttons uint8
}

// ErrNoJoystick is returned when device enumeration finds nothing to open.
var ErrNoJoystick = errors.New("no joysticks connected")

// ListJoysticks returns the joystick device nodes present on the system,
// in stable order.
func ListJoysticks() []string {
	matches, _ := filepath.Glob("/dev/input/js*")
	sort.Strings(matches)
	return matches
}

// OpenFirstJoystick enumerates the attached joysticks, logs what it finds
// and opens the first one. It fails with ErrNoJoystick when none is present.
func OpenFirstJoystick() (*Joystick, error) {
	paths := ListJoysticks()
	if len(paths) == 0 {
		return nil, ErrNoJoystick
	}
	log.Println("Joysticks available:")
	for _, p := range paths {
		if j, err := OpenJoystick(p); err == nil {
			log.Printf("  - %s (%s)\n", j.name, p)
			j.Close()
		}
	}
	return OpenJoystick(paths[0])
}

// OpenJoystick opens the given device node and queries its identity.
func OpenJoystick(path string) (*Joystick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open joystick %s: %w", path, err)
	}
	j := &Joystick{file: f}
	if err = ioctlStr(f, jsiocGName, &j.name); err != nil {
		f.Close()
		return nil, err
	}
	if err = ioctl(f, jsiocGAxes, unsafe.Pointer(&j.axes)); err != nil {
		f.Close()
		return nil, err
	}
	if err = ioctl(f, jsiocGButtons, unsafe.Pointer(&j.buttons)); err != nil {
		f.Close()
		return nil, err
	}
	return j, nil
}

// Name returns the device-reported joystick name.
func (j *Joystick) Name() string { return j.name }

// Next blocks until the device produces a button press or an axis reading,
// polling so that cancellation is observed within the poll interval.
// Initial-state replay events are passed through like live ones so the
// controller starts from the sticks' actual positions.
func (j *Joystick) Next(ctx context.Context) (Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Event{}, err
		}
		pfd := []unix.PollFd{{Fd: int32(j.file.Fd()), Events: unix.POLLIN}}
		n, err := unix.Poll(pfd, 200)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return Event{}, err
		}
		if n == 0 || pfd[0].Revents&unix.POLLIN == 0 {
			continue
		}

		var e jsEvent
		if err := binary.Read(j.file, binary.LittleEndian, &e); err != nil {
			return Event{}, err
		}
		switch e.Type &^ jsEventInit {
		case jsEventButton:
			if e.Value == 0 {
				continue // button release
			}
			return Event{Kind: ButtonDown, Index: int(e.Index)}, nil
		case jsEventAxis:
			return Event{Kind: AxisMotion, Index: int(e.Index), Value: e.Value}, nil
		}
	}
}

// Close releases the device node.
func (j *Joystick) Close() error {
	return j.file.Close()
}

func ioctl(f *os.File, req uintptr, dest unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(dest))
	if errno != 0 {
		return fmt.Errorf("ioctl error: %d", errno)
	}
	return nil
}

func ioctlStr(f *os.File, req uintptr, dest *string) error {
	info := make([]byte, 128)
	if err := ioctl(f, req, unsafe.Pointer(&info[0])); err != nil {
		return err
	}
	n := 0
	for _, b := range info {
		if b != 0 {
			info[n] = b
			n++
		}
	}
	*dest = string(info[:n])
	return nil
}
