// config.go

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
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunable settings of the controller. Zero values fall
// back to the defaults the reference controller flies with.
type Config struct {
	Drone struct {
		Addr string `toml:"addr"`
		Port int    `toml:"port"`
	} `toml:"drone"`
	Joystick struct {
		Device   string `toml:"device"`   // empty: first enumerated stick
		DeadZone int    `toml:"deadZone"` // raw units around neutral to ignore
	} `toml:"joystick"`
	Sender struct {
		BackoffMs  int `toml:"backoffMs"`  // sleep on empty queue
		TimeoutMs  int `toml:"timeoutMs"`  // reply wait per command
		QueueDepth int `toml:"queueDepth"` // pending command bound, 0 = unbounded
	} `toml:"sender"`
	Monitor struct {
		Listen string `toml:"listen"` // empty: monitor disabled
	} `toml:"monitor"`
}

// DefaultConfig returns the settings the reference controller ships with.
func DefaultConfig() *Config {
	c := &Config{}
	c.Drone.Addr = defaultDroneAddr
	c.Drone.Port = defaultDroneControlPort
	c.Joystick.DeadZone = DefaultDeadZone
	c.Sender.BackoffMs = int(DefaultPopBackoff / time.Millisecond)
	c.Sender.TimeoutMs = int(DefaultReplyTimeout / time.Millisecond)
	c.Sender.QueueDepth = DefaultQueueDepth
	return c
}

// LoadConfig reads a TOML file over the defaults, so a config file only
// needs to state what it changes.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Drone.Addr == "" {
		return fmt.Errorf("drone.addr must not be empty")
	}
	if c.Drone.Port <= 0 || c.Drone.Port > 65535 {
		return fmt.Errorf("drone.port %d out of range", c.Drone.Port)
	}
	if c.Joystick.DeadZone < 0 || c.Joystick.DeadZone > axisMaxValue {
		return fmt.Errorf("joystick.deadZone %d out of range", c.Joystick.DeadZone)
	}
	if c.Sender.BackoffMs < 0 || c.Sender.TimeoutMs < 0 || c.Sender.QueueDepth < 0 {
		return fmt.Errorf("sender timings and queue depth must not be negative")
	}
	return nil
}

// Backoff returns the sender's empty-queue sleep as a duration.
func (c *Config) Backoff() time.Duration {
	return time.Duration(c.Sender.BackoffMs) * time.Millisecond
}

// ReplyTimeout returns the per-command reply wait as a duration.
func (c *Config) ReplyTimeout() time.Duration {
	return time.Duration(c.Sender.TimeoutMs) * time.Millisecond
}
