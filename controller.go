// controller.go

// This file contains the orchestrator owning the two long-lived tasks and
// the shutdown path.

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
	"sync"
)

// Controller owns the queue, the dispatcher and the sender, runs the two of
// them as independent goroutines, and manages startup and shutdown. The
// joystick belongs to the dispatcher alone, the link to the sender alone;
// only the queue is shared.
type Controller struct {
	cfg        *Config
	queue      *CommandQueue
	source     EventSource
	link       *CommandLink
	dispatcher *InputDispatcher
	sender     *CommandSender
	monitor    *Monitor
}

// NewController builds a controller around an already-open event source and
// command link. The caller keeps ownership of both and closes them after
// Run returns.
func NewController(cfg *Config, source EventSource, link *CommandLink) (*Controller, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	queue := NewCommandQueue(cfg.Sender.QueueDepth)
	mapper := NewAxisMapper()

	var monitor *Monitor
	var observe func(Result)
	if cfg.Monitor.Listen != "" {
		var err error
		monitor, err = NewMonitor(cfg.Monitor.Listen)
		if err != nil {
			return nil, err
		}
		observe = monitor.Publish
	}

	return &Controller{
		cfg:        cfg,
		queue:      queue,
		source:     source,
		link:       link,
		dispatcher: NewInputDispatcher(source, queue, mapper, cfg.Joystick.DeadZone),
		sender:     NewCommandSender(queue, link, cfg.Backoff(), cfg.ReplyTimeout(), observe),
		monitor:    monitor,
	}, nil
}

// Run starts the dispatcher and sender goroutines and blocks until ctx is
// cancelled. On the way out both loops are stopped and joined, anything
// still queued is discarded as stale, and a final landing command goes
// straight out over the link - even after errors, the drone must come down.
func (c *Controller) Run(ctx context.Context) {
	if c.monitor != nil {
		c.monitor.Start()
		log.Printf("Monitor feed on ws://%s/watch\n", c.monitor.Addr())
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.dispatcher.Run(loopCtx)
	}()
	go func() {
		defer wg.Done()
		c.sender.Run(loopCtx)
	}()

	<-ctx.Done()
	cancel()
	wg.Wait()

	c.queue.Clear()
	c.sender.exchange(cmdLand)
	log.Println("Forced landing sent, controller stopped")

	if c.monitor != nil {
		c.monitor.Close()
	}
}
