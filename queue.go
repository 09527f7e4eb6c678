// queue.go

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

import "sync"

// DefaultQueueDepth bounds how many commands may wait for the sender before
// old motion commands start being discarded.
const DefaultQueueDepth = 64

// CommandQueue is the FCFS queue between the input dispatcher (producer)
// and the command sender (consumer). Commands come off the queue in arrival
// order: Push appends at the tail and Pop removes from the head.
//
// The queue is bounded. When it is full, Push discards the oldest queued
// motion ('rc') command to make room; safety commands such as 'land' and
// 'emergency' are never discarded, so a queue holding only those is allowed
// to grow past its bound.
type CommandQueue struct {
	mu    sync.Mutex
	cmds  []string
	depth int // 0 means unbounded
}

// NewCommandQueue returns an empty queue holding at most depth commands.
// A depth of 0 leaves the queue unbounded.
func NewCommandQueue(depth int) *CommandQueue {
	return &CommandQueue{depth: depth}
}

// Push appends cmd to the tail of the queue. It never blocks.
func (q *CommandQueue) Push(cmd string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.depth > 0 && len(q.cmds) >= q.depth {
		for i, c := range q.cmds {
			if isMotionCommand(c) {
				q.cmds = append(q.cmds[:i], q.cmds[i+1:]...)
				break
			}
		}
	}
	q.cmds = append(q.cmds, cmd)
}

// Pop removes and returns the command at the head of the queue. ok is false
// when the queue is empty; the caller is expected to back off and retry
// rather than block here.
func (q *CommandQueue) Pop() (cmd string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.cmds) == 0 {
		return "", false
	}
	cmd = q.cmds[0]
	copy(q.cmds, q.cmds[1:])
	q.cmds = q.cmds[:len(q.cmds)-1]
	return cmd, true
}

// Clear atomically discards every pending command. Used by the emergency
// and forced-landing paths to preempt queued motion.
func (q *CommandQueue) Clear() {
	q.mu.Lock()
	q.cmds = q.cmds[:0]
	q.mu.Unlock()
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cmds)
}
