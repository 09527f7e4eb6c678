// queue_test.go

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
	"runtime"
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewCommandQueue(0)

	if _, ok := q.Pop(); ok {
		t.Error("Pop on an empty queue should report empty")
	}

	q.Push("command")
	q.Push("takeoff")
	q.Push("rc 10 0 0 0")

	for _, want := range []string{"command", "takeoff", "rc 10 0 0 0"} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Errorf("Expected '%s', got '%s' (ok=%v)", want, got, ok)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Queue should be empty again")
	}
}

func TestQueueClear(t *testing.T) {
	q := NewCommandQueue(0)
	q.Push("rc 10 0 0 0")
	q.Push("rc 20 0 0 0")
	q.Clear()
	if _, ok := q.Pop(); ok {
		t.Error("Pop after Clear should report empty")
	}
	if q.Len() != 0 {
		t.Errorf("Len after Clear is %d", q.Len())
	}
}

func TestQueueOverflowDropsOldestMotion(t *testing.T) {
	q := NewCommandQueue(3)
	q.Push("rc 1 0 0 0")
	q.Push("land")
	q.Push("rc 2 0 0 0")
	q.Push("takeoff") // full: oldest rc goes, land stays

	for _, want := range []string{"land", "rc 2 0 0 0", "takeoff"} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Errorf("Expected '%s', got '%s' (ok=%v)", want, got, ok)
		}
	}
}

func TestQueueOverflowNeverDropsSafety(t *testing.T) {
	q := NewCommandQueue(2)
	q.Push("land")
	q.Push("emergency")
	q.Push("takeoff") // no motion command to evict: the queue grows instead

	if q.Len() != 3 {
		t.Fatalf("Expected 3 queued commands, got %d", q.Len())
	}
	for _, want := range []string{"land", "emergency", "takeoff"} {
		got, _ := q.Pop()
		if got != want {
			t.Errorf("Expected '%s', got '%s'", want, got)
		}
	}
}

func TestQueueConcurrentStress(t *testing.T) {
	q := NewCommandQueue(0)
	const producers = 4
	const perProducer = 2500

	var wgProd sync.WaitGroup
	for p := 0; p < producers; p++ {
		wgProd.Add(1)
		go func(p int) {
			defer wgProd.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(fmt.Sprintf("rc %d %d 0 0", p, i))
			}
		}(p)
	}
	done := make(chan struct{})
	go func() {
		wgProd.Wait()
		close(done)
	}()

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wgCons sync.WaitGroup
	for c := 0; c < 2; c++ {
		wgCons.Add(1)
		go func() {
			defer wgCons.Done()
			for {
				cmd, ok := q.Pop()
				if !ok {
					select {
					case <-done:
						if q.Len() == 0 {
							return
						}
					default:
					}
					runtime.Gosched()
					continue
				}
				mu.Lock()
				if seen[cmd] {
					t.Errorf("Command '%s' observed twice", cmd)
				}
				seen[cmd] = true
				mu.Unlock()
			}
		}()
	}
	wgCons.Wait()

	if len(seen) != producers*perProducer {
		t.Errorf("Expected %d distinct commands, got %d", producers*perProducer, len(seen))
	}
}
