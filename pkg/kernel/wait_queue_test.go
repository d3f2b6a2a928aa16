// Copyright 2026 The My-Kernel-Mutex Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWaitQueueFIFO(t *testing.T) {
	var q WaitQueue

	a := &Thread{name: "a"}
	b := &Thread{name: "b"}
	c := &Thread{name: "c"}

	for i, thr := range []*Thread{a, b, c} {
		q.Enqueue(thr)
		if thr.wchan != &q {
			t.Errorf("thread %s wchan not set after Enqueue", thr.name)
		}
		if got, want := q.Len(), i+1; got != want {
			t.Errorf("Len() = %d, want %d", got, want)
		}
	}

	// The size counter must agree with the actual list length.
	if got, want := q.list.Len(), q.Len(); got != want {
		t.Errorf("list length %d disagrees with size %d", got, want)
	}

	var order []string
	for thr := q.Dequeue(); thr != nil; thr = q.Dequeue() {
		order = append(order, thr.name)
		if thr.wchan != nil {
			t.Errorf("thread %s wchan not cleared after Dequeue", thr.name)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
		t.Errorf("dequeue order mismatch (-want +got):\n%s", diff)
	}
	if !q.Empty() {
		t.Errorf("queue not empty after draining")
	}
}

func TestWaitQueueDequeueEmpty(t *testing.T) {
	var q WaitQueue
	if thr := q.Dequeue(); thr != nil {
		t.Errorf("Dequeue on empty queue returned %v, want nil", thr.name)
	}
}

func TestWaitQueueRemoveMiddle(t *testing.T) {
	var q WaitQueue

	a := &Thread{name: "a"}
	b := &Thread{name: "b"}
	c := &Thread{name: "c"}
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	q.Remove(b)
	if b.wchan != nil {
		t.Errorf("removed thread still has wchan set")
	}
	if got, want := q.Len(), 2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}

	// FIFO order of the remaining threads must be preserved.
	var order []string
	for thr := q.Dequeue(); thr != nil; thr = q.Dequeue() {
		order = append(order, thr.name)
	}
	if diff := cmp.Diff([]string{"a", "c"}, order); diff != "" {
		t.Errorf("order after Remove mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitQueueDoubleEnqueuePanics(t *testing.T) {
	var q1, q2 WaitQueue
	a := &Thread{name: "a"}
	q1.Enqueue(a)

	defer func() {
		if recover() == nil {
			t.Errorf("enqueueing a thread already on a queue did not panic")
		}
	}()
	q2.Enqueue(a)
}

func TestWaitQueueRemoveForeignPanics(t *testing.T) {
	var q1, q2 WaitQueue
	a := &Thread{name: "a"}
	q1.Enqueue(a)

	defer func() {
		if recover() == nil {
			t.Errorf("removing a thread from the wrong queue did not panic")
		}
	}()
	q2.Remove(a)
}
