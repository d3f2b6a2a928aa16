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

import "fmt"

// WaitQueue is a FIFO-ordered holding area for threads. It backs the
// mutex wait list, the run queue, and any other blocking primitive built
// on Kernel.SleepOn/WakeupOn, so waiting behaves uniformly everywhere.
//
// Enqueue and Dequeue are O(1). FIFO order is a hard guarantee: there is
// no priority reordering, so every waiter is reached by exactly the
// wakeup that advances the queue past its position.
//
// The zero value for WaitQueue is an empty queue ready for use.
type WaitQueue struct {
	list threadList
	size int
}

// Enqueue appends t at the tail of the queue and records the queue as
// t's wchan.
//
// A thread may be on at most one queue; enqueueing a thread that is
// already on a queue is a kernel-logic defect and panics.
func (q *WaitQueue) Enqueue(t *Thread) {
	if t.wchan != nil {
		panic(fmt.Sprintf("kernel: enqueue of thread %s which is already on a wait queue", t.name))
	}
	t.wchan = q
	q.list.PushBack(t)
	q.size++
}

// Dequeue removes and returns the thread at the head of the queue
// (earliest arrival), clearing its wchan. It returns nil if the queue is
// empty.
func (q *WaitQueue) Dequeue() *Thread {
	t := q.list.Front()
	if t == nil {
		return nil
	}
	q.list.Remove(t)
	t.wchan = nil
	q.size--
	return t
}

// Remove removes t from the queue, preserving the order of the remaining
// threads. It is used by cancellation to pull a thread out from the
// middle of a queue. Panics if t is not on this queue.
func (q *WaitQueue) Remove(t *Thread) {
	if t.wchan != q {
		panic(fmt.Sprintf("kernel: remove of thread %s which is not on this wait queue", t.name))
	}
	q.list.Remove(t)
	t.wchan = nil
	q.size--
}

// Len returns the number of threads on the queue.
func (q *WaitQueue) Len() int {
	return q.size
}

// Empty returns true iff no threads are on the queue.
func (q *WaitQueue) Empty() bool {
	return q.size == 0
}
