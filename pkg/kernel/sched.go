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

// Cooperative single-CPU scheduling.

import (
	"fmt"

	"github.com/suki-sahota/My-Kernel-Mutex/pkg/kerror"
	"github.com/suki-sahota/My-Kernel-Mutex/pkg/log"
)

// Kernel is a cooperative single-CPU scheduler. Each thread runs on its
// own goroutine, but an unbuffered baton handoff guarantees that exactly
// one of {the dispatch loop, one thread} executes at any instant, so all
// Kernel, Thread, WaitQueue and Mutex fields are mutated only by the
// current CPU holder.
type Kernel struct {
	// runq holds Runnable threads awaiting dispatch, in FIFO order. The
	// run queue is itself a WaitQueue; a runnable thread's wchan points
	// here while it waits for selection, and its state distinguishes
	// "pending scheduling" from "blocked".
	runq WaitQueue

	// curthr is the thread currently holding the CPU, or nil while the
	// dispatch loop itself runs.
	curthr *Thread

	// schedGate hands the CPU from the current thread back to the
	// dispatch loop. Unbuffered.
	schedGate chan struct{}

	// live counts threads that have not yet exited.
	live int
}

// New returns a Kernel with an empty run queue and no threads.
func New() *Kernel {
	return &Kernel{
		schedGate: make(chan struct{}),
	}
}

// ThreadFunc is the entry point of a cooperative thread.
type ThreadFunc func(t *Thread)

// NewThread creates a named thread executing fn and places it on the run
// queue. The thread first runs once the dispatch loop selects it; when
// fn returns the thread exits.
//
// Thread lifetime beyond creation and exit (join, detach, clone) is not
// this layer's concern.
func (k *Kernel) NewThread(name string, fn ThreadFunc) *Thread {
	t := &Thread{
		name:   name,
		kernel: k,
		gate:   make(chan struct{}),
	}
	k.live++
	t.state = ThreadStateRunnable
	k.runq.Enqueue(t)
	go t.run(fn)
	return t
}

// run waits for the first dispatch, executes the thread body, and
// retires the thread.
func (t *Thread) run(fn ThreadFunc) {
	<-t.gate
	fn(t)
	t.kernel.exit(t)
}

// exit retires the current thread and hands the CPU back to the dispatch
// loop. The caller's goroutine returns immediately afterwards and the
// thread is never scheduled again.
func (k *Kernel) exit(t *Thread) {
	if t != k.curthr {
		panic(fmt.Sprintf("kernel: exit of thread %s which does not hold the CPU", t.name))
	}
	t.state = ThreadStateExited
	k.live--
	log.Debugf("kernel: thread %s exited, %d live", t.name, k.live)
	k.schedGate <- struct{}{}
}

// Run dispatches threads until every thread has exited. Threads are
// selected from the head of the run queue, strictly in the order they
// became runnable.
//
// Run panics if live threads remain but none is runnable: in a
// cooperative kernel that is a deadlock, which is a kernel-logic defect
// of the same class as a mutex contract violation.
func (k *Kernel) Run() {
	for k.live > 0 {
		next := k.runq.Dequeue()
		if next == nil {
			panic(fmt.Sprintf("kernel: deadlock: %d live threads but none runnable", k.live))
		}
		if next.state != ThreadStateRunnable {
			panic(fmt.Sprintf("kernel: dispatching thread %s in state %v", next.name, next.state))
		}
		next.state = ThreadStateRunning
		k.curthr = next
		log.Debugf("kernel: dispatching %s", next.name)
		next.gate <- struct{}{}
		<-k.schedGate
		k.curthr = nil
	}
}

// Current returns the thread currently holding the CPU, or nil if the
// dispatch loop (or no kernel code at all) is running.
func (k *Kernel) Current() *Thread {
	return k.curthr
}

// mustCurrent returns the current thread, panicking if op was invoked
// from outside thread context. Blocking and mutex operations are only
// ever legal from a thread; they can never be used from the dispatch
// loop or from a goroutine the kernel does not manage.
func (k *Kernel) mustCurrent(op string) *Thread {
	t := k.curthr
	if t == nil {
		panic(fmt.Sprintf("kernel: %s called from outside thread context", op))
	}
	return t
}

// switchOut relinquishes the CPU on behalf of the current thread. It
// returns only after the thread has been made runnable again and
// re-selected by the dispatch loop. The caller must already have parked
// the thread (state set, enqueued) before calling.
func (k *Kernel) switchOut() {
	t := k.curthr
	k.schedGate <- struct{}{}
	<-t.gate
}

// MakeRunnable moves t into the runnable pool: its state becomes
// Runnable and it is appended to the run queue. Panics if t still holds
// the CPU, has exited, or is still enqueued on a wait queue.
func (k *Kernel) MakeRunnable(t *Thread) {
	if t.state == ThreadStateRunning || t.state == ThreadStateExited {
		panic(fmt.Sprintf("kernel: MakeRunnable of thread %s in state %v", t.name, t.state))
	}
	t.state = ThreadStateRunnable
	k.runq.Enqueue(t)
}

// Yield voluntarily reschedules the current thread. It remains runnable
// and is re-dispatched after everything already on the run queue.
func (k *Kernel) Yield() {
	t := k.mustCurrent("Yield")
	t.state = ThreadStateRunnable
	k.runq.Enqueue(t)
	k.switchOut()
}

// SleepOn blocks the current thread on q until some other thread wakes
// it (via WakeupOn, BroadcastOn, or a primitive built on them). The
// sleep is uninterruptible: cancellation does not wake it.
func (k *Kernel) SleepOn(q *WaitQueue) {
	t := k.mustCurrent("SleepOn")
	t.state = ThreadStateSleeping
	q.Enqueue(t)
	k.switchOut()
}

// CancellableSleepOn blocks the current thread on q like SleepOn, but
// the sleep may be aborted by Kernel.Cancel. It returns
// kerror.ErrCanceled if the thread's cancellation flag is set, checked
// at the thread's own resumption; if the flag is already set on entry it
// fails fast without ever enqueueing.
//
// Regardless of which event woke the thread, the flag is the sole
// indication of cancellation: being woken normally with the flag set
// still reports cancellation.
func (k *Kernel) CancellableSleepOn(q *WaitQueue) error {
	t := k.mustCurrent("CancellableSleepOn")
	if t.cancelled {
		return kerror.ErrCanceled
	}
	t.state = ThreadStateSleepingCancellable
	q.Enqueue(t)
	k.switchOut()
	if t.cancelled {
		return kerror.ErrCanceled
	}
	return nil
}

// WakeupOn dequeues the earliest-arrived thread on q and makes it
// runnable, returning it. Returns nil if q is empty.
func (k *Kernel) WakeupOn(q *WaitQueue) *Thread {
	t := q.Dequeue()
	if t == nil {
		return nil
	}
	k.MakeRunnable(t)
	return t
}

// BroadcastOn wakes every thread on q, in FIFO order.
func (k *Kernel) BroadcastOn(q *WaitQueue) {
	for k.WakeupOn(q) != nil {
	}
}

// Cancel flags t for cancellation. The flag may be set at any time by
// any running thread; it is acted upon only by t itself, at its own
// resumption.
//
// If t is currently in a cancellable sleep it is pulled off its wait
// queue and made runnable so that it can observe the flag. Cancel never
// grants t whatever it was waiting for; ownership handoff remains the
// waking primitive's business alone.
func (k *Kernel) Cancel(t *Thread) {
	t.cancelled = true
	if t.state != ThreadStateSleepingCancellable {
		return
	}
	log.Debugf("kernel: cancelling %s out of its wait queue", t.name)
	t.wchan.Remove(t)
	k.MakeRunnable(t)
}
