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

// Package kernel provides the cooperative thread-synchronization layer:
// threads with explicit scheduling states, FIFO wait queues, a
// single-CPU dispatch loop, and a blocking mutex with direct ownership
// handoff.
//
// At most one thread executes kernel logic at any instant. Concurrency
// arises from interleaving at explicit voluntary-suspension points, so
// kernel-visible fields are mutated only by the thread currently holding
// the CPU and need no additional locking.
package kernel

// ThreadState is a coarse representation of the current execution status
// of a kernel thread.
type ThreadState int

const (
	// ThreadStateNone is an illegal state used only as the zero value of
	// a not-yet-started thread.
	ThreadStateNone ThreadState = iota

	// ThreadStateRunnable indicates that the thread is on the run queue,
	// eligible for selection by the dispatch loop but not yet executing.
	ThreadStateRunnable

	// ThreadStateRunning indicates that the thread currently holds the
	// CPU.
	ThreadStateRunning

	// ThreadStateSleeping indicates that the thread is blocked on a wait
	// queue for an indefinite amount of time and cannot be woken by
	// cancellation.
	ThreadStateSleeping

	// ThreadStateSleepingCancellable indicates that the thread is blocked
	// on a wait queue, but the sleep may be aborted by Kernel.Cancel.
	ThreadStateSleepingCancellable

	// ThreadStateExited indicates that the thread's entry function has
	// returned. An exited thread is never scheduled again.
	ThreadStateExited
)

// String implements fmt.Stringer.
func (s ThreadState) String() string {
	switch s {
	case ThreadStateNone:
		return "None"
	case ThreadStateRunnable:
		return "Runnable"
	case ThreadStateRunning:
		return "Running"
	case ThreadStateSleeping:
		return "Sleeping"
	case ThreadStateSleepingCancellable:
		return "SleepingCancellable"
	case ThreadStateExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// Thread is a cooperative kernel thread.
//
// A thread is, at every instant, exactly one of: executing (the CPU
// holder), enqueued on some wait queue, or on the run queue pending
// scheduling. The queue currently holding the thread owns its queued
// slot; the threadEntry links below are manipulated only by that queue.
type Thread struct {
	// name identifies the thread in logs and contract-violation
	// messages. It is immutable after creation.
	name string

	// kernel is the kernel this thread belongs to. Immutable.
	kernel *Kernel

	// state is this thread's scheduling state. It is written only while
	// this thread or the dispatch loop holds the CPU.
	state ThreadState

	// cancelled may be set by any running thread at any time via
	// Kernel.Cancel, but is acted upon only when this thread resumes
	// from a cancellable sleep.
	cancelled bool

	// wchan is the wait queue this thread is currently enqueued on, or
	// nil. It is maintained by WaitQueue.Enqueue/Dequeue/Remove; a
	// thread is on at most one queue at a time.
	wchan *WaitQueue

	// gate is the baton used to hand this thread the CPU. It is
	// unbuffered: a send transfers execution to the thread, which was
	// blocked receiving in switchOut or in its start-up wrapper.
	gate chan struct{}

	// threadEntry links this thread into the wait queue named by wchan.
	threadEntry
}

// Name returns the thread's name.
func (t *Thread) Name() string {
	return t.name
}

// State returns the thread's current scheduling state.
func (t *Thread) State() ThreadState {
	return t.state
}

// Cancelled returns whether the thread has been flagged for
// cancellation.
func (t *Thread) Cancelled() bool {
	return t.cancelled
}
