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
	"fmt"

	"github.com/suki-sahota/My-Kernel-Mutex/pkg/kerror"
)

// Mutex is a blocking mutual-exclusion primitive with a FIFO wait queue
// and direct ownership handoff: an unlock with waiters present transfers
// ownership straight to the earliest waiter, with no intermediate free
// state a third thread could race to claim.
//
// Mutexes are only ever locked and unlocked from thread context, never
// from the dispatch loop. Locking is not recursive: a thread locking a
// mutex it already holds, or unlocking one it does not hold, is a
// kernel-logic defect and panics rather than corrupting the owner
// invariant.
type Mutex struct {
	// kernel is the kernel whose threads contend for this mutex.
	kernel *Kernel

	// owner is the thread holding the mutex, or nil if it is free. If
	// waiters is non-empty, owner is non-nil.
	owner *Thread

	// waiters holds threads blocked in Lock or LockCancellable, in
	// arrival order. Acquisition order equals arrival order.
	waiters WaitQueue
}

// Init initializes the mutex: free, with an empty wait queue. It never
// suspends and has no failure mode.
func (m *Mutex) Init(k *Kernel) {
	m.kernel = k
	m.owner = nil
	m.waiters = WaitQueue{}
}

// Owner returns the thread currently holding the mutex, or nil if the
// mutex is free.
func (m *Mutex) Owner() *Thread {
	return m.owner
}

// Lock acquires the mutex for the current thread. If the mutex is free
// it is claimed immediately without suspension; otherwise the thread
// sleeps at the tail of the wait queue and resumes only once a later
// Unlock has already made it the owner.
//
// The sleep is uninterruptible. Panics if the current thread already
// holds the mutex.
func (m *Mutex) Lock() {
	t := m.kernel.mustCurrent("Mutex.Lock")
	if t == m.owner {
		panic(fmt.Sprintf("kernel: thread %s locking mutex it already holds", t.name))
	}

	if m.owner == nil {
		m.owner = t
	} else {
		m.kernel.SleepOn(&m.waiters)
	}

	if m.owner != t {
		panic(fmt.Sprintf("kernel: thread %s resumed from Mutex.Lock without ownership", t.name))
	}
}

// LockCancellable acquires the mutex like Lock, but blocks cancellably:
// the wait may be aborted by Kernel.Cancel. It returns nil with
// ownership held, or kerror.ErrCanceled with the mutex fully released by
// this thread.
//
// The cancellation flag is checked at this thread's own resumption,
// before returning. Ownership is only ever granted by the Unlock handoff
// path, so on cancellation the mutex is released here only if that
// handoff actually made this thread the owner; either way the thread is
// never left recorded as owner when the error is returned, and no
// caller-side cleanup is needed.
func (m *Mutex) LockCancellable() error {
	t := m.kernel.mustCurrent("Mutex.LockCancellable")
	if t == m.owner {
		panic(fmt.Sprintf("kernel: thread %s locking mutex it already holds", t.name))
	}

	if m.owner == nil {
		m.owner = t
	} else if err := m.kernel.CancellableSleepOn(&m.waiters); err != nil {
		// Woken by cancellation, or cancelled while waiting and then
		// handed the mutex anyway. Release it in the latter case, within
		// this same resumption step, so no thread ever observes a
		// cancelled owner.
		if m.owner == t {
			m.Unlock()
		}
		return err
	}

	if t.cancelled {
		// The mutex was claimed on the immediate path by a thread that
		// was already flagged. Honor the flag before returning.
		m.Unlock()
		return kerror.ErrCanceled
	}

	if m.owner != t {
		panic(fmt.Sprintf("kernel: thread %s resumed from Mutex.LockCancellable without ownership", t.name))
	}
	return nil
}

// Unlock releases the mutex. If no threads are waiting the mutex becomes
// free. Otherwise ownership transfers directly to the head of the wait
// queue (the earliest arrival), which becomes Runnable and is submitted
// to the run queue; the mutex is never observably free in between.
//
// Unlock never blocks. Panics if the current thread does not hold the
// mutex.
func (m *Mutex) Unlock() {
	t := m.kernel.mustCurrent("Mutex.Unlock")
	if t != m.owner {
		panic(fmt.Sprintf("kernel: thread %s unlocking mutex it does not hold (owner %s)", t.name, threadName(m.owner)))
	}

	if m.waiters.Empty() {
		m.owner = nil
		return
	}

	next := m.waiters.Dequeue()
	m.owner = next
	m.kernel.MakeRunnable(next)
}

func threadName(t *Thread) string {
	if t == nil {
		return "<none>"
	}
	return t.name
}
