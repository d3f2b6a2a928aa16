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

// threadList is an intrusive list of Threads. Entries can be added to
// or removed from the list in O(1) time and with no additional memory
// allocations.
//
// The zero value for threadList is an empty list ready to use.
//
// To iterate over a list (where l is a threadList):
//
//	for t := l.Front(); t != nil; t = t.Next() {
//		// do something with t.
//	}
type threadList struct {
	head *Thread
	tail *Thread
}

// Reset resets list l to the empty state.
func (l *threadList) Reset() {
	l.head = nil
	l.tail = nil
}

// Empty returns true iff the list is empty.
func (l *threadList) Empty() bool {
	return l.head == nil
}

// Front returns the first thread of list l or nil.
func (l *threadList) Front() *Thread {
	return l.head
}

// Back returns the last thread of list l or nil.
func (l *threadList) Back() *Thread {
	return l.tail
}

// Len returns the number of threads in the list.
//
// NOTE: This is an O(n) operation.
func (l *threadList) Len() (count int) {
	for t := l.Front(); t != nil; t = t.Next() {
		count++
	}
	return count
}

// PushBack inserts the thread t at the back of list l.
func (l *threadList) PushBack(t *Thread) {
	t.SetNext(nil)
	t.SetPrev(l.tail)
	if l.tail != nil {
		l.tail.SetNext(t)
	} else {
		l.head = t
	}

	l.tail = t
}

// Remove removes t from l.
func (l *threadList) Remove(t *Thread) {
	prev := t.Prev()
	next := t.Next()

	if prev != nil {
		prev.SetNext(next)
	} else if l.head == t {
		l.head = next
	}

	if next != nil {
		next.SetPrev(prev)
	} else if l.tail == t {
		l.tail = prev
	}

	t.SetNext(nil)
	t.SetPrev(nil)
}

// threadEntry is the linkage embedded in Thread so that a Thread can be
// placed on a threadList with no separate allocation.
type threadEntry struct {
	next *Thread
	prev *Thread
}

// Next returns the thread that follows e in the list.
func (e *threadEntry) Next() *Thread {
	return e.next
}

// Prev returns the thread that precedes e in the list.
func (e *threadEntry) Prev() *Thread {
	return e.prev
}

// SetNext assigns t as the thread that follows e in the list.
func (e *threadEntry) SetNext(t *Thread) {
	e.next = t
}

// SetPrev assigns t as the thread that precedes e in the list.
func (e *threadEntry) SetPrev(t *Thread) {
	e.prev = t
}
