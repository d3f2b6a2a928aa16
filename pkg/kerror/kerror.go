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

// Package kerror contains kernel error conditions exported as error
// interface values instead of Errno. This allows for fast comparison and
// returns when the comparand or return value is of type error.
//
// Errors in this package describe expected runtime conditions reported to
// callers of blocking operations. Kernel-logic defects (contract
// violations) are not errors; they panic at the point of detection.
package kerror

import (
	"errors"

	"golang.org/x/sys/unix"
)

var (
	// ErrCanceled is returned if a cancellable blocking operation is
	// aborted by a cancellation signal before it can complete. The
	// operation's resources are always released before this is returned.
	ErrCanceled = errors.New("blocking operation was cancelled")
)

// errorMap is the map used to convert kernel errors into errnos.
var errorMap = map[error]unix.Errno{
	ErrCanceled: unix.EINTR,
}

// AddErrorTranslation allows subsystems to populate the error map by adding
// their own translations during initialization. Returns if the error
// translation is accepted or not. A pre-existing translation will not be
// overwritten by the new translation.
func AddErrorTranslation(from error, to unix.Errno) bool {
	if _, ok := errorMap[from]; ok {
		return false
	}

	errorMap[from] = to
	return true
}

// TranslateError translates errors to errnos, it will return false if
// the error was not registered.
func TranslateError(from error) (unix.Errno, bool) {
	err, ok := errorMap[from]
	return err, ok
}
