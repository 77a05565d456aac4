// procalc — a scientific calculator for the terminal and the web
// Copyright (c) 2025 Khwahish Sharma (aka 0xRootAnon)
//
// Licensed under the GNU General Public License v3.0 or later (GPLv3+).
// You may obtain a copy of the License at
// https://www.gnu.org/licenses/gpl-3.0.html
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

package calc

import (
	"errors"
	"fmt"
)

// ErrFailure is the single outcome reported for any expression that cannot be
// evaluated. Every error returned by this package matches it with errors.Is.
var ErrFailure = errors.New("calc: evaluation failed")

// Error carries the stage and byte offset of a failure for logs and tests.
// Callers should only ever test it against ErrFailure.
type Error struct {
	Stage string // "limits", "parse" or "eval"
	Pos   int
	Msg   string
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("calc %s: %s at offset %d", e.Stage, e.Msg, e.Pos)
	}
	return fmt.Sprintf("calc %s: %s", e.Stage, e.Msg)
}

func (e *Error) Is(target error) bool { return target == ErrFailure }

func parseErr(pos int, format string, a ...interface{}) *Error {
	return &Error{Stage: "parse", Pos: pos, Msg: fmt.Sprintf(format, a...)}
}
