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

// Package calc evaluates calculator keypad expressions.
//
// Evaluation runs in three stages. Normalize balances parentheses and turns
// keypad glyphs (π ÷ × ^) into canonical operators. Rewrite replaces each
// keypad function (degree trigonometry, log, sqrt) and postfix factorial with
// primitive calls. Evaluate computes a primitive expression with IEEE double
// arithmetic. Only the names in the fixed primitive table can be called; no
// input is ever executed.
//
// Any failure is reported as an error matching ErrFailure. Infinite and NaN
// results are successes, as they are on the keypad: 1/0 is +Inf.
package calc

import (
	"fmt"
	"unicode/utf8"
)

// Limits bound the work done for a single expression.
type Limits struct {
	MaxLength int // in runes
	MaxDepth  int // nested parentheses, signs and exponents
}

var DefaultLimits = Limits{MaxLength: 4096, MaxDepth: 256}

// Engine runs the pipeline under a set of limits. It holds no other state and
// is safe for concurrent use.
type Engine struct {
	limits Limits
}

// New returns an Engine; zero limits fall back to DefaultLimits.
func New(l Limits) *Engine {
	if l.MaxLength <= 0 {
		l.MaxLength = DefaultLimits.MaxLength
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultLimits.MaxDepth
	}
	return &Engine{limits: l}
}

func (e *Engine) Limits() Limits { return e.limits }

// rewriteGrowth bounds how much longer Rewrite makes an expression. The
// worst case is a chain of factorials: each ! becomes fact( and ).
const rewriteGrowth = 8

// limitsFor returns the bounds a grammar is parsed under. Limits apply to
// keypad input; rewritten text gets room for what Rewrite adds to an input
// that was within them, one extra level of nesting per rewritten node at most.
func (e *Engine) limitsFor(g grammar) Limits {
	if g == surface {
		return e.limits
	}
	return Limits{
		MaxLength: e.limits.MaxLength * rewriteGrowth,
		MaxDepth:  e.limits.MaxDepth + e.limits.MaxLength,
	}
}

func (e *Engine) parse(s string, g grammar) (Node, error) {
	l := e.limitsFor(g)
	if n := utf8.RuneCountInString(s); n > l.MaxLength {
		return nil, &Error{Stage: "limits", Pos: -1, Msg: fmt.Sprintf("expression is %d characters, limit %d", n, l.MaxLength)}
	}
	return parse(s, g, l.MaxDepth)
}

// Parse normalizes raw and parses it with the keypad grammar.
func (e *Engine) Parse(raw string) (Node, error) {
	return e.parse(Normalize(raw), surface)
}

// Rewrite returns s with every keypad function and factorial replaced by its
// primitive form. Input that does not parse is returned unchanged and will
// fail in Evaluate.
func (e *Engine) Rewrite(s string) string {
	n, err := e.parse(s, surface)
	if err != nil {
		return s
	}
	return rewriteNode(n).String()
}

// Evaluate computes a rewritten expression. Anything Rewrite returns for
// input within the engine's limits is within Evaluate's.
func (e *Engine) Evaluate(s string) (float64, error) {
	n, err := e.parse(s, primitive)
	if err != nil {
		return 0, err
	}
	return n.Eval(), nil
}

// Calculate runs the whole pipeline on raw keypad input. It never panics.
func (e *Engine) Calculate(raw string) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, &Error{Stage: "eval", Pos: -1, Msg: fmt.Sprint(r)}
		}
	}()
	n, err := e.Parse(raw)
	if err != nil {
		return 0, err
	}
	return rewriteNode(n).Eval(), nil
}

var std = New(DefaultLimits)

// Rewrite, Evaluate and Calculate use an Engine with DefaultLimits.
func Rewrite(s string) string               { return std.Rewrite(s) }
func Evaluate(s string) (float64, error)    { return std.Evaluate(s) }
func Calculate(raw string) (float64, error) { return std.Calculate(raw) }
