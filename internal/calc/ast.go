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
	"math"
	"strconv"
)

// Node is a parsed expression. Eval is total: every name in a tree has been
// resolved against a fixed table at parse time.
type Node interface {
	Eval() float64
	String() string
}

// Number is a numeric literal. Text keeps the spelling it was parsed from.
type Number struct {
	Value float64
	Text  string
}

// Const is a named constant; pi is the only one.
type Const struct {
	Name  string
	Value float64
}

type Unary struct {
	Op byte
	X  Node
}

type Binary struct {
	Op   string
	X, Y Node
}

// Call applies a primitive from the fixed primitive table.
type Call struct {
	Name string
	Arg  Node
	fn   func(float64) float64
}

// Func is a keypad function call such as sin(30). It exists only before
// rewriting; evaluating one evaluates its rewritten form.
type Func struct {
	Name string
	Arg  Node
}

// Factorial is postfix n!.
type Factorial struct {
	X Node
}

func (n *Number) Eval() float64 { return n.Value }
func (c *Const) Eval() float64  { return c.Value }

func (u *Unary) Eval() float64 {
	if u.Op == '-' {
		return -u.X.Eval()
	}
	return u.X.Eval()
}

func (b *Binary) Eval() float64 {
	x, y := b.X.Eval(), b.Y.Eval()
	switch b.Op {
	case "+":
		return x + y
	case "-":
		return x - y
	case "*":
		return x * y
	case "/":
		return x / y
	case "%":
		return math.Mod(x, y)
	case "**":
		return pow(x, y)
	}
	return math.NaN()
}

func (c *Call) Eval() float64      { return c.fn(c.Arg.Eval()) }
func (f *Func) Eval() float64      { return rewriteNode(f).Eval() }
func (f *Factorial) Eval() float64 { return rewriteNode(f).Eval() }

// pow differs from math.Pow where IEEE pow and the keypad's ** disagree:
// a NaN exponent and 1**±Inf are both NaN.
func pow(x, y float64) float64 {
	if math.IsNaN(y) {
		return math.NaN()
	}
	if math.IsInf(y, 0) && (x == 1 || x == -1) {
		return math.NaN()
	}
	return math.Pow(x, y)
}

const (
	precAdd = iota + 1
	precMul
	precUnary
	precPow
	precAtom
)

func precOf(n Node) int {
	switch n := n.(type) {
	case *Binary:
		switch n.Op {
		case "+", "-":
			return precAdd
		case "**":
			return precPow
		}
		return precMul
	case *Unary:
		return precUnary
	}
	return precAtom
}

func paren(n Node, wrap bool) string {
	if wrap {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func (n *Number) String() string {
	if n.Text != "" {
		return n.Text
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (c *Const) String() string { return c.Name }

func (u *Unary) String() string {
	_, nested := u.X.(*Binary)
	if _, ok := u.X.(*Unary); ok {
		nested = true
	}
	return string(u.Op) + paren(u.X, nested)
}

func (b *Binary) String() string {
	p := precOf(b)
	if b.Op == "**" {
		return paren(b.X, precOf(b.X) <= p) + b.Op + paren(b.Y, precOf(b.Y) < p)
	}
	return paren(b.X, precOf(b.X) < p) + b.Op + paren(b.Y, precOf(b.Y) <= p)
}

func (c *Call) String() string      { return c.Name + "(" + c.Arg.String() + ")" }
func (f *Func) String() string      { return f.Name + "(" + f.Arg.String() + ")" }
func (f *Factorial) String() string { return paren(f.X, precOf(f.X) < precAtom) + "!" }
