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

import "math"

// primitives is the closed symbol table of the evaluator. Trigonometric
// primitives work in radians; degrees exist only in the keypad functions.
var primitives = map[string]func(float64) float64{
	"rsin":  math.Sin,
	"rcos":  math.Cos,
	"rtan":  math.Tan,
	"rasin": math.Asin,
	"racos": math.Acos,
	"ratan": math.Atan,
	"log10": log10,
	"sqrt":  math.Sqrt,
	"fact":  Fact,
}

var constants = map[string]float64{
	"pi": math.Pi,
}

// keypad functions and the primitive expression each one stands for
var rewrites = map[string]func(arg Node) Node{
	"sin":  func(x Node) Node { return prim("rsin", toRadians(x)) },
	"cos":  func(x Node) Node { return prim("rcos", toRadians(x)) },
	"tan":  func(x Node) Node { return prim("rtan", toRadians(x)) },
	"asin": func(x Node) Node { return toDegrees(prim("rasin", x)) },
	"acos": func(x Node) Node { return toDegrees(prim("racos", x)) },
	"atan": func(x Node) Node { return toDegrees(prim("ratan", x)) },
	"log":  func(x Node) Node { return prim("log10", x) },
	"sqrt": func(x Node) Node { return prim("sqrt", x) },
}

func prim(name string, arg Node) *Call {
	return &Call{Name: name, Arg: arg, fn: primitives[name]}
}

func piNode() *Const { return &Const{Name: "pi", Value: constants["pi"]} }

func toRadians(x Node) Node {
	return &Binary{Op: "/", X: &Binary{Op: "*", X: x, Y: piNode()}, Y: &Number{Value: 180, Text: "180"}}
}

func toDegrees(x Node) Node {
	return &Binary{Op: "/", X: &Binary{Op: "*", X: x, Y: &Number{Value: 180, Text: "180"}}, Y: piNode()}
}

// log10 is exact on exact powers of ten, where math.Log10 can be an ulp off.
func log10(x float64) float64 {
	r := math.Log10(x)
	if n := math.Round(r); n != r && math.Abs(n) <= 22 && math.Pow(10, n) == x {
		return n
	}
	return r
}

// maxFact is the largest n whose factorial is finite in float64.
const maxFact = 170

// Fact floors n and multiplies 2..n; the empty product for n <= 1 is 1.
// Negative input is NaN. Past maxFact the result is +Inf without looping.
func Fact(n float64) float64 {
	n = math.Floor(n)
	if n < 0 {
		return math.NaN()
	}
	if n > maxFact {
		return math.Inf(1)
	}
	res := 1.0
	for i := 2.0; i <= n; i++ {
		res *= i
	}
	return res
}

// rewriteNode replaces keypad functions and factorials with primitive calls.
// Each node is visited once, so no rewrite can be matched again.
func rewriteNode(n Node) Node {
	switch n := n.(type) {
	case *Unary:
		return &Unary{Op: n.Op, X: rewriteNode(n.X)}
	case *Binary:
		return &Binary{Op: n.Op, X: rewriteNode(n.X), Y: rewriteNode(n.Y)}
	case *Call:
		return &Call{Name: n.Name, Arg: rewriteNode(n.Arg), fn: n.fn}
	case *Func:
		return rewrites[n.Name](rewriteNode(n.Arg))
	case *Factorial:
		return prim("fact", rewriteNode(n.X))
	}
	return n
}
