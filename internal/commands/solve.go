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

package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
)

type side struct {
	coeff    float64
	constant float64
}

// parseSide sums the x terms and constant terms of one side of a linear
// equation. A bare x or -x has coefficient ±1.
func parseSide(s string) side {
	s = strings.ReplaceAll(s, "-", "+-")
	var out side
	for _, term := range strings.Split(s, "+") {
		if term == "" {
			continue
		}
		if strings.Contains(term, "x") {
			val := strings.Replace(term, "x", "", 1)
			switch val {
			case "":
				out.coeff++
			case "-":
				out.coeff--
			default:
				out.coeff += calc.ParseLeading(val)
			}
			continue
		}
		out.constant += calc.ParseLeading(term)
	}
	return out
}

// SolveLinear solves a first-degree equation in x such as "2x+3=7".
func SolveLinear(eq string) string {
	eq = strings.Join(strings.Fields(eq), "")
	if !strings.Contains(eq, "=") {
		return "Equation must contain '='"
	}
	parts := strings.Split(eq, "=")
	l, r := parseSide(parts[0]), parseSide(parts[1])

	coeff := l.coeff - r.coeff
	constant := r.constant - l.constant
	if coeff == 0 {
		return "No unique solution."
	}
	return "x = " + calc.FormatResult(constant/coeff)
}

// SolveQuadratic reports the roots of ax²+bx+c. Complex roots are rounded to
// two decimals.
func SolveQuadratic(a, b, c float64) string {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(c) {
		return "Enter valid numbers."
	}
	if a == 0 {
		return "Not quadratic (a cannot be 0)."
	}

	d := b*b - 4*a*c
	switch {
	case d > 0:
		x1 := (-b + math.Sqrt(d)) / (2 * a)
		x2 := (-b - math.Sqrt(d)) / (2 * a)
		return fmt.Sprintf("Two real roots: x₁ = %s, x₂ = %s", calc.FormatResult(x1), calc.FormatResult(x2))
	case d == 0:
		return "One real root: x = " + calc.FormatResult(-b/(2*a))
	}
	re := toFixed2(-b / (2 * a))
	im := toFixed2(math.Sqrt(-d) / (2 * a))
	return fmt.Sprintf("Complex roots: %s + %si , %s - %si", re, im, re, im)
}

func CmdSolve(args []string) string {
	if len(args) == 0 {
		return "solve: usage: solve <equation>  e.g. `solve 2x+3=7`"
	}
	return SolveLinear(strings.Join(args, ""))
}

func CmdQuad(args []string) string {
	if len(args) == 0 {
		return "quad: usage: quad <a> <b> <c>  e.g. `quad 1 -3 2`"
	}
	return SolveQuadratic(operand(args, 0), operand(args, 1), operand(args, 2))
}
