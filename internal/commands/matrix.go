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

type Matrix [2][2]float64

func MatrixAdd(a, b Matrix) Matrix {
	return Matrix{
		{a[0][0] + b[0][0], a[0][1] + b[0][1]},
		{a[1][0] + b[1][0], a[1][1] + b[1][1]},
	}
}

func MatrixMul(a, b Matrix) Matrix {
	return Matrix{
		{a[0][0]*b[0][0] + a[0][1]*b[1][0], a[0][0]*b[0][1] + a[0][1]*b[1][1]},
		{a[1][0]*b[0][0] + a[1][1]*b[1][0], a[1][0]*b[0][1] + a[1][1]*b[1][1]},
	}
}

func (m Matrix) String() string {
	f := calc.FormatResult
	return fmt.Sprintf("[ %s , %s ]\n[ %s , %s ]", f(m[0][0]), f(m[0][1]), f(m[1][0]), f(m[1][1]))
}

// cells fills a matrix row by row; missing or unreadable cells are 0.
func cells(args []string) Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		v := operand(args, i)
		if math.IsNaN(v) {
			v = 0
		}
		m[i/2][i%2] = v
	}
	return m
}

func CmdMatrix(args []string) string {
	if len(args) == 0 {
		return "matrix: usage: matrix add|mul a11 a12 a21 a22 b11 b12 b21 b22"
	}
	rest := args[1:]
	a := cells(rest)
	var b Matrix
	if len(rest) > 4 {
		b = cells(rest[4:])
	}
	switch strings.ToLower(args[0]) {
	case "add", "+":
		return MatrixAdd(a, b).String()
	case "mul", "*", "x":
		return MatrixMul(a, b).String()
	}
	return "matrix: unknown operation " + args[0] + " (use add or mul)"
}
