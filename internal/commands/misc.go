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
	"strings"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
)

// CmdCalc evaluates args joined with spaces under c's limits.
func CmdCalc(c *calc.Engine, args []string) string {
	if len(args) == 0 {
		return "calc: expected expression, e.g. `calc sin(30)+2^3`"
	}
	expr := strings.Join(args, " ")
	val, err := c.Calculate(expr)
	if err != nil {
		return "calc error: " + err.Error()
	}
	return fmt.Sprintf("%s = %s", expr, calc.FormatResult(val))
}

// operand reads a number the way the keypad forms do: a leading numeric
// prefix, NaN when there is none.
func operand(args []string, i int) float64 {
	if i >= len(args) {
		return calc.ParseLeading("")
	}
	return calc.ParseLeading(args[i])
}

// toFixed2 formats v with two decimals. Negative zero prints as 0.00.
func toFixed2(v float64) string {
	if v == 0 {
		v = 0
	}
	return fmt.Sprintf("%.2f", v)
}
