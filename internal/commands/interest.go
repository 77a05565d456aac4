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
)

// Interest returns the interest earned and the final amount on principal p
// at r percent a year over t years. Compound interest is applied freq times
// a year.
func Interest(kind string, p, r, t, freq float64) (interest, total float64) {
	if kind == "simple" {
		interest = p * r * t / 100
		return interest, p + interest
	}
	total = p * math.Pow(1+(r/100)/freq, freq*t)
	return total - p, total
}

func CmdInterest(args []string) string {
	if len(args) == 0 {
		return "interest: usage: interest simple|compound <principal> <rate%> <years> [times/year]"
	}
	kind := strings.ToLower(args[0])
	if kind != "simple" && kind != "compound" {
		return "interest: unknown kind " + args[0] + " (use simple or compound)"
	}
	p, r, t := operand(args, 1), operand(args, 2), operand(args, 3)
	if math.IsNaN(p) || math.IsNaN(r) || math.IsNaN(t) {
		return "Enter valid numbers."
	}
	freq := 1.0
	if len(args) > 4 {
		freq = math.Trunc(operand(args, 4))
	}
	interest, total := Interest(kind, p, r, t, freq)
	return fmt.Sprintf("Interest Earned: %s\nTotal Amount: %s", toFixed2(interest), toFixed2(total))
}
