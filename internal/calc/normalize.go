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

import "strings"

// symbolic glyphs accepted from the keypad and their canonical spelling
var glyphs = strings.NewReplacer(
	"π", "pi",
	"÷", "/",
	"×", "*",
	"^", "**",
)

// Normalize balances parentheses and replaces keypad glyphs with their
// canonical operators. It never fails: a deficit of closing parentheses is
// appended at the end, an excess is left for the evaluator to reject.
func Normalize(raw string) string {
	missing := strings.Count(raw, "(") - strings.Count(raw, ")")
	if missing > 0 {
		raw += strings.Repeat(")", missing)
	}
	return glyphs.Replace(raw)
}
