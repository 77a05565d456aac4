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
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp // + - * / % **
	tokLParen
	tokRParen
	tokBang
)

type token struct {
	kind tokenKind
	text string
	val  float64
	pos  int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// tokenize splits s into tokens. Numbers follow the usual literal forms:
// 12, 1.5, .5, 5., 1e3, 2.5E-4. Leading zeros are decimal: 05 is 5, never
// octal.
func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if unicode.IsSpace(r) {
				i += size
				continue
			}
			return nil, parseErr(i, "unexpected character %q", r)
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}
		start := i
		switch {
		case isDigit(c) || c == '.':
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j < len(s) && s[j] == '.' {
				j++
				for j < len(s) && isDigit(s[j]) {
					j++
				}
			}
			if j-i == 1 && c == '.' {
				return nil, parseErr(i, "malformed number")
			}
			// exponent only when digits follow, so "2e" leaves the e alone
			if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
				k := j + 1
				if k < len(s) && (s[k] == '+' || s[k] == '-') {
					k++
				}
				if k < len(s) && isDigit(s[k]) {
					for k < len(s) && isDigit(s[k]) {
						k++
					}
					j = k
				}
			}
			text := s[i:j]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				// out of range literals still carry a usable ±Inf
				if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
					return nil, parseErr(i, "malformed number %q", text)
				}
			}
			toks = append(toks, token{kind: tokNum, text: text, val: v, pos: start})
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && (isIdentStart(s[j]) || isDigit(s[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j], pos: start})
			i = j
		case c == '*':
			if i+1 < len(s) && s[i+1] == '*' {
				toks = append(toks, token{kind: tokOp, text: "**", pos: start})
				i += 2
				continue
			}
			toks = append(toks, token{kind: tokOp, text: "*", pos: start})
			i++
		case c == '+' || c == '-' || c == '/' || c == '%':
			toks = append(toks, token{kind: tokOp, text: string(c), pos: start})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: start})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: start})
			i++
		case c == '!':
			toks = append(toks, token{kind: tokBang, text: "!", pos: start})
			i++
		default:
			return nil, parseErr(i, "unexpected character %q", c)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(s)})
	return toks, nil
}
