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

import "fmt"

// grammar selects which names a parse accepts.
type grammar int

const (
	// keypad functions, postfix !, pi
	surface grammar = iota
	// primitive calls and pi only
	primitive
)

type parser struct {
	toks     []token
	pos      int
	g        grammar
	depth    int
	maxDepth int
}

func parse(s string, g grammar, maxDepth int) (Node, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, g: g, maxDepth: maxDepth}
	n, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, parseErr(t.pos, "unexpected %q", t.text)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			return op, true
		}
	}
	return "", false
}

func (p *parser) expect(kind tokenKind, what string) error {
	t := p.next()
	if t.kind != kind {
		return unexpected(t, what)
	}
	return nil
}

func unexpected(t token, want string) error {
	if t.kind == tokEOF {
		return parseErr(t.pos, "unexpected end of expression, want %s", want)
	}
	return parseErr(t.pos, "unexpected %q, want %s", t.text, want)
}

func (p *parser) parseExpression() (Node, error) {
	return p.parseAdditive()
}

func (p *parser) parseAdditive() (Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("+", "-")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("*", "/", "%")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, X: left, Y: right}
	}
}

// parseUnary is the only recursive entry point, so nesting is counted here.
// A sign binds looser than **: -2**2 is -(2**2), as on paper, where a
// strict JavaScript engine would reject the expression.
func (p *parser) parseUnary() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, &Error{Stage: "limits", Pos: p.peek().pos, Msg: fmt.Sprintf("nesting deeper than %d", p.maxDepth)}
	}
	if op, ok := p.isOp("+", "-"); ok {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op[0], X: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, ok := p.isOp("**"); !ok {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: "**", X: base, Y: exp}, nil
}

func (p *parser) parsePostfix() (Node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.g == surface && p.peek().kind == tokBang {
		p.next()
		x = &Factorial{X: x}
	}
	return x, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		return &Number{Value: t.val, Text: t.text}, nil
	case tokLParen:
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return x, nil
	case tokIdent:
		if v, ok := constants[t.text]; ok {
			return &Const{Name: t.text, Value: v}, nil
		}
		if !p.callable(t.text) {
			return nil, parseErr(t.pos, "unknown name %q", t.text)
		}
		if err := p.expect(tokLParen, `"(" after `+t.text); err != nil {
			return nil, err
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		if p.g == surface {
			return &Func{Name: t.text, Arg: arg}, nil
		}
		return prim(t.text, arg), nil
	}
	return nil, unexpected(t, "a number, name or \"(\"")
}

func (p *parser) callable(name string) bool {
	if p.g == surface {
		_, ok := rewrites[name]
		return ok
	}
	_, ok := primitives[name]
	return ok
}
