// Package query compiles small boolean expressions into hook predicates so
// command line users can filter without writing Go:
//
//	type == "action" && !deprecated
//	name =~ "^save_post" || (type == filter && args == 2)
//	doc.since == "1.5.0"
//
// Identifiers are dotted paths into the flattened hook fields. A bare
// identifier tests truthiness; comparisons take string, number, bool or null
// literals, and bare words on the right-hand side are read as strings.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-hooks/pkg/model"
)

// Expression is a compiled query.
type Expression struct {
	source string
	root   node
}

// Compile parses source. An empty expression matches every hook.
func Compile(source string) (*Expression, error) {
	trimmed := strings.TrimSpace(source)
	expr := &Expression{source: trimmed}
	if trimmed == "" {
		expr.root = always{}
		return expr, nil
	}

	tokens, err := lex(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, fmt.Errorf("query: unexpected %q at offset %d", tok.text, tok.pos)
	}
	expr.root = root
	return expr, nil
}

// MustCompile panics when source does not compile.
func MustCompile(source string) *Expression {
	expr, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return expr
}

// String returns the expression source.
func (e *Expression) String() string {
	return e.source
}

// Eval evaluates the expression against a flat field map.
func (e *Expression) Eval(fields map[string]any) (bool, error) {
	return e.root.eval(fields)
}

// Match evaluates the expression against a hook. Evaluation errors count as
// no match.
func (e *Expression) Match(h *model.Hook) bool {
	if h == nil {
		return false
	}
	ok, err := e.Eval(h.Fields())
	return err == nil && ok
}

// Predicate adapts the expression for repository.Filter and Find.
func (e *Expression) Predicate() model.Predicate {
	return e.Match
}

type node interface {
	eval(fields map[string]any) (bool, error)
}

type always struct{}

func (always) eval(map[string]any) (bool, error) { return true, nil }

type orNode struct{ left, right node }

func (n orNode) eval(fields map[string]any) (bool, error) {
	ok, err := n.left.eval(fields)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(fields)
}

type andNode struct{ left, right node }

func (n andNode) eval(fields map[string]any) (bool, error) {
	ok, err := n.left.eval(fields)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(fields)
}

type notNode struct{ inner node }

func (n notNode) eval(fields map[string]any) (bool, error) {
	ok, err := n.inner.eval(fields)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type truthyNode struct{ path string }

func (n truthyNode) eval(fields map[string]any) (bool, error) {
	value, ok := lookup(fields, n.path)
	return ok && truthy(value), nil
}

type compareNode struct {
	path    string
	negate  bool
	literal literal
}

func (n compareNode) eval(fields map[string]any) (bool, error) {
	value, ok := lookup(fields, n.path)
	if !ok {
		value = nil
	}
	eq, err := n.literal.equals(value)
	if err != nil {
		return false, err
	}
	return eq != n.negate, nil
}

type regexNode struct {
	path string
	re   *regexp.Regexp
}

func (n regexNode) eval(fields map[string]any) (bool, error) {
	value, ok := lookup(fields, n.path)
	if !ok || value == nil {
		return false, nil
	}
	return n.re.MatchString(stringValue(value)), nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) accept(kind tokenKind) bool {
	if tok, ok := p.peek(); ok && tok.kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokenAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.accept(tokenNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.accept(tokenLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokenRParen) {
			return nil, errors.New("query: missing closing ')'")
		}
		return inner, nil
	}

	tok, ok := p.peek()
	if !ok {
		return nil, errors.New("query: unexpected end of expression")
	}
	if tok.kind != tokenIdent {
		return nil, fmt.Errorf("query: expected field name at offset %d, got %q", tok.pos, tok.text)
	}
	p.pos++
	path := tok.text

	switch {
	case p.accept(tokenEq):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return compareNode{path: path, literal: lit}, nil
	case p.accept(tokenNeq):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return compareNode{path: path, negate: true, literal: lit}, nil
	case p.accept(tokenRegex):
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if lit.kind != litString {
			return nil, fmt.Errorf("query: =~ expects a string pattern for %q", path)
		}
		re, err := regexp.Compile(lit.raw)
		if err != nil {
			return nil, fmt.Errorf("query: invalid pattern for %q: %w", path, err)
		}
		return regexNode{path: path, re: re}, nil
	}
	return truthyNode{path: path}, nil
}

func (p *parser) parseLiteral() (literal, error) {
	tok, ok := p.peek()
	if !ok {
		return literal{}, errors.New("query: missing value after operator")
	}
	p.pos++
	switch tok.kind {
	case tokenString, tokenIdent:
		return literal{kind: litString, raw: tok.text}, nil
	case tokenNumber:
		return literal{kind: litNumber, raw: tok.text}, nil
	case tokenBool:
		return literal{kind: litBool, raw: tok.text}, nil
	case tokenNull:
		return literal{kind: litNull, raw: tok.text}, nil
	default:
		return literal{}, fmt.Errorf("query: expected value at offset %d, got %q", tok.pos, tok.text)
	}
}
