package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenRegex
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDelimiter(ch byte) bool {
	return isSpace(ch) || strings.IndexByte("()!=&|~", ch) >= 0
}

// lex splits an expression into tokens. Operators: == != =~ && || ! ( ).
func lex(input string) ([]token, error) {
	var tokens []token
	emit := func(kind tokenKind, text string, pos int) {
		tokens = append(tokens, token{kind: kind, text: text, pos: pos})
	}

	for i := 0; i < len(input); {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		two := ""
		if i+1 < len(input) {
			two = input[i : i+2]
		}
		switch {
		case two == "==":
			emit(tokenEq, two, i)
			i += 2
			continue
		case two == "!=":
			emit(tokenNeq, two, i)
			i += 2
			continue
		case two == "=~":
			emit(tokenRegex, two, i)
			i += 2
			continue
		case two == "&&":
			emit(tokenAnd, two, i)
			i += 2
			continue
		case two == "||":
			emit(tokenOr, two, i)
			i += 2
			continue
		}

		switch ch {
		case '(':
			emit(tokenLParen, "(", i)
			i++
			continue
		case ')':
			emit(tokenRParen, ")", i)
			i++
			continue
		case '!':
			emit(tokenNot, "!", i)
			i++
			continue
		case '=', '&', '|', '~':
			return nil, fmt.Errorf("query: unexpected %q at offset %d", ch, i)
		case '"', '\'':
			value, next, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			emit(tokenString, value, i)
			i = next
			continue
		}

		start := i
		for i < len(input) && !isDelimiter(input[i]) {
			i++
		}
		word := input[start:i]
		switch strings.ToLower(word) {
		case "true", "false":
			emit(tokenBool, strings.ToLower(word), start)
		case "null", "nil":
			emit(tokenNull, "null", start)
		default:
			if looksNumeric(word) {
				emit(tokenNumber, word, start)
			} else {
				emit(tokenIdent, word, start)
			}
		}
	}

	return tokens, nil
}

// lexString reads a quoted literal starting at input[start] and returns the
// unquoted value and the offset just past the closing quote.
func lexString(input string, start int) (string, int, error) {
	quote := input[start]
	escaped := false
	for i := start + 1; i < len(input); i++ {
		c := input[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			body := input[start+1 : i]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return "", 0, fmt.Errorf("query: invalid string literal at offset %d: %w", start, err)
			}
			return value, i + 1, nil
		}
	}
	return "", 0, errors.New("query: unterminated string literal")
}

func looksNumeric(word string) bool {
	if word == "" {
		return false
	}
	ch := word[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}
