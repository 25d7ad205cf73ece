package pongo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
)

// FilterReplaceRegex is the name of the regular expression substitution
// filter available to every template:
//
//	{{ name|replace_regex:"/_+/-/g" }}
//
// The first rune of the argument is the delimiter; the argument then holds a
// pattern, a replacement and optional flags (g, i, m, s). Nothing may follow
// the flags.
const FilterReplaceRegex = "replace_regex"

var (
	filtersMu       sync.Mutex
	defaultFilters  sync.Once
	errEmptyPattern = errors.New("replace_regex: empty substitution")
)

func registerDefaultFilters() {
	defaultFilters.Do(func() {
		filtersMu.Lock()
		defer filtersMu.Unlock()
		if !pongo2.FilterExists(FilterReplaceRegex) {
			_ = pongo2.RegisterFilter(FilterReplaceRegex, filterReplaceRegex)
		}
	})
}

func filterReplaceRegex(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if param == nil || param.IsNil() {
		return nil, &pongo2.Error{Sender: "filter:" + FilterReplaceRegex, OrigError: errEmptyPattern}
	}
	sub, err := parseSubstitution(param.String())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:" + FilterReplaceRegex, OrigError: err}
	}
	return pongo2.AsValue(sub.apply(in.String())), nil
}

type substitution struct {
	re          *regexp.Regexp
	replacement string
	global      bool
}

// parseSubstitution reads "/pattern/replacement/flags". A backslash before the
// delimiter escapes it; other escapes are passed to the regexp untouched.
func parseSubstitution(arg string) (substitution, error) {
	if arg == "" {
		return substitution{}, errEmptyPattern
	}
	delim, size := utf8.DecodeRuneInString(arg)
	parts := splitUnescaped(arg[size:], delim)
	if len(parts) < 2 || len(parts) > 3 {
		return substitution{}, fmt.Errorf("replace_regex: expected %cpattern%creplacement%c[flags], got %q", delim, delim, delim, arg)
	}

	pattern, replacement := parts[0], parts[1]
	if pattern == "" {
		return substitution{}, errEmptyPattern
	}

	var (
		global bool
		inline strings.Builder
	)
	if len(parts) == 3 {
		for _, flag := range parts[2] {
			switch flag {
			case 'g':
				global = true
			case 'i', 'm', 's':
				inline.WriteRune(flag)
			default:
				return substitution{}, fmt.Errorf("replace_regex: unsupported flag %q", flag)
			}
		}
	}
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return substitution{}, fmt.Errorf("replace_regex: %w", err)
	}
	return substitution{
		re:          re,
		replacement: strings.ReplaceAll(replacement, "$&", "${0}"),
		global:      global,
	}, nil
}

func (s substitution) apply(input string) string {
	if s.global {
		return s.re.ReplaceAllString(input, s.replacement)
	}
	loc := s.re.FindStringSubmatchIndex(input)
	if loc == nil {
		return input
	}
	expanded := s.re.ExpandString(nil, s.replacement, input, loc)
	return input[:loc[0]] + string(expanded) + input[loc[1]:]
}

func splitUnescaped(s string, delim rune) []string {
	var (
		parts   []string
		current strings.Builder
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			if r != delim {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == delim:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	return append(parts, current.String())
}
