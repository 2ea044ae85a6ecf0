// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder scanning. Two patterns decide which parameters a msgid
// references; their exact coverage is part of the package contract and
// is pinned by tests.
//
// The named pattern's leading guard is optional, so "%%(key)s" still
// counts key as referenced even though rendering treats the doubled
// percent as a literal. The positional pattern's guard is mandatory, so
// "%%s" is not counted. Both scans are non-overlapping: in "%s%s" the
// second directive's guard byte is consumed by the first match, so only
// one is counted. Keys may be empty ("%()s") and placeholders carry no
// width or flag modifiers.
var (
	namedKeyPattern   = regexp.MustCompile(`(?:[^%]|^)?%\((\w*)\)[a-z]`)
	positionalPattern = regexp.MustCompile(`(?:[^%]|^)%[a-z]`)
)

// namedKeys returns the parameter names referenced by %(name)s-style
// placeholders in pattern, in occurrence order, duplicates included.
func namedKeys(pattern string) []string {
	matches := namedKeyPattern.FindAllStringSubmatch(pattern, -1)
	if len(matches) == 0 {
		return nil
	}

	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		keys = append(keys, match[1])
	}

	return keys
}

// hasPositionalDirective reports whether pattern contains a bare
// %s-style conversion that would consume a positional parameter.
func hasPositionalDirective(pattern string) bool {
	return positionalPattern.MatchString(pattern)
}

// renderPattern substitutes p into pattern.
//
// "%%" renders as a literal percent. "%(key)v" looks key up in named
// parameters ([ErrMissingKey] when absent, [ErrParamCount] when the
// parameters are not named). "%v" consumes the next positional
// parameter ([ErrParamCount] when exhausted, or when the parameters are
// named). Leftover positional parameters are an [ErrParamCount] too. A
// percent followed by anything else is emitted literally.
func renderPattern(pattern string, p *params) (string, error) {
	if p == nil {
		return pattern, nil
	}

	var args []any

	switch p.kind {
	case kindSingle:
		args = []any{p.single}
	case kindPositional:
		args = p.seq
	}

	var (
		b   strings.Builder
		pos int
	)

	b.Grow(len(pattern))

	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c != '%' || i+1 >= len(pattern) {
			b.WriteByte(c)
			i++

			continue
		}

		next := pattern[i+1]

		switch {
		case next == '%':
			b.WriteByte('%')

			i += 2
		case next == '(':
			key, verb, width, ok := scanNamedDirective(pattern[i:])
			if !ok {
				b.WriteByte('%')
				i++

				continue
			}

			if p.kind != kindNamed {
				return "", fmt.Errorf("%w: %%(%s)%c requires named parameters", ErrParamCount, key, verb)
			}

			value, ok := p.dict[key]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingKey, key)
			}

			b.WriteString(formatDirective(value, verb))

			i += width
		case next >= 'a' && next <= 'z':
			if p.kind == kindNamed {
				return "", fmt.Errorf("%w: %%%c cannot consume named parameters", ErrParamCount, next)
			}

			if pos >= len(args) {
				return "", fmt.Errorf("%w: not enough parameters for %q", ErrParamCount, pattern)
			}

			b.WriteString(formatDirective(args[pos], next))

			pos++
			i += 2
		default:
			b.WriteByte('%')
			i++
		}
	}

	if p.kind != kindNamed && pos < len(args) {
		return "", fmt.Errorf("%w: %d parameters left over for %q", ErrParamCount, len(args)-pos, pattern)
	}

	return b.String(), nil
}

// scanNamedDirective parses a "%(key)v" directive at the start of s,
// returning the key, the verb byte, and the directive's byte width.
func scanNamedDirective(s string) (key string, verb byte, width int, ok bool) {
	// s begins with "%(".
	end := 2
	for end < len(s) && isWordByte(s[end]) {
		end++
	}

	if end+1 >= len(s) || s[end] != ')' {
		return "", 0, 0, false
	}

	verb = s[end+1]
	if verb < 'a' || verb > 'z' {
		return "", 0, 0, false
	}

	return s[2:end], verb, end + 2, true
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}

// formatDirective renders one substitution value. The verbs follow
// %-style conventions: s is the general string form, i is an integer, r
// is a quoted representation. Anything else is handed to fmt with the
// verb unchanged.
func formatDirective(value any, verb byte) string {
	switch verb {
	case 's':
		return fmt.Sprint(value)
	case 'i':
		return fmt.Sprintf("%d", value)
	case 'r':
		return fmt.Sprintf("%q", value)
	default:
		return fmt.Sprintf("%"+string(verb), value)
	}
}
