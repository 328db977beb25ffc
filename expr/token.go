// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"strings"
	"unicode"
)

// Kind is the kind of a Token.
type Kind int32

const (
	Number Kind = iota
	Identifier
	Operator
	LParen
	RParen
	Comma
)

var kindNames = [...]string{"Number", "Identifier", "Operator", "LParen", "RParen", "Comma"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// Token provides the data for one token.
type Token struct {
	Kind Kind

	// Str is the literal source text of the token.
	Str string

	// Pos is the byte offset of the token in the source.
	Pos int
}

// Tokens is a slice of Token.
type Tokens []*Token

// Add adds a new token.
func (tk *Tokens) Add(kind Kind, str string, pos int) *Token {
	nt := &Token{Kind: kind, Str: str, Pos: pos}
	*tk = append(*tk, nt)
	return nt
}

// Last returns the final token in the list, or nil.
func (tk Tokens) Last() *Token {
	if len(tk) == 0 {
		return nil
	}
	return tk[len(tk)-1]
}

// String returns the token strings separated by spaces.
func (tk Tokens) String() string {
	strs := make([]string, len(tk))
	for i, t := range tk {
		strs[i] = t.Str
	}
	return strings.Join(strs, " ")
}

// Tokenize splits the given expression source into tokens.
// Numbers include exponent forms (1.5e-3). Identifiers may contain
// letters, digits and _ | : . so that hierarchical node paths and
// node.attr plugs are single tokens, plus bracketed array indexes
// after the first character (input[2]). Characters that do not
// start any token are skipped.
func Tokenize(src string) Tokens {
	var toks Tokens
	rs := []rune(src)
	n := len(rs)
	// byte offsets for each rune
	offs := make([]int, n+1)
	o := 0
	for i, r := range rs {
		offs[i] = o
		o += len(string(r))
	}
	offs[n] = o
	for i := 0; i < n; {
		r := rs[i]
		switch {
		case isDigit(r) || (r == '.' && i+1 < n && isDigit(rs[i+1])):
			st := i
			i = scanNumber(rs, i)
			toks.Add(Number, string(rs[st:i]), offs[st])
		case isIdentStart(r):
			st := i
			i++
			for i < n && isIdentChar(rs[i]) {
				i++
			}
			toks.Add(Identifier, string(rs[st:i]), offs[st])
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
			toks.Add(Operator, string(r), offs[i])
			i++
		case r == '(':
			toks.Add(LParen, "(", offs[i])
			i++
		case r == ')':
			toks.Add(RParen, ")", offs[i])
			i++
		case r == ',':
			toks.Add(Comma, ",", offs[i])
			i++
		default:
			i++
		}
	}
	return toks
}

// scanNumber returns the index just past the number starting at st.
func scanNumber(rs []rune, st int) int {
	n := len(rs)
	i := st
	for i < n && (isDigit(rs[i]) || rs[i] == '.') {
		i++
	}
	if i < n && (rs[i] == 'e' || rs[i] == 'E') {
		j := i + 1
		if j < n && (rs[j] == '+' || rs[j] == '-') {
			j++
		}
		if j < n && isDigit(rs[j]) {
			for j < n && isDigit(rs[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '|' || r == ':' || r == '.'
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '[' || r == ']'
}
