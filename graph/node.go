// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "strings"

// Attribute is one authored attribute value on a node: a key
// and the ordered list of raw tokens that were written for it.
type Attribute struct {

	// Key is the attribute path, as written (".i1", "input[0:2]").
	Key string

	// Tokens are the raw value tokens, in file order.
	Tokens []string
}

// Float returns the value of the attribute, which is the last token
// that parses as a float, scanning from the end backward, as
// authoring tools often write typed values after headers.
func (a *Attribute) Float() (float32, bool) {
	for i := len(a.Tokens) - 1; i >= 0; i-- {
		if f, ok := ParseFloat(a.Tokens[i]); ok {
			return f, true
		}
	}
	return 0, false
}

// Floats returns all of the numeric tokens of the attribute in order,
// skipping command flags (and their arguments) such as -type double3.
func (a *Attribute) Floats() []float32 {
	var fs []float32
	for i := 0; i < len(a.Tokens); i++ {
		tok := strings.TrimSpace(a.Tokens[i])
		if isFlag(tok) {
			if flagTakesValue(tok) {
				i++
			}
			continue
		}
		if f, ok := ParseFloat(tok); ok {
			fs = append(fs, f)
		}
	}
	return fs
}

// String returns the tokens joined by spaces, with surrounding quotes
// removed from each token and common escapes expanded, which is the form
// used for string-valued attributes such as expression text.
func (a *Attribute) String() string {
	strs := make([]string, 0, len(a.Tokens))
	for i := 0; i < len(a.Tokens); i++ {
		tok := a.Tokens[i]
		if tok == "-type" || tok == "-typ" {
			i++
			continue
		}
		tok = strings.TrimSpace(tok)
		if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
			tok = tok[1 : len(tok)-1]
		}
		strs = append(strs, tok)
	}
	s := strings.Join(strs, " ")
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\"`, `"`, `\\`, `\`).Replace(s)
}

// Node is one node in the dependency graph.
type Node struct {

	// Name is the unique name of the node.
	Name string

	// Type is the node type, which determines how it is evaluated.
	Type string

	// Attributes are the authored attribute values, in file order.
	Attributes []Attribute
}

// Attr returns the attribute with the given key, if it exists.
// If the key was written more than once, the last one wins.
func (n *Node) Attr(key string) *Attribute {
	key = NormalizeKey(key)
	for i := len(n.Attributes) - 1; i >= 0; i-- {
		if NormalizeKey(n.Attributes[i].Key) == key {
			return &n.Attributes[i]
		}
	}
	return nil
}

// Literal returns the authored value of the given attribute. Array
// elements ("input[3]") are also found within range keys ("input[0:4]").
func (n *Node) Literal(key string) (float32, bool) {
	if a := n.Attr(key); a != nil {
		return a.Float()
	}
	base, lo, hi, rest, ok := SplitIndex(NormalizeKey(key))
	if !ok || lo != hi || rest != "" {
		return 0, false
	}
	for i := len(n.Attributes) - 1; i >= 0; i-- {
		a := &n.Attributes[i]
		ab, alo, ahi, arest, aok := SplitIndex(NormalizeKey(a.Key))
		if !aok || ab != base || arest != "" || lo < alo || lo > ahi {
			continue
		}
		fs := a.Floats()
		if lo-alo < len(fs) {
			return fs[lo-alo], true
		}
	}
	return 0, false
}

// Component returns the given component of a compound attribute,
// such as the Y value (1) of a translate triple.
func (n *Node) Component(key string, comp int) (float32, bool) {
	a := n.Attr(key)
	if a == nil {
		return 0, false
	}
	fs := a.Floats()
	if comp < 0 || comp >= len(fs) {
		return 0, false
	}
	return fs[comp], true
}

// LiteralIndices returns the element indices of the given array
// attribute that have authored values, in file order, possibly
// with duplicates.
func (n *Node) LiteralIndices(name string) []int {
	var idxs []int
	for i := range n.Attributes {
		base, lo, hi, _, ok := SplitIndex(NormalizeKey(n.Attributes[i].Key))
		if !ok || base != name {
			continue
		}
		for j := lo; j <= hi && j-lo < maxRange; j++ {
			idxs = append(idxs, j)
		}
	}
	return idxs
}

// maxRange bounds the number of elements taken from one range key.
const maxRange = 1 << 16
