// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eval

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/dg/expr"
	"cogentcore.org/dg/graph"
)

// Statement is one assignment in the text of an expression node.
type Statement struct {

	// Target is the assigned plug, as written (".O[0]", "pCube1.tx").
	Target string

	// Expr is the expression text assigned to it.
	Expr string
}

// Statements splits expression node text into its assignments, with
// line comments removed. Text that is not an assignment is skipped.
func Statements(text string) []Statement {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if i := strings.Index(ln, "//"); i >= 0 {
			ln = ln[:i]
		}
		lines = append(lines, ln)
	}
	var sts []Statement
	for _, s := range strings.Split(strings.Join(lines, "\n"), ";") {
		lhs, rhs, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		lhs, rhs = strings.TrimSpace(lhs), strings.TrimSpace(rhs)
		if lhs == "" || rhs == "" {
			continue
		}
		sts = append(sts, Statement{Target: lhs, Expr: rhs})
	}
	return sts
}

// expression evaluates the requested output of an expression node:
// the last statement assigning to that output, addressed by its
// output index (.O[0], output[0]) or by a plug that it drives.
func (c *call) expression() float32 {
	text, ok := "", false
	for _, key := range []string{"expression", "exp", "internalExpression", "ixp"} {
		if a := c.node.Attr(key); a != nil {
			text, ok = a.String(), true
			break
		}
	}
	if !ok {
		return c.literalAttr()
	}
	src := ""
	if !strings.Contains(text, "=") {
		src = text
	} else {
		targets := c.expressionTargets()
		sts := Statements(text)
		for i := len(sts) - 1; i >= 0; i-- {
			if slices.Contains(targets, sts[i].Target) {
				src = sts[i].Expr
				break
			}
		}
		if src == "" {
			c.e.report(MissingValue, c.plug(c.attr), fmt.Errorf("no statement assigns %q", c.attr))
			return 0
		}
	}
	v, err := c.interpreter().Eval(src, c.e.frame)
	if err != nil {
		c.e.report(Malformed, c.plug(c.attr), err)
		return 0
	}
	return v
}

// expressionTargets returns the names by which a statement can assign
// the requested attribute of an expression node.
func (c *call) expressionTargets() []string {
	ts := []string{c.attr, "." + c.attr, c.plug(c.attr)}
	base, lo, _, _, ok := graph.SplitIndex(c.attr)
	if !ok || (base != "output" && base != "out" && base != "O") {
		return ts
	}
	for _, name := range []string{"output", "out", "O"} {
		el := graph.Element(name, lo)
		ts = append(ts, "."+el, el)
		for _, dst := range c.e.Graph.Destinations(c.plug(el)) {
			ts = append(ts, dst)
			if _, attr := graph.SplitPlug(dst); attr != "" {
				ts = append(ts, "."+attr)
			}
		}
	}
	return ts
}

// interpreter returns the interpreter for the expression node,
// which resolves identifiers to plugs in the graph.
func (c *call) interpreter() *expr.Interpreter {
	if in, ok := c.e.interps[c.node.Name]; ok {
		return in
	}
	e, node := c.e, c.node
	in := expr.NewInterpreter(func(name string, frame float32) float32 {
		return e.resolveIdent(node, name)
	})
	e.interps[node.Name] = in
	return in
}

// resolveIdent returns the value of an identifier in the text of the
// given expression node: .I[k] and .in[k] name its inputs, .attr its
// own attributes, and node.attr any plug, split on the last '.'.
func (e *Evaluator) resolveIdent(node *graph.Node, name string) float32 {
	c := &call{e: e, node: node}
	if strings.HasPrefix(name, ".") {
		attr := name[1:]
		if base, lo, _, rest, ok := graph.SplitIndex(attr); ok && rest == "" && (base == "I" || base == "in" || base == "input") {
			return c.scalar(0, graph.Element("input", lo), graph.Element("in", lo))
		}
		return e.plugValue(c.plug(attr))
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		e.report(MissingValue, name, fmt.Errorf("unknown variable %q in expression %q", name, node.Name))
		return 0
	}
	nd, attr := name[:i], name[i+1:]
	if e.Graph.Node(nd) == nil {
		if j := strings.LastIndexByte(nd, '|'); j >= 0 && e.Graph.Node(nd[j+1:]) != nil {
			nd = nd[j+1:]
		}
	}
	return e.plugValue(graph.JoinPlug(nd, attr))
}
