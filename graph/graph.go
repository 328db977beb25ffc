// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph provides the dependency graph model of an imported
// scene: named nodes with typed, authored attributes, and directed
// attribute-to-attribute connections. A Graph is built once from the
// records handed over by a scene file parser and is read-only
// thereafter; evaluation state lives in the evaluator, not here.
package graph

import (
	"slices"
	"sort"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Connection is a directed edge from a source plug to a destination
// plug, meaning that the destination value is driven by the source.
type Connection struct {
	Src string

	Dst string

	// Force records that the connection was made with the force flag,
	// replacing any existing connection to the destination.
	Force bool
}

// Graph is an immutable index over nodes and connections.
// Cycles are allowed; handling them is up to the evaluator.
type Graph struct {
	nodes map[string]*Node

	// order is the node list in declaration order.
	order []*Node

	// conns are the valid connections, in declaration order.
	conns []Connection

	// incoming maps each destination plug to its sources, in declaration order.
	incoming map[string][]string

	// outgoing maps each source plug to its destinations, in declaration order.
	outgoing map[string][]string

	// dstAttrs maps each node name to the attributes that are connection destinations.
	dstAttrs map[string][]string
}

// New returns a new graph indexing the given nodes and connections.
// The graph takes ownership of the nodes: their names are normalized
// in place, and they must not be modified afterwards.
// Node names are unique keys: a later node with the same name replaces
// an earlier one. Connections must be given in declaration order.
func New(nodes []*Node, conns []Connection) *Graph {
	g := &Graph{
		nodes:    make(map[string]*Node, len(nodes)),
		incoming: make(map[string][]string, len(conns)),
		outgoing: make(map[string][]string, len(conns)),
		dstAttrs: map[string][]string{},
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.Name = NormalizePlug(n.Name)
		if old, has := g.nodes[n.Name]; has {
			g.order[slices.Index(g.order, old)] = n
		} else {
			g.order = append(g.order, n)
		}
		g.nodes[n.Name] = n
	}
	for _, c := range conns {
		src, dst := NormalizePlug(c.Src), NormalizePlug(c.Dst)
		if src == "" || dst == "" {
			continue
		}
		g.conns = append(g.conns, Connection{Src: src, Dst: dst, Force: c.Force})
		g.incoming[dst] = append(g.incoming[dst], src)
		g.outgoing[src] = append(g.outgoing[src], dst)
		dn, da := SplitPlug(dst)
		if !slices.Contains(g.dstAttrs[dn], da) {
			g.dstAttrs[dn] = append(g.dstAttrs[dn], da)
		}
	}
	return g
}

// Node returns the node with the given name, or nil.
func (g *Graph) Node(name string) *Node {
	return g.nodes[NormalizePlug(name)]
}

// Nodes returns all nodes in declaration order.
func (g *Graph) Nodes() []*Node {
	return g.order
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Connections returns all connections in declaration order,
// with normalized plugs.
func (g *Graph) Connections() []Connection {
	return g.conns
}

// Source returns the source plug connected to the given destination.
// If more than one connection was recorded for the destination,
// the most recently declared one wins.
func (g *Graph) Source(dst string) (string, bool) {
	srcs := g.incoming[NormalizePlug(dst)]
	if len(srcs) == 0 {
		return "", false
	}
	return srcs[len(srcs)-1], true
}

// Sources returns all source plugs recorded for the given destination,
// in declaration order.
func (g *Graph) Sources(dst string) []string {
	return g.incoming[NormalizePlug(dst)]
}

// Destinations returns the destination plugs driven by the given source,
// in declaration order.
func (g *Graph) Destinations(src string) []string {
	return g.outgoing[NormalizePlug(src)]
}

// ConnectedAttrs returns the attributes of the given node that are
// connection destinations, in first-declaration order.
func (g *Graph) ConnectedAttrs(node string) []string {
	return g.dstAttrs[NormalizePlug(node)]
}

// ArrayIndices returns the element indices of an array attribute
// on the given node that are either connected or have authored values,
// under any of the given names (long and short aliases). The result
// is sorted in ascending order without duplicates, independent of
// the order in which the elements were declared.
func (g *Graph) ArrayIndices(node string, names ...string) []int {
	var idxs []int
	for _, attr := range g.ConnectedAttrs(node) {
		base, lo, hi, _, ok := SplitIndex(attr)
		if ok && slices.Contains(names, base) {
			for j := lo; j <= hi && j-lo < maxRange; j++ {
				idxs = append(idxs, j)
			}
		}
	}
	if n := g.Node(node); n != nil {
		for _, name := range names {
			idxs = append(idxs, n.LiteralIndices(name)...)
		}
	}
	slices.Sort(idxs)
	return slices.Compact(idxs)
}

// SimilarNodes returns up to limit node names that are similar to the given
// (typically missing) name, most similar first.
func (g *Graph) SimilarNodes(name string, limit int) []string {
	type match struct {
		name string
		sim  float64
	}
	jw := metrics.NewJaroWinkler()
	var ms []match
	for _, n := range g.order {
		sim := strutil.Similarity(name, n.Name, jw)
		if sim >= 0.8 {
			ms = append(ms, match{n.Name, sim})
		}
	}
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].sim > ms[j].sim
	})
	if len(ms) > limit {
		ms = ms[:limit]
	}
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.name
	}
	return names
}
