// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"strconv"
	"strings"
)

// NormalizePlug returns the canonical form of a plug name, with
// surrounding whitespace and quotes removed. Plugs are compared
// by exact, case-sensitive string equality after normalization.
func NormalizePlug(plug string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(plug), `"'`))
}

// NormalizeKey returns the canonical form of an attribute key,
// which is a normalized plug without any leading '.', as attribute
// keys are typically written relative to their node (".i1").
func NormalizeKey(key string) string {
	return strings.TrimPrefix(NormalizePlug(key), ".")
}

// SplitPlug splits a plug into its node name and attribute path,
// on the first '.'. The node name is empty if the plug has no '.'.
func SplitPlug(plug string) (node, attr string) {
	plug = NormalizePlug(plug)
	i := strings.IndexByte(plug, '.')
	if i < 0 {
		return "", plug
	}
	return plug[:i], plug[i+1:]
}

// JoinPlug returns the plug for the given attribute on the given node.
func JoinPlug(node, attr string) string {
	return node + "." + NormalizeKey(attr)
}

// Element returns the attribute path of element idx in the
// given array attribute: Element("input", 3) = "input[3]".
func Element(name string, idx int) string {
	return name + "[" + strconv.Itoa(idx) + "]"
}

// SplitIndex splits an array attribute path such as "input3D[2].input3Dx"
// or "weight[0:4]" into its base name, inclusive index range and any
// remaining child path (without the leading '.').
// ok is false if the path has no well-formed index.
func SplitIndex(attr string) (base string, lo, hi int, rest string, ok bool) {
	open := strings.IndexByte(attr, '[')
	if open <= 0 {
		return
	}
	cls := strings.IndexByte(attr[open:], ']')
	if cls < 0 {
		return
	}
	cls += open
	base = attr[:open]
	idx := attr[open+1 : cls]
	rest = strings.TrimPrefix(attr[cls+1:], ".")
	var err error
	if a, b, isRange := strings.Cut(idx, ":"); isRange {
		if lo, err = strconv.Atoi(strings.TrimSpace(a)); err != nil {
			return
		}
		if hi, err = strconv.Atoi(strings.TrimSpace(b)); err != nil {
			return
		}
	} else {
		if lo, err = strconv.Atoi(strings.TrimSpace(idx)); err != nil {
			return
		}
		hi = lo
	}
	if lo < 0 || hi < lo {
		return
	}
	ok = true
	return
}

// shortNames are the short attribute names of compounds, whose
// children take a lower case axis suffix (t -> tx, ip -> ipr).
// Long names take an upper case suffix even when they are
// short words (min -> minR).
var shortNames = map[string]bool{
	"t": true, "r": true, "s": true, "sh": true, "jo": true, "ra": true,
	"rp": true, "sp": true, "rpt": true, "spt": true,
	"i": true, "i1": true, "i2": true, "i3": true, "ia": true, "ib": true,
	"o": true, "o2": true, "o3": true, "op": true, "oc": true, "ov": true,
	"ot": true, "or": true, "ip": true, "mn": true, "mx": true,
	"v": true, "n": true, "m": true, "on": true, "om": true,
	"ct": true, "cf": true, "c1": true, "c2": true,
}

// IsShortName returns whether the given compound attribute name is
// a short name, with lower case child suffixes.
func IsShortName(name string) bool {
	return shortNames[name]
}

// ChildAttr returns the child attribute for the given axis (0, 1, 2)
// of a compound attribute: long names get an upper case suffix
// (translate -> translateX), short names and 2D/3D names a lower
// case one (t -> tx, input3D -> input3Dx). Children of array elements
// repeat the array name: input3D[1] -> input3D[1].input3Dy. Color
// compounds use R, G, B when rgb is set.
func ChildAttr(attr string, axis int, rgb bool) string {
	if axis < 0 || axis > 2 {
		return attr
	}
	leaf := compoundLeaf(attr)
	suffixes := "XYZ"
	if rgb {
		suffixes = "RGB"
	}
	sfx := suffixes[axis : axis+1]
	if IsShortName(leaf) || strings.HasSuffix(leaf, "2D") || strings.HasSuffix(leaf, "3D") {
		sfx = strings.ToLower(sfx)
	}
	if strings.HasSuffix(attr, "]") {
		return attr + "." + leaf + sfx
	}
	return attr + sfx
}

// compoundLeaf returns the last attribute name in the given path,
// without any element index: a.input3D[1] -> input3D.
func compoundLeaf(attr string) string {
	leaf := attr
	if i := strings.LastIndexByte(attr, '.'); i >= 0 {
		leaf = attr[i+1:]
	}
	if j := strings.IndexByte(leaf, '['); j >= 0 {
		leaf = leaf[:j]
	}
	return leaf
}

// ChildPlug returns the plug for the given axis (0, 1, 2) of a
// compound source plug, using [ChildAttr]. Color compounds
// (outColor, oc) use R, G, B instead of X, Y, Z.
func ChildPlug(plug string, axis int) string {
	if axis < 0 || axis > 2 {
		return plug
	}
	node, attr := SplitPlug(plug)
	leaf := compoundLeaf(attr)
	lower := strings.ToLower(leaf)
	rgb := strings.Contains(lower, "color") || lower == "oc" || lower == "op" || lower == "c1" || lower == "c2"
	return JoinPlug(node, ChildAttr(attr, axis, rgb))
}
