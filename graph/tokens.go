// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"strconv"
	"strings"
)

// ParseFloat parses one raw attribute token as a float32.
// Boolean words (true/false, yes/no, on/off) are accepted as 1 and 0.
func ParseFloat(tok string) (float32, bool) {
	tok = strings.TrimSpace(strings.Trim(strings.TrimSpace(tok), `"';`))
	if tok == "" {
		return 0, false
	}
	switch strings.ToLower(tok) {
	case "true", "yes", "on":
		return 1, true
	case "false", "no", "off":
		return 0, true
	}
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// FloatOr returns the parsed value of tok, or def if it is not a number.
func FloatOr(tok string, def float32) float32 {
	if f, ok := ParseFloat(tok); ok {
		return f
	}
	return def
}

// isFlag returns whether tok is a command flag such as -type or -s,
// as opposed to a negative number.
func isFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	c := tok[1]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// flagTakesValue returns whether the given flag consumes the
// following token as its argument.
func flagTakesValue(flag string) bool {
	switch flag {
	case "-type", "-typ", "-s", "-size", "-k", "-keyable", "-l", "-lock", "-cb", "-channelBox", "-av", "-alteredValue":
		return true
	}
	return false
}
