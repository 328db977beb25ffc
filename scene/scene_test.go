// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/dg/graph"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneJSON = `{
	"nodes": [
		{"name": "pCube1", "type": "transform", "attributes": [{"key": ".t", "tokens": ["-type", "double3", "1", "2", "3"]}]},
		{"name": "md", "type": "multiplyDivide", "attributes": [{"key": ".i2", "tokens": ["2", "2", "2"]}]}
	],
	"connections": [
		{"src": "pCube1.t", "dst": "md.i1"},
		{"src": "md.o", "dst": "pCube1.r", "force": true}
	]
}`

const sceneYAML = `
nodes:
  - name: pCube1
    type: transform
    attributes:
      - key: .t
        tokens: ["-type", "double3", "1", "2", "3"]
  - name: md
    type: multiplyDivide
    attributes:
      - key: .i2
        tokens: ["2", "2", "2"]
connections:
  - src: pCube1.t
    dst: md.i1
  - src: md.o
    dst: pCube1.r
    force: true
`

const sceneTOML = `
[[nodes]]
name = "pCube1"
type = "transform"

[[nodes.attributes]]
key = ".t"
tokens = ["-type", "double3", "1", "2", "3"]

[[nodes]]
name = "md"
type = "multiplyDivide"

[[nodes.attributes]]
key = ".i2"
tokens = ["2", "2", "2"]

[[connections]]
src = "pCube1.t"
dst = "md.i1"

[[connections]]
src = "md.o"
dst = "pCube1.r"
force = true
`

const sceneHCL = `
node "pCube1" {
  type = "transform"
  attribute ".t" {
    tokens = ["-type", "double3", "1", "2", "3"]
  }
}

node "md" {
  type = "multiplyDivide"
  attribute ".i2" {
    tokens = ["2", "2", "2"]
  }
}

connection {
  src = "pCube1.t"
  dst = "md.i1"
}

connection {
  src   = "md.o"
  dst   = "pCube1.r"
  force = true
}
`

func TestFormats(t *testing.T) {
	fj, err := ReadBytes([]byte(sceneJSON), JSON)
	require.NoError(t, err)
	fy, err := ReadBytes([]byte(sceneYAML), YAML)
	require.NoError(t, err)
	ft, err := ReadBytes([]byte(sceneTOML), TOML)
	require.NoError(t, err)
	if diff := cmp.Diff(fj, fy); diff != "" {
		t.Errorf("YAML scene differs (-json +yaml):\n%s", diff)
	}
	if diff := cmp.Diff(fj, ft); diff != "" {
		t.Errorf("TOML scene differs (-json +toml):\n%s", diff)
	}
	fh, err := ReadBytes([]byte(sceneHCL), HCL)
	require.NoError(t, err)
	if diff := cmp.Diff(fj, fh); diff != "" {
		t.Errorf("HCL scene differs (-json +hcl):\n%s", diff)
	}
	_, err = ReadBytes([]byte(`node "a" {}`), HCL)
	assert.Error(t, err)
	assert.Len(t, fj.Nodes, 2)
	assert.True(t, fj.Connections[1].Force)
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		fn     string
		format Format
		err    bool
	}{
		{"a.json", JSON, false},
		{"dir/a.YAML", YAML, false},
		{"a.yml", YAML, false},
		{"a.toml", TOML, false},
		{"a.hcl", HCL, false},
		{"a.ma", JSON, true},
	}
	for _, test := range tests {
		f, err := FormatFromFilename(test.fn)
		assert.Equal(t, test.format, f, test.fn)
		assert.Equal(t, test.err, err != nil, test.fn)
	}
	assert.Equal(t, "TOML", TOML.String())
}

func TestGraph(t *testing.T) {
	f, err := ReadBytes([]byte(sceneJSON), JSON)
	require.NoError(t, err)
	g, err := f.Graph()
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
	n := g.Node("pCube1")
	require.NotNil(t, n)
	assert.Equal(t, "transform", n.Type)
	v, ok := n.Component("t", 1)
	assert.True(t, ok)
	assert.Equal(t, float32(2), v)
	src, ok := g.Source("md.i1")
	assert.True(t, ok)
	assert.Equal(t, "pCube1.t", src)
	assert.Equal(t, []graph.Connection{
		{Src: "pCube1.t", Dst: "md.i1"},
		{Src: "md.o", Dst: "pCube1.r", Force: true},
	}, g.Connections())

	// records are copied, not shared
	f.Nodes[0].Attributes[0].Tokens[2] = "7"
	v, _ = n.Component("t", 0)
	assert.Equal(t, float32(1), v)
}

func TestValidation(t *testing.T) {
	f := &File{
		Nodes: []NodeRecord{
			{Name: "a", Type: "transform", Attributes: []AttributeRecord{{Key: ".tx", Tokens: []string{"1"}}}},
			{Name: "", Type: "transform"},
			{Name: `"a"`, Type: "joint"},
		},
		Connections: []ConnectionRecord{
			{Src: "a.tx", Dst: "b.tx"},
			{Src: "a", Dst: "b.ty"},
			{Src: "a.tx", Dst: ""},
		},
	}
	g, err := f.Graph()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "node 1")
	assert.Contains(t, msg, `duplicate node name "a"`)
	assert.Contains(t, msg, "connection 1")
	assert.Contains(t, msg, "connection 2")
	assert.Equal(t, 4, strings.Count(msg, "scene:"))

	require.NotNil(t, g)
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, "joint", g.Node("a").Type)
	assert.Len(t, g.Connections(), 1)
}

func TestSaveOpen(t *testing.T) {
	f, err := ReadBytes([]byte(sceneYAML), YAML)
	require.NoError(t, err)
	dir := t.TempDir()
	for _, ext := range []string{".json", ".yaml", ".toml", ".hcl"} {
		fn := filepath.Join(dir, "scene"+ext)
		require.NoError(t, f.Save(fn))
		got, err := Open(fn)
		require.NoError(t, err, ext)
		if diff := cmp.Diff(f, got); diff != "" {
			t.Errorf("%s round trip differs (-want +got):\n%s", ext, diff)
		}
		g, err := Load(fn)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
	}
	assert.Error(t, f.Save(filepath.Join(dir, "scene.txt")))
	_, err = Open(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFromGraph(t *testing.T) {
	f, err := ReadBytes([]byte(sceneTOML), TOML)
	require.NoError(t, err)
	g, err := f.Graph()
	require.NoError(t, err)
	if diff := cmp.Diff(f, FromGraph(g)); diff != "" {
		t.Errorf("FromGraph differs (-want +got):\n%s", diff)
	}
}
