// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene reads and writes the node table and connection list of
// an imported scene in an interchange form (JSON, YAML, TOML or HCL), and
// builds the dependency [graph.Graph] from them.
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/dg/graph"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// AttributeRecord is one authored attribute of a node record.
type AttributeRecord struct {

	// Key is the attribute path, such as ".tx" or ".i[0:2]".
	Key string `json:"key" yaml:"key" toml:"key" hcl:"key,label"`

	// Tokens are the raw value tokens, in file order.
	Tokens []string `json:"tokens,omitempty" yaml:"tokens,omitempty" toml:"tokens,omitempty" hcl:"tokens,optional"`
}

// NodeRecord is one node in the node table.
type NodeRecord struct {
	Name string `json:"name" yaml:"name" toml:"name" hcl:"name,label"`

	Type string `json:"type" yaml:"type" toml:"type" hcl:"type"`

	Attributes []AttributeRecord `json:"attributes,omitempty" yaml:"attributes,omitempty" toml:"attributes,omitempty" hcl:"attribute,block"`
}

// ConnectionRecord is one connection, from Src to Dst.
type ConnectionRecord struct {
	Src string `json:"src" yaml:"src" toml:"src" hcl:"src"`

	Dst string `json:"dst" yaml:"dst" toml:"dst" hcl:"dst"`

	Force bool `json:"force,omitempty" yaml:"force,omitempty" toml:"force,omitempty" hcl:"force,optional"`
}

// File is the contents of a scene interchange file.
type File struct {

	// Nodes is the node table, in declaration order.
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" toml:"nodes" hcl:"node,block"`

	// Connections are the connections, in declaration order,
	// which determines which connection wins for a destination.
	Connections []ConnectionRecord `json:"connections" yaml:"connections" toml:"connections" hcl:"connection,block"`
}

// Format is a scene file format.
type Format int32

const (
	JSON Format = iota
	YAML
	TOML

	// HCL has node and connection blocks:
	//
	//	node "pCube1" {
	//	  type = "transform"
	//	  attribute ".t" { tokens = ["1", "2", "3"] }
	//	}
	//	connection {
	//	  src = "pCube1.tx"
	//	  dst = "md.i1x"
	//	}
	HCL
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "YAML"
	case TOML:
		return "TOML"
	case HCL:
		return "HCL"
	}
	return "JSON"
}

// FormatFromFilename returns the format for the extension of the given file name.
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".hcl":
		return HCL, nil
	}
	return JSON, fmt.Errorf("scene: unknown file format for %q", filename)
}

// Open reads a scene file, in the format given by its extension.
func Open(filename string) (*File, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	f, err := Read(fp, format)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", filename, err)
	}
	return f, nil
}

// Read reads a scene in the given format.
func Read(r io.Reader, format Format) (*File, error) {
	f := &File{}
	switch format {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(f); err != nil && err != io.EOF {
			return nil, err
		}
	case TOML:
		if err := toml.NewDecoder(r).Decode(f); err != nil {
			return nil, err
		}
	case HCL:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		hf, diags := hclparse.NewParser().ParseHCL(b, "scene.hcl")
		if diags.HasErrors() {
			return nil, diags
		}
		if diags := gohcl.DecodeBody(hf.Body, nil, f); diags.HasErrors() {
			return nil, diags
		}
	default:
		if err := json.NewDecoder(r).Decode(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ReadBytes reads a scene in the given format from the given bytes.
func ReadBytes(b []byte, format Format) (*File, error) {
	return Read(bytes.NewReader(b), format)
}

// Save writes the scene to a file, in the format given by its extension.
func (f *File) Save(filename string) error {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := f.Write(&b, format); err != nil {
		return err
	}
	return os.WriteFile(filename, b.Bytes(), 0666)
}

// Write writes the scene in the given format.
func (f *File) Write(w io.Writer, format Format) error {
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(f)
	case HCL:
		hf := hclwrite.NewEmptyFile()
		gohcl.EncodeIntoBody(f, hf.Body())
		_, err := w.Write(hf.Bytes())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(f)
}

// Graph builds the dependency graph of the scene. Invalid records
// (nodes without a name, connections without both plugs) are skipped,
// and duplicate node names are replaced by the later node; all of these
// are reported in the returned error, which does not prevent the use
// of the graph built from the valid records.
func (f *File) Graph() (*graph.Graph, error) {
	var errs []error
	nodes := make([]*graph.Node, 0, len(f.Nodes))
	seen := make(map[string]bool, len(f.Nodes))
	for i := range f.Nodes {
		rec := &f.Nodes[i]
		name := graph.NormalizePlug(rec.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("scene: node %d (type %q) has no name", i, rec.Type))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("scene: duplicate node name %q", name))
		}
		seen[name] = true
		n := &graph.Node{}
		if err := copier.CopyWithOption(n, rec, copier.Option{DeepCopy: true}); err != nil {
			errs = append(errs, fmt.Errorf("scene: node %q: %w", name, err))
			continue
		}
		nodes = append(nodes, n)
	}
	conns := make([]graph.Connection, 0, len(f.Connections))
	for i, rec := range f.Connections {
		src, dst := graph.NormalizePlug(rec.Src), graph.NormalizePlug(rec.Dst)
		if !validPlug(src) || !validPlug(dst) {
			errs = append(errs, fmt.Errorf("scene: connection %d from %q to %q is not between two plugs", i, rec.Src, rec.Dst))
			continue
		}
		if dn, _ := graph.SplitPlug(dst); !seen[dn] {
			slog.Debug("scene: connection to unknown node", "src", src, "dst", dst)
		}
		var c graph.Connection
		errors.Log(copier.Copy(&c, &rec))
		conns = append(conns, c)
	}
	return graph.New(nodes, conns), errors.Join(errs...)
}

// validPlug returns whether p names an attribute on a node.
func validPlug(p string) bool {
	node, attr := graph.SplitPlug(p)
	return node != "" && attr != ""
}

// Load reads a scene file and builds its graph. The graph is returned
// along with any validation error; it is nil only if the file
// could not be read.
func Load(filename string) (*graph.Graph, error) {
	f, err := Open(filename)
	if err != nil {
		return nil, err
	}
	return f.Graph()
}

// FromGraph returns the scene records for the given graph.
func FromGraph(g *graph.Graph) *File {
	f := &File{}
	errors.Log(copier.CopyWithOption(&f.Nodes, g.Nodes(), copier.Option{DeepCopy: true}))
	errors.Log(copier.Copy(&f.Connections, g.Connections()))
	return f
}
