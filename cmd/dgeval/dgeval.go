// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dgeval loads a scene and prints the values of plugs
// over a range of frames.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/dg/bind"
	"cogentcore.org/dg/eval"
	"cogentcore.org/dg/graph"
	"cogentcore.org/dg/scene"
	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
)

// Config is the configuration information for dgeval.
type Config struct {

	// Scene is the scene file to load, in JSON, YAML, TOML or HCL.
	Scene string `posarg:"0"`

	// Plugs are the plugs to evaluate, as node.attr. Plugs with * ? or {a,b}
	// are patterns, matched against all authored and connected plugs.
	// If none are given, all bound transform channels are evaluated.
	Plugs []string `posarg:"leftover" required:"-"`

	// Start is the first frame to evaluate.
	Start float32 `flag:"s,start"`

	// End is the last frame to evaluate. It is the start frame if it is before it.
	End float32 `flag:"e,end"`

	// Step is the frame step.
	Step float32 `default:"1"`

	// Custom includes bindings to non-transform attributes of transforms.
	Custom bool

	// Diagnostics logs evaluation diagnostics and their counts.
	Diagnostics bool `flag:"d,diag"`

	// Watch re-evaluates whenever the scene file changes, until interrupted.
	Watch bool `flag:"w,watch"`

	// Header writes a frame, plug, value header line before the values.
	// It is always on when standard output is a terminal.
	Header bool
}

func main() { //types:skip
	opts := cli.DefaultOptions("dgeval", "Evaluate plugs of a dependency graph scene over frames.")
	cli.Run(opts, &Config{}, Run)
}

// Run evaluates the scene, and keeps watching it for changes if
// [Config.Watch] is set.
func Run(c *Config) error { //cli:cmd -root
	fd := os.Stdout.Fd()
	c.Header = c.Header || isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !c.Watch {
		return Evaluate(c, os.Stdout)
	}
	errors.Log(Evaluate(c, os.Stdout))
	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		close(done)
	}()
	return Watch(c, os.Stdout, done)
}

// Frames returns the frames to evaluate.
func (c *Config) Frames() []float32 {
	step := c.Step
	if step <= 0 {
		step = 1
	}
	end := max(c.End, c.Start)
	var frs []float32
	for i := 0; ; i++ {
		f := c.Start + float32(i)*step
		if f > end+1e-4*step {
			break
		}
		frs = append(frs, f)
	}
	return frs
}

// Evaluate loads the scene and writes the value of each plug at each
// frame to w, one tab separated frame, plug and value per line.
// Scene validation errors are logged, and do not stop evaluation.
func Evaluate(c *Config, w io.Writer) error {
	fn, err := homedir.Expand(c.Scene)
	if err != nil {
		return err
	}
	g, err := scene.Load(fn)
	if g == nil {
		return err
	}
	errors.Log(err)
	plugs, err := Plugs(g, c.Plugs)
	if err != nil {
		return err
	}
	ev := eval.New(g)
	ct := &eval.Counter{}
	ev.Sink = ct.Sink
	if c.Diagnostics {
		ev.Sink = eval.Tee(eval.LogSink(nil), ct.Sink)
	}
	if c.Header {
		fmt.Fprintln(w, "frame\tplug\tvalue")
	}
	var d *bind.Driver
	if len(plugs) == 0 {
		d = &bind.Driver{Eval: ev, Bindings: bind.Bindings(g, c.Custom)}
	}
	for _, fr := range c.Frames() {
		if d == nil {
			for _, p := range plugs {
				fmt.Fprintf(w, "%g\t%s\t%g\n", fr, p, ev.EvaluatePlug(p, fr))
			}
			continue
		}
		d.Sample(fr, bind.SinkFunc(func(b *bind.Binding, value float32) {
			label := b.Channel.String()
			if b.Channel == bind.Custom {
				label = b.Attr
			}
			fmt.Fprintf(w, "%g\t%s.%s\t%g\n", fr, b.Target, label, value)
		}))
	}
	if c.Diagnostics {
		args := make([]any, 0, 2*eval.DiagKindN)
		for k := range eval.DiagKindN {
			args = append(args, k.String(), ct.Counts[k])
		}
		slog.Info("dgeval: diagnostics", args...)
	}
	return nil
}

// Plugs returns the plugs to evaluate for the given plugs and patterns,
// with each pattern replaced by the sorted plugs of the graph that match it.
// A * in a pattern does not match across the '.' of a plug.
func Plugs(g *graph.Graph, patterns []string) ([]string, error) {
	var plugs, all []string
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?{") {
			plugs = append(plugs, p)
			continue
		}
		gl, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("dgeval: bad plug pattern %q: %w", p, err)
		}
		if all == nil {
			all = allPlugs(g)
		}
		n := len(plugs)
		for _, cand := range all {
			if gl.Match(cand) {
				plugs = append(plugs, cand)
			}
		}
		if len(plugs) == n {
			slog.Warn("dgeval: no plugs match", "pattern", p)
		}
	}
	return plugs, nil
}

// allPlugs returns all plugs with authored values or connections, sorted.
func allPlugs(g *graph.Graph) []string {
	var all []string
	for _, n := range g.Nodes() {
		for _, a := range n.Attributes {
			all = append(all, graph.JoinPlug(n.Name, a.Key))
		}
	}
	for _, c := range g.Connections() {
		all = append(all, c.Src, c.Dst)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// Watch evaluates the scene again each time the scene file is written,
// until done is closed.
func Watch(c *Config, w io.Writer, done <-chan struct{}) error {
	fn, err := homedir.Expand(c.Scene)
	if err != nil {
		return err
	}
	if fn, err = filepath.Abs(fn); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// editors often replace files, so the directory is watched
	if err := watcher.Add(filepath.Dir(fn)); err != nil {
		return err
	}
	for {
		select {
		case <-done:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fn || !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			slog.Info("dgeval: scene changed", "file", c.Scene)
			errors.Log(Evaluate(c, w))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("dgeval: watch", "err", err)
		}
	}
}
