package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// nodeSpec describes one node of a demo graph, as read from YAML.
type nodeSpec struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"` // source, sink, adapter, nexus, splitter, identity
	Width int    `yaml:"width"`
}

// bindingSpec describes one binding between two named nodes.
type bindingSpec struct {
	Sink string `yaml:"sink"`
	// Source names the source-side node. Op selects the binding operator:
	// "once", "starLeft", "starRight".
	Source string `yaml:"source"`
	Op     string `yaml:"op"`
}

// demoGraph is the parsed form of a demo graph description.
type demoGraph struct {
	Nodes    []nodeSpec    `yaml:"nodes"`
	Bindings []bindingSpec `yaml:"bindings"`
}

// loadDemoGraph reads and parses a YAML demo graph description.
func loadDemoGraph(path string) (demoGraph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return demoGraph{}, fmt.Errorf("reading demo graph %q: %w", path, err)
	}
	var g demoGraph
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return demoGraph{}, fmt.Errorf("parsing demo graph %q: %w", path, err)
	}
	return g, nil
}

// defaultGraph is used when no --graph flag is given. It exercises the
// adapter, nexus and splitter shapes, each between sources and sinks: a
// plain source/adapter/sink chain, a nexus collapsing two sources into one
// sink, and a splitter fanning one source out through a single
// star-resolved consumer.
var defaultGraph = demoGraph{
	Nodes: []nodeSpec{
		{Name: "src", Kind: "source", Width: 8},
		{Name: "adapt", Kind: "adapter"},
		{Name: "sink", Kind: "sink", Width: 8},

		{Name: "srcA", Kind: "source", Width: 4},
		{Name: "srcB", Kind: "source", Width: 4},
		{Name: "merge", Kind: "nexus"},
		{Name: "merged", Kind: "sink", Width: 4},

		{Name: "srcFan", Kind: "source", Width: 2},
		{Name: "split", Kind: "splitter"},
		{Name: "fanned", Kind: "sink", Width: 2},
	},
	Bindings: []bindingSpec{
		{Sink: "adapt", Source: "src", Op: "once"},
		{Sink: "sink", Source: "adapt", Op: "once"},

		{Sink: "merge", Source: "srcA", Op: "once"},
		{Sink: "merge", Source: "srcB", Op: "once"},
		{Sink: "merged", Source: "merge", Op: "once"},

		{Sink: "split", Source: "srcFan", Op: "once"},
		{Sink: "fanned", Source: "split", Op: "starRight"},
	},
}
