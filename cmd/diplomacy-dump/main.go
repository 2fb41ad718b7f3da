// Command diplomacy-dump builds a small demo graph, resolves it, and prints
// a GraphML-ish summary of each bound node's external flags, resolved star
// widths, inputs and outputs. It is a consumer of the diplomacy/node
// library, not part of the core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/diplomacy/internal/demo"
	"github.com/sarchlab/diplomacy/node"
	"github.com/sarchlab/diplomacy/scope"
)

type demoNode = node.Node[demo.Param, demo.Width, demo.Edge, demo.Bundle]

// dumpComponent is a minimal akita component, just enough to name and own
// the ports the demo's bundles are built from — this CLI never actually
// runs the simulation engine, it only resolves the graph and prints it.
type dumpComponent struct {
	*sim.TickingComponent
}

func (c *dumpComponent) Tick(_ sim.VTimeInSec) bool { return false }

func newDumpComponent(engine sim.Engine, freq sim.Freq) *dumpComponent {
	c := &dumpComponent{}
	c.TickingComponent = sim.NewTickingComponent("diplomacy-dump", engine, freq, c)
	return c
}

func main() {
	graphPath := flag.String("graph", "", "path to a YAML demo graph description (defaults to a built-in demo)")
	flag.Parse()

	g := defaultGraph
	if *graphPath != "" {
		loaded, err := loadDemoGraph(*graphPath)
		if err != nil {
			log.Fatalf("diplomacy-dump: %v", err)
		}
		g = loaded
	}

	atexit.Register(func() {
		log.Println("diplomacy-dump: done")
	})

	if err := run(g); err != nil {
		log.Fatalf("diplomacy-dump: %v", err)
	}
	atexit.Exit(0)
}

func run(g demoGraph) error {
	engine := sim.NewSerialEngine()
	comp := newDumpComponent(engine, 1*sim.GHz)
	imp := demo.NewImp(comp, engine, 1*sim.GHz)

	stack := scope.NewStack()
	sc := stack.Push("diplomacy-dump")

	nodes := make(map[string]*demoNode, len(g.Nodes))
	for _, spec := range g.Nodes {
		n, err := buildNode(sc, imp, spec)
		if err != nil {
			return fmt.Errorf("building node %q: %w", spec.Name, err)
		}
		nodes[spec.Name] = n
	}

	for _, b := range g.Bindings {
		x, ok := nodes[b.Sink]
		if !ok {
			return fmt.Errorf("binding %+v: unknown sink node", b)
		}
		y, ok := nodes[b.Source]
		if !ok {
			return fmt.Errorf("binding %+v: unknown source node", b)
		}
		if err := applyBinding(x, y, b.Op); err != nil {
			return fmt.Errorf("binding %q -> %q: %w", b.Source, b.Sink, err)
		}
	}

	sc.ApplyActions()

	return dump(g, nodes)
}

func buildNode(sc *scope.Scope, imp *demo.Imp, spec nodeSpec) (*demoNode, error) {
	po := []demo.Param{{Name: spec.Name, Width: spec.Width}}
	pi := []demo.Width{{MinWidth: spec.Width}}

	switch spec.Kind {
	case "source":
		return node.NewSource[demo.Param, demo.Width, demo.Edge, demo.Bundle](sc, spec.Name, imp, po)
	case "sink":
		return node.NewSink[demo.Param, demo.Width, demo.Edge, demo.Bundle](sc, spec.Name, imp, pi)
	case "adapter":
		return node.NewAdapter[demo.Param, demo.Width, demo.Edge, demo.Bundle](
			sc, spec.Name, imp, node.AtLeast(0), node.AtLeast(0),
			func(d demo.Param) demo.Param { return d },
			func(u demo.Width) demo.Width { return u },
		)
	case "nexus":
		return node.NewNexus[demo.Param, demo.Width, demo.Edge, demo.Bundle](
			sc, spec.Name, imp, node.AtLeast(0), node.AtLeast(0),
			func(ds []demo.Param) demo.Param {
				widest := demo.Param{Name: spec.Name}
				for _, d := range ds {
					if d.Width > widest.Width {
						widest = d
					}
				}
				return widest
			},
			func(us []demo.Width) demo.Width {
				max := demo.Width{}
				for _, u := range us {
					if u.MinWidth > max.MinWidth {
						max = u
					}
				}
				return max
			},
		)
	case "splitter":
		return node.NewSplitter[demo.Param, demo.Width, demo.Edge, demo.Bundle](
			sc, spec.Name, imp, node.AtLeast(1), node.AtLeast(0),
			func(n int, p []demo.Param) []demo.Param {
				out := make([]demo.Param, n)
				for i := range out {
					out[i] = p[i%len(p)]
				}
				return out
			},
			func(n int, p []demo.Width) []demo.Width {
				out := make([]demo.Width, n)
				for i := range out {
					out[i] = p[i%len(p)]
				}
				return out
			},
		)
	case "identity":
		return node.NewIdentity[demo.Param, demo.Width, demo.Edge, demo.Bundle](sc, spec.Name, imp, node.AtLeast(0), node.AtLeast(0))
	default:
		return nil, fmt.Errorf("unknown node kind %q", spec.Kind)
	}
}

func applyBinding(x, y *demoNode, op string) error {
	loc := node.CaptureLoc(1)
	switch op {
	case "once":
		return node.Once(x, y, loc)
	case "starLeft":
		return node.StarLeft(x, y, loc)
	case "starRight":
		return node.StarRight(x, y, loc)
	default:
		return fmt.Errorf("unknown binding operator %q", op)
	}
}

func dump(g demoGraph, nodes map[string]*demoNode) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Node", "ExternalIn", "ExternalOut", "IStar", "OStar", "Inputs", "Outputs"})

	for _, spec := range g.Nodes {
		n := nodes[spec.Name]
		if n.OmitGraphML() {
			continue
		}

		iStar, err := n.IStar()
		if err != nil {
			return fmt.Errorf("node %q: %w", spec.Name, err)
		}
		oStar, err := n.OStar()
		if err != nil {
			return fmt.Errorf("node %q: %w", spec.Name, err)
		}
		inputs, err := n.Inputs()
		if err != nil {
			return fmt.Errorf("node %q: %w", spec.Name, err)
		}
		outputs, err := n.Outputs()
		if err != nil {
			return fmt.Errorf("node %q: %w", spec.Name, err)
		}

		t.AppendRow(table.Row{
			spec.Name, n.ExternalIn(), n.ExternalOut(), iStar, oStar,
			formatPairs(inputs), formatPairs(outputs),
		})
	}

	t.Render()
	return nil
}

func formatPairs(pairs []node.IOPair) string {
	s := ""
	for i, p := range pairs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s(%s)", p.Peer.Name(), p.Label)
	}
	return s
}
