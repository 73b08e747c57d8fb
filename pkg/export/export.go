// Package export serializes parsed dependency sketches to node-link JSON
// and Graphviz DOT for inspection and visualization.
//
// Sketch graphs may contain cycles (a back-reference can make a node its
// own descendant), so all traversals here track visited nodes and emit
// each node exactly once, however many parents reference it.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/depsketch/depsketch/pkg/sketch"
)

// Graph is the node-link serialization of one or more parsed sketches.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one serialized sketch node. The ID is the artifact coordinate,
// suffixed with "#2", "#3", … when distinct nodes share a coordinate.
type Node struct {
	ID         string            `json:"id"`
	Scope      string            `json:"scope,omitempty"`
	Optional   bool              `json:"optional,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Edge is a directed parent→child link. Duplicate child references
// produce one edge per occurrence, preserving child order.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FromNodes flattens the graphs reachable from the given roots into a
// single node-link Graph. Nodes are emitted in depth-first pre-order,
// each exactly once; cycles terminate at already-visited nodes.
func FromNodes(roots ...*sketch.Node) Graph {
	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	ids := make(map[*sketch.Node]string)
	used := make(map[string]int)

	var walk func(n *sketch.Node) string
	walk = func(n *sketch.Node) string {
		if id, ok := ids[n]; ok {
			return id
		}

		id := n.Dependency.Artifact.Coordinate()
		used[id]++
		if c := used[id]; c > 1 {
			id = fmt.Sprintf("%s#%d", id, c)
		}
		ids[n] = id

		g.Nodes = append(g.Nodes, Node{
			ID:         id,
			Scope:      n.Dependency.Scope,
			Optional:   n.Dependency.Optional,
			Properties: n.Dependency.Artifact.Properties,
		})

		for _, child := range n.Children {
			childID := walk(child)
			g.Edges = append(g.Edges, Edge{From: id, To: childID})
		}
		return id
	}

	for _, root := range roots {
		if root != nil {
			walk(root)
		}
	}
	return g
}

// WriteJSON encodes the graph as indented JSON and writes it to w.
func WriteJSON(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ToDOT converts the graph to Graphviz DOT format. The resulting string
// can be rendered with [RenderSVG] or any Graphviz toolchain.
func ToDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, nodeLabel(n))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n Node) string {
	if n.Scope == "" {
		return n.ID
	}
	return n.ID + "\n" + n.Scope + optionalSuffix(n)
}

func optionalSuffix(n Node) string {
	if n.Optional {
		return " (optional)"
	}
	return ""
}
