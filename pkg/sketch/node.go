package sketch

import "github.com/depsketch/depsketch/pkg/artifact"

// Node is one vertex of a parsed dependency sketch.
//
// Children holds references, not owned copies: a back-reference in the
// notation places an existing node under a second parent, so a node can be
// a child of itself or of an ancestor. The resulting structure is a graph,
// not a tree; walkers must track visited nodes. The garbage collector
// reclaims the whole structure as a unit, cycles included, once the parse
// result is dropped.
type Node struct {
	Dependency artifact.Dependency
	Children   []*Node
}

// Count returns the number of distinct nodes reachable from n, counting
// each node once regardless of how many parents reference it.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	seen := make(map[*Node]bool)
	var walk func(*Node)
	walk = func(node *Node) {
		if seen[node] {
			return
		}
		seen[node] = true
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return len(seen)
}
