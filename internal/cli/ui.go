package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/depsketch/depsketch/pkg/sketch"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - coordinates
	colorYellow = lipgloss.Color("220") // Amber - scopes
	colorBlue   = lipgloss.Color("75")  // Light blue - back-references
	colorGray   = lipgloss.Color("245") // Gray - connectors
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleCoordinate = lipgloss.NewStyle().Foreground(colorCyan)
	styleScope      = lipgloss.NewStyle().Foreground(colorYellow)
	styleReference  = lipgloss.NewStyle().Foreground(colorBlue)
	styleConnector  = lipgloss.NewStyle().Foreground(colorGray)
	styleDim        = lipgloss.NewStyle().Foreground(colorDim)
)

// renderTree formats a parsed sketch graph back into connector notation,
// with coordinates and scopes styled. Nodes reached a second time (shared
// references and cycles) are printed once as a back-reference marker
// instead of being expanded again.
func renderTree(root *sketch.Node) string {
	var b strings.Builder
	seen := make(map[*sketch.Node]bool)
	renderNode(&b, root, "", true, true, seen)
	return b.String()
}

func renderNode(b *strings.Builder, n *sketch.Node, prefix string, isRoot, isLast bool, seen map[*sketch.Node]bool) {
	if !isRoot {
		connector := "+- "
		if isLast {
			connector = `\- `
		}
		b.WriteString(styleConnector.Render(prefix + connector))
	}

	if seen[n] {
		b.WriteString(styleReference.Render("^" + n.Dependency.Artifact.Coordinate()))
		b.WriteString("\n")
		return
	}
	seen[n] = true

	b.WriteString(styleCoordinate.Render(n.Dependency.Artifact.Coordinate()))
	if n.Dependency.Scope != "" {
		b.WriteString(styleDim.Render(" "))
		b.WriteString(styleScope.Render(n.Dependency.Scope))
	}
	if n.Dependency.Optional {
		b.WriteString(styleDim.Render(" (optional)"))
	}
	for k, v := range n.Dependency.Artifact.Properties {
		b.WriteString(styleDim.Render(fmt.Sprintf(" %s=%s", k, v)))
	}
	b.WriteString("\n")

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "   "
		} else {
			childPrefix += "|  "
		}
	}
	for i, child := range n.Children {
		renderNode(b, child, childPrefix, false, i == len(n.Children)-1, seen)
	}
}
