// Package sketch parses a compact, human-writable tree notation into
// dependency graphs, used to script fixtures for dependency-resolution
// tests.
//
// # Notation
//
// A definition is a sequence of lines, one node each. The first line is
// the root; children are drawn with ASCII tree connectors:
//
//	gid1:aid1:ver1:ext1
//	+- gid2:aid2:ver2:ext2:scope2
//	|  \- gid3:aid3:ver3:ext3
//	\- gid4:aid4:ver4:ext4:scope4
//
// Each line carries an artifact coordinate (see [artifact.ParseDefinition])
// optionally preceded by a node-id binding and optionally replaced by a
// back-reference:
//
//	(id)gid:aid:ver:ext    bind "id" to this node
//	^id                    reference the node previously bound to "id"
//
// A back-reference places the existing node at the current tree position,
// so a node can become a child of itself or of an ancestor; the result is
// then a cyclic graph, not a tree.
//
// Comments run from '#' to end of line. Placeholders "%s" are replaced
// positionally, in document order, from a list set with
// [Parser.SetSubstitutions]. Blank lines separate independent definitions;
// Parse reads the first, ParseMultiple reads all of them.
//
// # Connector convention
//
// Connectors are fixed-width, three characters per ancestor level:
//
//	"+- "  child with further siblings below
//	"\- "  last child
//	"|  "  continuation of an ancestor that has siblings below
//	"   "  continuation of an ancestor that was a last child
//
// Depth is the number of three-character cells, so mixed marker styles at
// the same level compare equal. Any prefix that is not a run of
// continuation cells ending in exactly one connector is malformed.
package sketch

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/depsketch/depsketch/pkg/artifact"
	"github.com/depsketch/depsketch/pkg/errors"
	"github.com/depsketch/depsketch/pkg/resource"
)

// Tree-drawing tokens, three columns per level.
const (
	connectorSibling = "+- " // child with siblings below
	connectorLast    = `\- ` // last child
	continuationBar  = "|  " // passthrough under a +- ancestor
	continuationGap  = "   " // passthrough under a \- ancestor
)

// Parser parses dependency sketches from named resources, URLs, or
// literal strings.
//
// The loader configuration is immutable for the parser's lifetime, so
// concurrent parses on a shared Parser are safe as long as
// SetSubstitutions is not called concurrently with them. Each parse call
// allocates its own node graph and id registry; nothing is shared or
// reused across calls.
type Parser struct {
	loader        *resource.Loader
	substitutions []string
}

// New creates a parser that resolves named resources through loader.
// A nil loader reads from the OS filesystem with no name prefix.
func New(loader *resource.Loader) *Parser {
	if loader == nil {
		loader = resource.NewLoader("")
	}
	return &Parser{loader: loader}
}

// SetSubstitutions sets the ordered values that replace "%s" placeholders
// in subsequently parsed definitions. Values are consumed strictly in
// document order, line by line, left to right. Parsing more placeholders
// than values fails with a SUBSTITUTION_ERROR.
//
// When no substitutions have been set, "%s" passes through as literal
// text. Each parse call (and each stanza in multi-document mode) starts
// consuming from the first value again.
func (p *Parser) SetSubstitutions(values ...string) {
	p.substitutions = values
}

// Parse loads the named resource and parses its first definition.
// Blank lines end the definition; use ParseMultiple to read all of them.
func (p *Parser) Parse(name string) (*Node, error) {
	r, err := p.loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return p.parseFirst(r)
}

// ParseURL fetches the resource at url and parses its first definition.
func (p *Parser) ParseURL(ctx context.Context, url string) (*Node, error) {
	r, err := p.loader.OpenURL(ctx, url)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return p.parseFirst(r)
}

// ParseLiteral parses the given definition string.
func (p *Parser) ParseLiteral(definition string) (*Node, error) {
	r := p.loader.Literal(definition)
	defer r.Close()
	return p.parseFirst(r)
}

// ParseMultiple loads the named resource, splits it into blank-line
// separated definitions, and parses each independently. Node ids do not
// leak between definitions, and the substitution list restarts for each.
// Roots are returned in document order; definitions that contain only
// blank or comment lines are skipped.
func (p *Parser) ParseMultiple(name string) ([]*Node, error) {
	r, err := p.loader.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return p.parseAll(r)
}

// ParseMultipleURL fetches the resource at url and parses all of its
// definitions. See ParseMultiple for stanza semantics.
func (p *Parser) ParseMultipleURL(ctx context.Context, url string) ([]*Node, error) {
	r, err := p.loader.OpenURL(ctx, url)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return p.parseAll(r)
}

// ParseMultipleLiteral parses all definitions in the given string.
// See ParseMultiple for stanza semantics.
func (p *Parser) ParseMultipleLiteral(definition string) ([]*Node, error) {
	r := p.loader.Literal(definition)
	defer r.Close()
	return p.parseAll(r)
}

func (p *Parser) parseFirst(r io.Reader) (*Node, error) {
	stanzas, err := readStanzas(r)
	if err != nil {
		return nil, err
	}
	if len(stanzas) == 0 {
		return nil, errors.New(errors.ErrCodeFormat, "empty definition: no root line")
	}
	return p.parseStanza(stanzas[0])
}

func (p *Parser) parseAll(r io.Reader) ([]*Node, error) {
	stanzas, err := readStanzas(r)
	if err != nil {
		return nil, err
	}

	roots := make([]*Node, 0, len(stanzas))
	for _, stanza := range stanzas {
		root, err := p.parseStanza(stanza)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

// readStanzas strips comments and groups the remaining non-blank lines
// into blank-line separated stanzas.
func readStanzas(r io.Reader) ([][]string, error) {
	var (
		stanzas [][]string
		current []string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := cutComment(scanner.Text())
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				stanzas = append(stanzas, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read definition")
	}

	if len(current) > 0 {
		stanzas = append(stanzas, current)
	}
	return stanzas, nil
}

// parseStanza runs the indent tree builder over one definition. It keeps a
// slot per depth holding the most recently built node at that depth; each
// line attaches to the slot one level up and truncates all deeper slots.
func (p *Parser) parseStanza(lines []string) (*Node, error) {
	sub := newSubstituter(p.substitutions)
	registry := make(map[string]*Node)

	var (
		root  *Node
		slots []*Node
	)

	for _, raw := range lines {
		line, err := sub.apply(raw)
		if err != nil {
			return nil, err
		}

		depth, payload, err := splitPrefix(line)
		if err != nil {
			return nil, err
		}

		node, err := p.buildNode(strings.TrimSpace(payload), registry)
		if err != nil {
			return nil, err
		}

		if depth == 0 {
			root = node
			slots = append(slots[:0], node)
			continue
		}
		if depth > len(slots) {
			return nil, errors.New(errors.ErrCodeFormat,
				"line %q has depth %d but no parent at depth %d", line, depth, depth-1)
		}

		parent := slots[depth-1]
		parent.Children = append(parent.Children, node)
		slots = append(slots[:depth], node)
	}

	return root, nil
}

// buildNode resolves one line payload to a node: a back-reference to a
// registered node, or a fresh node from a coordinate expression with an
// optional id binding.
func (p *Parser) buildNode(payload string, registry map[string]*Node) (*Node, error) {
	if rest, ok := strings.CutPrefix(payload, "^"); ok {
		id := strings.TrimSpace(rest)
		node, ok := registry[id]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnresolvedReference, "reference to unknown node id %q", id)
		}
		return node, nil
	}

	var id string
	if strings.HasPrefix(payload, "(") {
		end := strings.Index(payload, ")")
		if end < 0 {
			return nil, errors.New(errors.ErrCodeFormat, "unterminated node id in %q", payload)
		}
		id = payload[1:end]
		payload = payload[end+1:]
		if _, exists := registry[id]; exists {
			return nil, errors.New(errors.ErrCodeFormat, "node id %q bound twice", id)
		}
	}

	def, err := artifact.ParseDefinition(payload)
	if err != nil {
		return nil, err
	}

	node := &Node{
		Dependency: artifact.Dependency{
			Artifact: def.Artifact(),
			Scope:    def.Scope,
			Optional: def.Optional,
		},
	}
	if id != "" {
		registry[id] = node
	}
	return node, nil
}

// splitPrefix decodes the tree-drawing prefix into a depth and the
// remaining payload. Depth 0 means no prefix at all (a root line).
func splitPrefix(line string) (int, string, error) {
	rest := line
	cells := 0
	for {
		switch {
		case strings.HasPrefix(rest, connectorSibling), strings.HasPrefix(rest, connectorLast):
			return cells + 1, rest[len(connectorSibling):], nil
		case strings.HasPrefix(rest, continuationBar), strings.HasPrefix(rest, continuationGap):
			cells++
			rest = rest[len(continuationBar):]
		default:
			if cells > 0 {
				return 0, "", errors.New(errors.ErrCodeFormat, "malformed tree prefix in line %q", line)
			}
			return 0, rest, nil
		}
	}
}

func cutComment(line string) string {
	before, _, _ := strings.Cut(line, "#")
	return before
}
