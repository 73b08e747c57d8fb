package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/depsketch/depsketch/pkg/export"
	"github.com/depsketch/depsketch/pkg/resource"
	"github.com/depsketch/depsketch/pkg/sketch"
)

// Output formats for the parse command.
const (
	formatTree = "tree"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// urlCacheTTL is how long fetched URL fixtures are cached with --cache.
const urlCacheTTL = 24 * time.Hour

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	multiple      bool     // parse blank-line separated stanzas
	substitutions []string // ordered %s replacement values
	prefix        string   // resource name prefix
	format        string   // output format (tree, json, dot, svg)
	output        string   // output file path (stdout if empty)
	cache         bool     // cache URL responses
}

// newParseCmd creates the parse command. The fixture argument is either a
// file path (resolved against --prefix) or an http(s) URL.
func newParseCmd() *cobra.Command {
	opts := parseOpts{format: formatTree}

	cmd := &cobra.Command{
		Use:   "parse <fixture>",
		Short: "Parse a dependency sketch fixture",
		Long: `Parse a dependency sketch fixture and print or export the resulting graph.

Examples:
  depsketch parse tree.txt                            # styled tree preview
  depsketch parse tree.txt --format json -o out.json  # node-link JSON
  depsketch parse tree.txt --multiple                 # all stanzas
  depsketch parse tree.txt --subst gid --subst aid    # fill %s placeholders
  depsketch parse https://example.com/fixture.txt --cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runParse(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.multiple, "multiple", "m", false, "parse blank-line separated stanzas")
	cmd.Flags().StringArrayVar(&opts.substitutions, "subst", nil, "substitution value for the next %s placeholder (repeatable)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "prefix prepended to fixture names")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: tree, json, dot, or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "cache URL responses")

	return cmd
}

func runParse(ctx context.Context, opts *parseOpts, fixture string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	parser, err := newParser(opts)
	if err != nil {
		return err
	}

	roots, err := parseFixture(ctx, parser, opts, fixture)
	if err != nil {
		return err
	}

	total := 0
	for _, root := range roots {
		total += root.Count()
	}
	prog.done(fmt.Sprintf("Parsed %d definition(s), %d node(s)", len(roots), total))

	out, err := formatRoots(opts.format, roots)
	if err != nil {
		return err
	}
	return writeOutput(opts.output, out)
}

func newParser(opts *parseOpts) (*sketch.Parser, error) {
	var loaderOpts []resource.Option
	if opts.cache {
		cache, err := resource.NewCache("", urlCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("init cache: %w", err)
		}
		loaderOpts = append(loaderOpts, resource.WithCache(cache))
	}

	parser := sketch.New(resource.NewLoader(opts.prefix, loaderOpts...))
	if opts.substitutions != nil {
		parser.SetSubstitutions(opts.substitutions...)
	}
	return parser, nil
}

// parseFixture dispatches on the argument shape. Absolute paths are read
// directly; relative names go through the loader so --prefix applies.
func parseFixture(ctx context.Context, parser *sketch.Parser, opts *parseOpts, fixture string) ([]*sketch.Node, error) {
	if filepath.IsAbs(fixture) {
		data, err := os.ReadFile(fixture)
		if err != nil {
			return nil, err
		}
		if opts.multiple {
			return parser.ParseMultipleLiteral(string(data))
		}
		root, err := parser.ParseLiteral(string(data))
		if err != nil {
			return nil, err
		}
		return []*sketch.Node{root}, nil
	}

	switch {
	case isURL(fixture) && opts.multiple:
		return parser.ParseMultipleURL(ctx, fixture)
	case isURL(fixture):
		root, err := parser.ParseURL(ctx, fixture)
		if err != nil {
			return nil, err
		}
		return []*sketch.Node{root}, nil
	case opts.multiple:
		return parser.ParseMultiple(fixture)
	default:
		root, err := parser.Parse(fixture)
		if err != nil {
			return nil, err
		}
		return []*sketch.Node{root}, nil
	}
}

func formatRoots(format string, roots []*sketch.Node) ([]byte, error) {
	switch format {
	case formatTree:
		var b strings.Builder
		for i, root := range roots {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderTree(root))
		}
		return []byte(b.String()), nil

	case formatJSON:
		var b strings.Builder
		if err := export.WriteJSON(export.FromNodes(roots...), &b); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil

	case formatDOT:
		return []byte(export.ToDOT(export.FromNodes(roots...))), nil

	case formatSVG:
		return export.RenderSVG(export.ToDOT(export.FromNodes(roots...)))

	default:
		return nil, fmt.Errorf("unknown format %q (available: tree, json, dot, svg)", format)
	}
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
