package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depsketch/depsketch/pkg/artifact"
	"github.com/depsketch/depsketch/pkg/descriptor"
	"github.com/depsketch/depsketch/pkg/resource"
)

// describeOpts holds the command-line flags for the describe command.
type describeOpts struct {
	prefix string // resource name prefix
	format string // output format (text, json)
	output string // output file path (stdout if empty)
}

// newDescribeCmd creates the describe command, which reads an INI-style
// artifact description and prints its sections.
func newDescribeCmd() *cobra.Command {
	opts := describeOpts{format: "text"}

	cmd := &cobra.Command{
		Use:   "describe <description>",
		Short: "Read an artifact description file",
		Long: `Read an INI-style artifact description and print its relocations,
dependencies, managed dependencies, and repositories.

Examples:
  depsketch describe artifact.ini
  depsketch describe artifact.ini --format json -o out.json
  depsketch describe https://example.com/artifact.ini`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDescribe(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "prefix prepended to description names")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runDescribe(ctx context.Context, opts *describeOpts, name string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	reader := descriptor.New(resource.NewLoader(opts.prefix))

	var (
		desc *descriptor.Description
		err  error
	)
	switch {
	case isURL(name):
		desc, err = reader.ParseURL(ctx, name)
	case filepath.IsAbs(name):
		var data []byte
		if data, err = os.ReadFile(name); err == nil {
			desc, err = reader.ParseLiteral(string(data))
		}
	default:
		desc, err = reader.Parse(name)
	}
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Read %d dependency record(s)", len(desc.Dependencies)+len(desc.ManagedDependencies)))

	out, err := formatDescription(opts.format, desc)
	if err != nil {
		return err
	}
	return writeOutput(opts.output, out)
}

func formatDescription(format string, desc *descriptor.Description) ([]byte, error) {
	switch format {
	case "text":
		return []byte(renderDescription(desc)), nil
	case "json":
		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q (available: text, json)", format)
	}
}

// renderDescription formats a description section by section, skipping
// sections that were absent from the source.
func renderDescription(desc *descriptor.Description) string {
	var b strings.Builder

	if desc.Relocations != nil {
		b.WriteString(styleDim.Render("[relocations]"))
		b.WriteString("\n")
		for _, a := range desc.Relocations {
			b.WriteString("  ")
			b.WriteString(styleCoordinate.Render(a.Coordinate()))
			b.WriteString("\n")
		}
	}

	renderDependencySection(&b, "[dependencies]", desc.Dependencies)
	renderDependencySection(&b, "[managedDependencies]", desc.ManagedDependencies)

	if desc.Repositories != nil {
		b.WriteString(styleDim.Render("[repositories]"))
		b.WriteString("\n")
		for _, r := range desc.Repositories {
			b.WriteString("  ")
			b.WriteString(styleCoordinate.Render(r.ID))
			b.WriteString(styleDim.Render(fmt.Sprintf(" (%s) ", r.Type)))
			b.WriteString(r.URL)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderDependencySection(b *strings.Builder, header string, deps []artifact.Dependency) {
	if deps == nil {
		return
	}
	b.WriteString(styleDim.Render(header))
	b.WriteString("\n")
	for _, d := range deps {
		b.WriteString("  ")
		b.WriteString(styleCoordinate.Render(d.Artifact.Coordinate()))
		if d.Scope != "" {
			b.WriteString(" ")
			b.WriteString(styleScope.Render(d.Scope))
		}
		if d.Optional {
			b.WriteString(styleDim.Render(" (optional)"))
		}
		b.WriteString("\n")
		for _, excl := range d.Exclusions {
			b.WriteString("    ")
			b.WriteString(styleDim.Render("- " + excl.GroupID + ":" + excl.ArtifactID))
			b.WriteString("\n")
		}
	}
}
