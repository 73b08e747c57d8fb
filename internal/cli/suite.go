package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/depsketch/depsketch/pkg/sketch"
	"github.com/depsketch/depsketch/pkg/suite"
)

// suiteOpts holds the command-line flags for the suite command.
type suiteOpts struct {
	only string // run a single named fixture
}

// newSuiteCmd creates the suite command, which parses every fixture
// listed in a TOML manifest and reports the results.
func newSuiteCmd() *cobra.Command {
	var opts suiteOpts

	cmd := &cobra.Command{
		Use:   "suite <manifest>",
		Short: "Parse every fixture in a suite manifest",
		Long: `Parse every sketch fixture listed in a TOML suite manifest, applying
each fixture's substitutions and stanza expectations.

Examples:
  depsketch suite fixtures/suite.toml
  depsketch suite fixtures/suite.toml --only templated`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSuite(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.only, "only", "", "run only the named fixture")

	return cmd
}

func runSuite(ctx context.Context, opts *suiteOpts, manifest string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := suite.Load(manifest)
	if err != nil {
		return err
	}

	fixtures := s.Fixtures
	if opts.only != "" {
		f, ok := s.Fixture(opts.only)
		if !ok {
			return fmt.Errorf("suite has no fixture named %q", opts.only)
		}
		fixtures = []suite.Fixture{f}
	}

	failed := 0
	for _, f := range fixtures {
		if err := runFixture(s, f); err != nil {
			logger.Error("fixture failed", "name", f.Name, "err", err)
			failed++
			continue
		}
		logger.Debug("fixture ok", "name", f.Name, "file", f.File)
	}

	prog.done(fmt.Sprintf("Ran %d fixture(s), %d failed", len(fixtures), failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed", failed, len(fixtures))
	}
	return nil
}

// runFixture parses one fixture with its own substitution list and checks
// the stanza expectation when one is set. Fixture files are read directly
// rather than through a resource loader, because suite manifests may
// resolve to absolute paths.
func runFixture(s *suite.Suite, f suite.Fixture) error {
	data, err := os.ReadFile(s.Path(f))
	if err != nil {
		return err
	}

	parser := sketch.New(nil)
	if f.Substitutions != nil {
		parser.SetSubstitutions(f.Substitutions...)
	}

	if !f.Multiple {
		_, err := parser.ParseLiteral(string(data))
		return err
	}

	roots, err := parser.ParseMultipleLiteral(string(data))
	if err != nil {
		return err
	}
	if f.Stanzas > 0 && len(roots) != f.Stanzas {
		return fmt.Errorf("expected %d stanza(s), got %d", f.Stanzas, len(roots))
	}
	return nil
}
