// Package suite loads TOML manifests that bundle sketch fixtures with
// their substitution values, so a set of fixtures can be parsed and
// checked in one CLI invocation.
//
// A suite file looks like:
//
//	[[fixture]]
//	name = "simple"
//	file = "fixtures/simple.txt"
//
//	[[fixture]]
//	name = "templated"
//	file = "fixtures/templated.txt"
//	substitutions = ["gid-under-test", "aid-under-test"]
//	multiple = true
//	stanzas = 2
//
// Fixture files are resolved relative to the suite file's directory.
package suite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Fixture describes one sketch fixture within a suite.
type Fixture struct {
	Name          string   `toml:"name"`
	File          string   `toml:"file"`
	Substitutions []string `toml:"substitutions"`

	// Multiple parses the fixture as blank-line separated stanzas.
	Multiple bool `toml:"multiple"`

	// Stanzas is the expected root count in multiple mode; 0 disables
	// the check.
	Stanzas int `toml:"stanzas"`
}

// Suite is a parsed fixture manifest.
type Suite struct {
	Fixtures []Fixture `toml:"fixture"`

	dir string
}

// Load reads and validates a suite manifest from path.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite %s: %w", path, err)
	}

	var s Suite
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)

	if len(s.Fixtures) == 0 {
		return nil, fmt.Errorf("suite %s defines no fixtures", path)
	}

	seen := make(map[string]bool, len(s.Fixtures))
	for i, f := range s.Fixtures {
		if f.Name == "" {
			return nil, fmt.Errorf("suite %s: fixture %d has no name", path, i+1)
		}
		if f.File == "" {
			return nil, fmt.Errorf("suite %s: fixture %q has no file", path, f.Name)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("suite %s: duplicate fixture name %q", path, f.Name)
		}
		seen[f.Name] = true
	}

	return &s, nil
}

// Path resolves a fixture's file relative to the suite file's directory.
func (s *Suite) Path(f Fixture) string {
	if filepath.IsAbs(f.File) {
		return f.File
	}
	return filepath.Join(s.dir, f.File)
}

// Fixture returns the fixture with the given name.
func (s *Suite) Fixture(name string) (Fixture, bool) {
	for _, f := range s.Fixtures {
		if f.Name == name {
			return f, true
		}
	}
	return Fixture{}, false
}
